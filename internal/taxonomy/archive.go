package taxonomy

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
)

// Archive groups posts by year, month and day.
type Archive struct {
	base
	cfg    config.ArchiveConfig
	levels int
}

func newArchive(site *config.Config, messages *Messages) *Archive {
	cfg := site.Taxonomies.Archive
	a := &Archive{cfg: cfg, levels: cfg.Levels()}
	a.base = base{
		kind: KindArchive,
		name: "archive",
		flags: Flags{
			HasHierarchy:                   true,
			ApplyToPosts:                   true,
			ShowAsIndex:                    cfg.PagesAreIndexes,
			IncludePostsFromSubhierarchies: true,
			IncludePostsIntoHierarchyRoot:  cfg.IncludeRoot,
			ShowListAsSubcategoriesList:    !cfg.Full,
			AlwaysDisableRSS:               true,
		},
		templates: Templates{List: "archive.tmpl", Subcategories: "list.tmpl"},
		site:      site,
		messages:  messages,
	}
	if cfg.PagesAreIndexes {
		a.templates.List = "archiveindex.tmpl"
	}
	return a
}

// Classify returns the post date truncated to the configured granularity.
func (a *Archive) Classify(item *content.Item, _ string) []string {
	d := item.Date
	parts := []string{
		fmt.Sprintf("%04d", d.Year()),
		fmt.Sprintf("%02d", int(d.Month())),
		fmt.Sprintf("%02d", d.Day()),
	}
	return []string{hierarchy.Join(parts[:a.levels])}
}

// ImplicitClassifications makes the archive root exist with no posts.
func (a *Archive) ImplicitClassifications(string) []string {
	return []string{""}
}

func (a *Archive) Path(classification, lang string) ([]string, IndexMode, error) {
	parts, err := hierarchy.Parse(classification)
	if err != nil {
		return nil, IndexAuto, err
	}
	var out []string
	if p := a.cfg.Path.Get(lang); p != "" {
		out = append(out, p)
	}
	if len(parts) == 0 {
		return append(out, a.cfg.Filename), IndexNever, nil
	}
	return append(out, parts...), IndexAlways, nil
}

// SortClassifications puts years and months newest first; days stay ascending.
func (a *Archive) SortClassifications(names []string, _ string, level int) {
	if level == 0 || level == 1 {
		slices.Sort(names)
		slices.Reverse(names)
	}
}

func (a *Archive) ShouldGenerateList(classification string, posts []*content.Item, _ string) bool {
	return classification == "" || len(posts) > 0
}

func (a *Archive) FriendlyName(classification, lang string, lastOnly bool) string {
	parts, err := hierarchy.Parse(classification)
	if err != nil {
		return classification
	}
	switch len(parts) {
	case 0:
		return a.messages.Get(lang, MsgArchive)
	case 1:
		return parts[0]
	case 2:
		d, ok := archiveDate(parts)
		if !ok {
			return classification
		}
		if lastOnly {
			return a.messages.FormatDate(lang, "{month}", d)
		}
		return a.messages.FormatDate(lang, "{month_year}", d)
	default:
		d, ok := archiveDate(parts)
		if !ok {
			return classification
		}
		if lastOnly {
			return strconv.Itoa(d.Day())
		}
		return a.messages.FormatDate(lang, "{month_day_year}", d)
	}
}

func (a *Archive) Context(page Page) (Values, Values) {
	parts, _ := hierarchy.Parse(page.Classification)
	lang := page.Lang

	var title string
	switch len(parts) {
	case 0:
		title = a.messages.Get(lang, MsgArchive)
	case 1:
		title = a.messages.Format(lang, MsgPostsForYear, parts[0])
	default:
		d, ok := archiveDate(parts)
		key := MsgPostsForMonth
		if len(parts) > 2 {
			key = MsgPostsForDay
		}
		if ok {
			title = a.messages.FormatDate(lang, key, d)
		} else {
			title = page.Classification
		}
	}

	kind := "list"
	if a.flags.ShowAsIndex && (!a.flags.ShowListAsSubcategoriesList || len(parts) == a.levels) {
		kind = "index"
	}
	ctx := Values{
		"title":                     title,
		"description":               "",
		"pagekind":                  []string{kind, "archive_page"},
		"archive_name":              page.Classification,
		"create_archive_navigation": len(parts) > 0,
	}
	kw := a.settings(lang)
	kw["archive_path"] = a.cfg.Path.Get(lang)
	kw["archive_filename"] = a.cfg.Filename
	kw["archive_levels"] = a.levels
	kw["archives_are_indexes"] = a.cfg.PagesAreIndexes
	kw["title"] = title
	return ctx, kw
}

// archiveDate interprets year[/month[/day]] components; missing parts are 1.
func archiveDate(parts []string) (time.Time, bool) {
	nums := []int{0, 1, 1}
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC), true
}
