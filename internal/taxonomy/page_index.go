package taxonomy

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
)

// PageIndex lists the pages of every output folder.
type PageIndex struct {
	base
}

func newPageIndex(site *config.Config, messages *Messages) *PageIndex {
	p := &PageIndex{}
	p.base = base{
		kind: KindPageIndex,
		name: "page_index_folder",
		flags: Flags{
			HasHierarchy:     true,
			ApplyToPages:     true,
			OmitEmpty:        true,
			AlwaysDisableRSS: true,
		},
		templates: Templates{List: "list.tmpl"},
		site:      site,
		messages:  messages,
	}
	return p
}

// Classify returns the escaped folder of the page's destination.
func (p *PageIndex) Classify(item *content.Item, lang string) []string {
	dest := item.Meta(lang).Destination
	if p.site.PrettyURLs {
		dest = strings.TrimSuffix(dest, "/"+p.site.IndexFile)
	}
	dir := ""
	if i := strings.LastIndex(dest, "/"); i >= 0 {
		dir = dest[:i]
	}
	if dir == "" {
		return []string{""}
	}
	return []string{hierarchy.Join(strings.Split(dir, "/"))}
}

func (p *PageIndex) Path(classification, _ string) ([]string, IndexMode, error) {
	parts, err := hierarchy.Parse(classification)
	if err != nil {
		return nil, IndexAuto, err
	}
	return parts, IndexAlways, nil
}

// ShouldGenerateList is false when one of the pages already is the folder index.
func (p *PageIndex) ShouldGenerateList(classification string, posts []*content.Item, lang string) bool {
	parts, err := hierarchy.Parse(classification)
	if err != nil {
		return false
	}
	index := path.Join(append(parts, p.site.IndexFile)...)
	for _, it := range posts {
		if it.Meta(lang).Destination == index {
			return false
		}
	}
	return true
}

func (p *PageIndex) FriendlyName(classification, _ string, lastOnly bool) string {
	parts, err := hierarchy.Parse(classification)
	if err != nil || len(parts) == 0 {
		return classification
	}
	if lastOnly {
		return parts[len(parts)-1]
	}
	return strings.Join(parts, "/")
}

func (p *PageIndex) Context(page Page) (Values, Values) {
	title := p.site.BlogTitle.Get(page.Lang)
	ctx := Values{
		"title":    title,
		"pagekind": []string{"list", "front_page", "page_index"},
		"folder":   page.Classification,
	}
	kw := p.settings(page.Lang)
	kw["title"] = title
	return ctx, kw
}
