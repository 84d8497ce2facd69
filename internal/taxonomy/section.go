package taxonomy

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/util/slug"
)

// Section groups posts by the top-level folder they live in, or by their
// section metadata.
type Section struct {
	base
	cfg config.SectionsConfig
}

func newSection(site *config.Config, messages *Messages) *Section {
	cfg := site.Taxonomies.Sections
	s := &Section{cfg: cfg}
	s.base = base{
		kind: KindSection,
		name: "section_index",
		flags: Flags{
			ApplyToPosts:         true,
			OmitEmpty:            true,
			ShowAsIndex:          cfg.PagesAreIndexes,
			GenerateAtomForLists: true,
		},
		templates: Templates{List: "list.tmpl"},
		site:      site,
		messages:  messages,
	}
	if cfg.PagesAreIndexes {
		s.templates.List = "sectionindex.tmpl"
	}
	return s
}

// Classify returns the section slug.
func (s *Section) Classify(item *content.Item, lang string) []string {
	if sec := item.Meta(lang).Section; sec != "" {
		return []string{slug.Make(sec)}
	}
	dir := path.Dir(item.ID)
	if dir == "." {
		return nil
	}
	first, _, _ := strings.Cut(dir, "/")
	return []string{slug.Make(first)}
}

func (s *Section) Path(classification, _ string) ([]string, IndexMode, error) {
	return []string{classification}, IndexAlways, nil
}

// FriendlyName is the configured section name, or the title-cased slug.
func (s *Section) FriendlyName(classification, lang string, _ bool) string {
	if name, ok := s.cfg.Names[lang][classification]; ok {
		return name
	}
	return cases.Title(language.Und).String(strings.ReplaceAll(classification, "-", " "))
}

func (s *Section) Context(page Page) (Values, Values) {
	name := s.FriendlyName(page.Classification, page.Lang, false)
	title := name
	if format, ok := s.cfg.Titles[page.Lang][page.Classification]; ok {
		title = strings.ReplaceAll(format, "{name}", name)
	}
	ctx := Values{
		"title":       title,
		"description": s.cfg.Descriptions[page.Lang][page.Classification],
		"pagekind":    s.pageKind("section_page"),
		"section":     page.Classification,
	}
	kw := s.settings(page.Lang)
	kw["section_name"] = name
	kw["section_pages_are_indexes"] = s.cfg.PagesAreIndexes
	kw["title"] = title
	kw["description"] = ctx["description"]
	return ctx, kw
}
