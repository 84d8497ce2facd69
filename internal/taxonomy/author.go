package taxonomy

import (
	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
)

// Author groups posts by their author.
type Author struct {
	base
	cfg config.ListConfig
}

func newAuthor(site *config.Config, messages *Messages) *Author {
	cfg := site.Taxonomies.Authors
	a := &Author{cfg: cfg}
	a.base = base{
		kind: KindAuthor,
		name: "author",
		flags: Flags{
			ApplyToPosts:                 true,
			ShowAsIndex:                  cfg.PagesAreIndexes,
			AlsoCreateFromOtherLanguages: true,
			GenerateAtomForLists:         true,
			MinimumPostCountInOverview:   cfg.MinimumPosts,
		},
		templates: Templates{List: "author.tmpl", Overview: "authors.tmpl"},
		vars:      OverviewVars{Classifications: "authors", Items: "items"},
		site:      site,
		messages:  messages,
	}
	if cfg.PagesAreIndexes {
		a.templates.List = "authorindex.tmpl"
	}
	return a
}

// Enabled is true only for multi-author sites, judged on the default language.
func (a *Author) Enabled(_ string, stats Stats) bool {
	if stats == nil {
		return true
	}
	return len(stats.Classifications(a.name, a.site.DefaultLang)) > 1
}

func (a *Author) Classify(item *content.Item, lang string) []string {
	if author := item.Meta(lang).Author; author != "" {
		return []string{author}
	}
	return nil
}

func (a *Author) Path(classification, lang string) ([]string, IndexMode, error) {
	return a.listPath(a.cfg, classification, lang), IndexAuto, nil
}

func (a *Author) OverviewPath(lang string) ([]string, IndexMode, bool) {
	return listOverviewPath(a.cfg, lang)
}

func (a *Author) FriendlyName(classification, _ string, _ bool) string {
	return classification
}

func (a *Author) Context(page Page) (Values, Values) {
	ctx := Values{
		"title":       a.title(a.cfg, page.Lang, page.Classification, MsgPostsBy, page.Classification),
		"description": a.cfg.Description(page.Lang, page.Classification),
		"pagekind":    a.pageKind("author_page"),
		"author":      page.Classification,
	}
	kw := a.settings(page.Lang)
	kw["author_path"] = a.cfg.Path.Get(page.Lang)
	kw["author_pages_are_indexes"] = a.cfg.PagesAreIndexes
	kw["title"] = ctx["title"]
	kw["description"] = ctx["description"]
	return ctx, kw
}

func (a *Author) OverviewContext(lang string) (Values, Values) {
	ctx, kw := a.overview(lang, MsgAuthors, a.cfg)
	ctx["pagekind"] = []string{"list", "authors_page"}
	kw["author_path"] = a.cfg.Path.Get(lang)
	return ctx, kw
}
