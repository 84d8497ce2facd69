package taxonomy

import (
	"slices"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
)

// Tag is the flat, many-per-post tag taxonomy.
type Tag struct {
	base
	cfg config.TagsConfig
}

func newTag(site *config.Config, messages *Messages) *Tag {
	cfg := site.Taxonomies.Tags
	t := &Tag{cfg: cfg}
	t.base = base{
		kind: KindTag,
		name: "tag",
		flags: Flags{
			MoreThanOnePerPost:           true,
			ApplyToPosts:                 true,
			ShowAsIndex:                  cfg.PagesAreIndexes,
			AlsoCreateFromOtherLanguages: true,
			GenerateAtomForLists:         true,
			MinimumPostCountInOverview:   cfg.MinimumPosts,
		},
		templates: Templates{List: "tag.tmpl", Overview: "tags.tmpl"},
		vars:      OverviewVars{Classifications: "tags", Items: "items"},
		site:      site,
		messages:  messages,
	}
	if cfg.PagesAreIndexes {
		t.templates.List = "tagindex.tmpl"
	}
	return t
}

func (t *Tag) Classify(item *content.Item, lang string) []string {
	tags := slices.Clone(item.Meta(lang).Tags)
	return withoutHidden(tags, t.cfg.Hidden)
}

func (t *Tag) Path(classification, lang string) ([]string, IndexMode, error) {
	return t.listPath(t.cfg.ListConfig, classification, lang), IndexAuto, nil
}

func (t *Tag) OverviewPath(lang string) ([]string, IndexMode, bool) {
	return listOverviewPath(t.cfg.ListConfig, lang)
}

func (t *Tag) FriendlyName(classification, _ string, _ bool) string {
	return classification
}

func (t *Tag) Context(page Page) (Values, Values) {
	friendly := t.FriendlyName(page.Classification, page.Lang, false)
	ctx := Values{
		"title":       t.title(t.cfg.ListConfig, page.Lang, page.Classification, MsgPostsAbout, friendly),
		"description": t.cfg.Description(page.Lang, page.Classification),
		"pagekind":    t.pageKind("tag_page"),
		"tag":         friendly,
	}
	kw := t.settings(page.Lang)
	kw["tag_path"] = t.cfg.Path.Get(page.Lang)
	kw["tag_pages_are_indexes"] = t.cfg.PagesAreIndexes
	kw["title"] = ctx["title"]
	kw["description"] = ctx["description"]
	return ctx, kw
}

func (t *Tag) OverviewContext(lang string) (Values, Values) {
	ctx, kw := t.overview(lang, MsgTags, t.cfg.ListConfig)
	kw["tag_path"] = t.cfg.Path.Get(lang)
	kw["tag_index_path"] = t.cfg.IndexPath.Get(lang)
	return ctx, kw
}
