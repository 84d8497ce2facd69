package taxonomy

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
)

// Category is the hierarchical, one-per-post category taxonomy.
type Category struct {
	base
	cfg config.CategoriesConfig
}

func newCategory(site *config.Config, messages *Messages) *Category {
	cfg := site.Taxonomies.Categories
	c := &Category{cfg: cfg}
	c.base = base{
		kind: KindCategory,
		name: "category",
		flags: Flags{
			HasHierarchy:                   true,
			ApplyToPosts:                   true,
			OmitEmpty:                      true,
			ShowAsIndex:                    cfg.PagesAreIndexes,
			IncludePostsFromSubhierarchies: true,
			AlsoCreateFromOtherLanguages:   true,
			GenerateAtomForLists:           true,
			MinimumPostCountInOverview:     cfg.MinimumPosts,
		},
		templates: Templates{List: "tag.tmpl", Overview: "tags.tmpl", Subcategories: "taxonomy_list.tmpl"},
		vars:      OverviewVars{Classifications: "categories", Items: "cat_items", Hierarchy: "cat_hierarchy"},
		site:      site,
		messages:  messages,
	}
	if cfg.PagesAreIndexes {
		c.templates.List = "tagindex.tmpl"
	}
	return c
}

func (c *Category) Classify(item *content.Item, lang string) []string {
	cat := item.Meta(lang).Category
	if cat == "" || slices.Contains(c.cfg.Hidden, cat) {
		return nil
	}
	return []string{cat}
}

func (c *Category) Path(classification, lang string) ([]string, IndexMode, error) {
	parts, err := hierarchy.Parse(classification)
	if err != nil {
		return nil, IndexAuto, err
	}
	if c.cfg.FlatHierarchy && len(parts) > 0 {
		parts = parts[len(parts)-1:]
	}
	for i := range parts {
		parts[i] = c.slugify(parts[i])
	}
	if len(parts) > 0 && !c.site.PrettyURLs {
		parts = []string{strings.Join(parts, "-")}
	}
	if len(parts) > 0 {
		parts[0] = c.cfg.Prefix + parts[0]
	}
	var out []string
	if p := c.cfg.Path.Get(lang); p != "" {
		out = append(out, p)
	}
	return append(out, parts...), IndexAuto, nil
}

func (c *Category) OverviewPath(lang string) ([]string, IndexMode, bool) {
	return listOverviewPath(c.cfg.ListConfig, lang)
}

// FriendlyName is the last hierarchy component.
func (c *Category) FriendlyName(classification, _ string, _ bool) string {
	parts, err := hierarchy.Parse(classification)
	if err != nil || len(parts) == 0 {
		return classification
	}
	return parts[len(parts)-1]
}

func (c *Category) HiddenInOverview(classification, _ string) bool {
	return slices.Contains(c.cfg.Hidden, classification)
}

func (c *Category) Context(page Page) (Values, Values) {
	friendly := c.FriendlyName(page.Classification, page.Lang, false)
	path, _ := hierarchy.Parse(page.Classification)
	subcats := slices.Clone(page.Subcategories)
	if subcats == nil {
		subcats = []Subcategory{}
	}
	ctx := Values{
		"title":         c.title(c.cfg.ListConfig, page.Lang, page.Classification, MsgPostsAbout, friendly),
		"description":   c.cfg.Description(page.Lang, page.Classification),
		"pagekind":      c.pageKind("tag_page", "category_page"),
		"category":      page.Classification,
		"category_path": path,
		"subcategories": subcats,
	}
	kw := c.settings(page.Lang)
	kw["category_path"] = c.cfg.Path.Get(page.Lang)
	kw["category_prefix"] = c.cfg.Prefix
	kw["category_pages_are_indexes"] = c.cfg.PagesAreIndexes
	kw["category_flat_hierarchy"] = c.cfg.FlatHierarchy
	kw["title"] = ctx["title"]
	kw["description"] = ctx["description"]
	kw["subcategories"] = subcats
	return ctx, kw
}

func (c *Category) OverviewContext(lang string) (Values, Values) {
	ctx, kw := c.overview(lang, MsgCategories, c.cfg.ListConfig)
	kw["category_path"] = c.cfg.Path.Get(lang)
	kw["category_prefix"] = c.cfg.Prefix
	return ctx, kw
}
