package taxonomy

import (
	"slices"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/util/slug"
)

// base carries the state and default hooks shared by all variants.
type base struct {
	kind      Kind
	name      string
	flags     Flags
	templates Templates
	vars      OverviewVars

	site     *config.Config
	messages *Messages
}

func (b *base) Kind() Kind                 { return b.kind }
func (b *base) Name() string               { return b.name }
func (b *base) Flags() Flags               { return b.flags }
func (b *base) Templates() Templates       { return b.templates }
func (b *base) OverviewVars() OverviewVars { return b.vars }

func (b *base) Enabled(string, Stats) bool                              { return true }
func (b *base) ImplicitClassifications(string) []string                 { return nil }
func (b *base) SortClassifications([]string, string, int)               {}
func (b *base) SortPosts([]*content.Item, string, string)               {}
func (b *base) HiddenInOverview(string, string) bool                    { return false }
func (b *base) OverviewPath(string) ([]string, IndexMode, bool)         { return nil, IndexAuto, false }
func (b *base) OverviewContext(string) (Values, Values)                 { return Values{}, Values{} }
func (b *base) ShouldGenerateList(string, []*content.Item, string) bool { return true }
func (b *base) ShouldGenerateRSS(string, []*content.Item, string) bool  { return true }

// slugify applies the site slug rule to one path segment.
func (b *base) slugify(name string) string {
	if !b.site.Slugify {
		return name
	}
	return slug.Make(name)
}

// pageKind is the template-facing page kind for list pages.
func (b *base) pageKind(extra ...string) []string {
	kind := "list"
	if b.flags.ShowAsIndex {
		kind = "index"
	}
	return append([]string{kind}, extra...)
}

// settings returns the site values every classification page depends on.
func (b *base) settings(lang string) Values {
	return Values{
		"taxonomy":                 b.name,
		"lang":                     lang,
		"translation_prefix":       b.site.TranslationPrefix(lang),
		"blog_title":               b.site.BlogTitle.Get(lang),
		"base_url":                 b.site.BaseURL,
		"pretty_urls":              b.site.PrettyURLs,
		"strip_indexes":            b.site.StripIndexes,
		"index_file":               b.site.IndexFile,
		"show_untranslated_posts":  b.site.ShowUntranslatedPosts,
		"index_display_post_count": b.site.IndexDisplayPostCount,
		"feed_length":              b.site.FeedLength,
		"generate_rss":             b.site.GenerateRSS,
		"generate_atom":            b.site.GenerateAtom,
	}
}

// overview builds the standard overview context for list-style taxonomies.
func (b *base) overview(lang, titleKey string, l config.ListConfig) (Values, Values) {
	title := b.messages.Get(lang, titleKey)
	ctx := Values{
		"title":       title,
		"description": title,
		"pagekind":    []string{"list", "tags_page"},
	}
	kw := b.settings(lang)
	kw["title"] = title
	kw["minimum_post_count"] = l.MinimumPosts
	return ctx, kw
}

// listPath returns [path(lang), slug] for flat list taxonomies.
func (b *base) listPath(l config.ListConfig, classification, lang string) []string {
	var out []string
	if p := l.Path.Get(lang); p != "" {
		out = append(out, p)
	}
	return append(out, b.slugify(classification))
}

// listOverviewPath places the overview at index_path, or inside path.
func listOverviewPath(l config.ListConfig, lang string) ([]string, IndexMode, bool) {
	if p := l.IndexPath.Get(lang); p != "" {
		return []string{p}, IndexNever, true
	}
	return []string{l.Path.Get(lang)}, IndexAlways, true
}

// title resolves a configured title or formats the default message.
func (b *base) title(l config.ListConfig, lang, classification, key, friendly string) string {
	if t, ok := l.Title(lang, classification); ok {
		return t
	}
	return b.messages.Format(lang, key, friendly)
}

func withoutHidden(values, hidden []string) []string {
	return slices.DeleteFunc(values, func(v string) bool { return slices.Contains(hidden, v) })
}
