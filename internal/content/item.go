package content

import (
	"cmp"
	"slices"
	"time"
)

// Metadata is the per-language view of an item.
type Metadata struct {
	SourcePath  string
	Title       string
	Slug        string
	Description string
	// Destination is the output path relative to the language root,
	// '/'-separated (posts/hello/index.html).
	Destination string

	Tags     []string
	Category string
	Author   string
	Section  string

	Fingerprint string
}

// Item is a post or a page. Item-level fields come from the default-language
// source when one exists.
type Item struct {
	ID          string
	IsPost      bool
	Date        time.Time
	Priority    int
	UseInFeeds  bool
	Hidden      bool
	DefaultLang string

	Translations map[string]*Metadata
}

// Translated reports whether the item has its own source in lang.
func (i *Item) Translated(lang string) bool {
	_, ok := i.Translations[lang]
	return ok
}

// Meta returns the metadata for lang, falling back to the default language
// and then to the lexically first available language.
func (i *Item) Meta(lang string) *Metadata {
	if m, ok := i.Translations[lang]; ok {
		return m
	}
	if m, ok := i.Translations[i.DefaultLang]; ok {
		return m
	}
	langs := make([]string, 0, len(i.Translations))
	for l := range i.Translations {
		langs = append(langs, l)
	}
	if len(langs) == 0 {
		return &Metadata{}
	}
	slices.Sort(langs)
	return i.Translations[langs[0]]
}

// SourcePath is the path of the default-language source.
func (i *Item) SourcePath() string {
	return i.Meta(i.DefaultLang).SourcePath
}

// Compare orders items by priority, date and source path ascending.
func Compare(a, b *Item) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.SourcePath(), b.SourcePath())
}

// SortNewestFirst orders items by descending (priority, date, source path).
func SortNewestFirst(items []*Item) {
	slices.SortStableFunc(items, func(a, b *Item) int { return Compare(b, a) })
}

// SourcePaths returns the sorted default-language source paths of items.
func SourcePaths(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.SourcePath())
	}
	slices.Sort(out)
	return out
}

// Corpus is an ordered, immutable collection of items.
type Corpus struct {
	DefaultLang string
	items       []*Item
	byID        map[string]*Item
}

// NewCorpus orders items by ID.
func NewCorpus(defaultLang string, items ...*Item) *Corpus {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b *Item) int { return cmp.Compare(a.ID, b.ID) })
	byID := make(map[string]*Item, len(sorted))
	for _, it := range sorted {
		if it.DefaultLang == "" {
			it.DefaultLang = defaultLang
		}
		byID[it.ID] = it
	}
	return &Corpus{DefaultLang: defaultLang, items: sorted, byID: byID}
}

// Items returns the items in ID order. The slice must not be modified.
func (c *Corpus) Items() []*Item { return c.items }

// Len returns the number of items.
func (c *Corpus) Len() int { return len(c.items) }

// Lookup finds an item by ID.
func (c *Corpus) Lookup(id string) (*Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}
