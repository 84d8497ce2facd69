// Package pathalloc assigns every classification its output path and
// rejects configurations in which two classifications would write the
// same file.
package pathalloc

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/classify"
	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
	"git.home.luguber.info/inful/taxogen/internal/util/sets"
)

// Entry is the allocated output of one classification in one output language.
type Entry struct {
	Taxonomy       string
	Classification string
	Lang           string
	// SourceLangs are the languages whose classification contributed.
	SourceLangs []string
	// Path is the postprocessed path of the first page.
	Path []string
	File string
	// Posts is the merged, filtered item list, newest first.
	Posts []*content.Item
}

type entryKey struct {
	taxonomy, lang, classification string
}

// Table maps output files to classifications. It is read-only once returned.
type Table struct {
	byFile map[string]map[string]*Entry
	byKey  map[entryKey]*Entry
	order  map[string][]*Entry
	// reported suppresses repeats of a problem arriving from another
	// source language.
	reported sets.Set[string]
}

// Lookup returns the entry of a classification in an output language.
func (t *Table) Lookup(taxonomy, lang, classification string) (*Entry, bool) {
	e, ok := t.byKey[entryKey{taxonomy, lang, classification}]
	return e, ok
}

// At returns the entry writing file in lang.
func (t *Table) At(lang, file string) (*Entry, bool) {
	e, ok := t.byFile[lang][file]
	return e, ok
}

// Entries returns the entries of lang in allocation order.
func (t *Table) Entries(lang string) []*Entry { return slices.Clone(t.order[lang]) }

// Classifications returns the allocated classifications of a taxonomy in
// lang, in allocation order.
func (t *Table) Classifications(taxonomy, lang string) []string {
	var out []string
	for _, e := range t.order[lang] {
		if e.Taxonomy == taxonomy {
			out = append(out, e.Classification)
		}
	}
	return out
}

// Len returns the number of entries over all languages.
func (t *Table) Len() int { return len(t.byKey) }

// Allocate computes the output path of every classification of every enabled
// taxonomy and checks them against each other. Classifications from other
// source languages are included when the taxonomy allows it; the same
// classification arriving from several languages is merged. Every other
// shared path is a collision. All problems are reported together and no
// table is returned when there is any.
func Allocate(res *classify.Result, reg *taxonomy.Registry, cfg *config.Config) (*Table, error) {
	t := &Table{
		byFile:   make(map[string]map[string]*Entry),
		byKey:    make(map[entryKey]*Entry),
		order:    make(map[string][]*Entry),
		reported: sets.New[string](),
	}
	langs := res.Languages()
	var errs []error

	for _, lang := range langs {
		t.byFile[lang] = make(map[string]*Entry)
		for _, def := range reg.Definitions() {
			if !def.Enabled(lang, res) {
				continue
			}
			for _, srcLang := range langs {
				if srcLang != lang && !def.Flags().AlsoCreateFromOtherLanguages {
					continue
				}
				for _, cls := range res.Classifications(def.Name(), srcLang) {
					posts := Visible(res.Posts(def.Name(), srcLang, cls), lang, cfg.ShowUntranslatedPosts)
					if err := t.place(reg, def, cls, lang, srcLang, posts); err != nil {
						errs = append(errs, err)
					}
				}
			}
		}
	}
	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}

	for _, entries := range t.order {
		for _, e := range entries {
			if len(e.SourceLangs) > 1 {
				content.SortNewestFirst(e.Posts)
				def, _ := reg.Lookup(e.Taxonomy)
				def.SortPosts(e.Posts, e.Classification, e.Lang)
			}
		}
	}
	slog.Debug("Output paths allocated", logfields.Count(t.Len()))
	return t, nil
}

func (t *Table) place(reg *taxonomy.Registry, def taxonomy.Definition, cls, lang, srcLang string, posts []*content.Item) error {
	segments, mode, err := def.Path(cls, lang)
	if err != nil {
		return err
	}
	if slices.Contains(segments, "") {
		if !t.reported.Add(strings.Join([]string{lang, def.Name(), cls}, "\x00")) {
			return nil
		}
		return errors.PathCollisionError("classification yields an invalid path with an empty segment").
			WithContext(errors.KeyTaxonomy, def.Name()).
			WithContext(errors.KeyClassification, cls).
			WithContext(errors.KeyLanguage, lang).
			WithContext(errors.KeyPath, strings.Join(segments, "/")).
			WithContext(errors.KeySources, content.SourcePaths(posts)).
			Build()
	}
	parts := reg.Paths().Postprocess(segments, mode, lang, taxonomy.Target{})
	file := reg.Paths().File(parts)

	if other, ok := t.byFile[lang][file]; ok {
		if other.Taxonomy == def.Name() && other.Classification == cls {
			other.merge(srcLang, posts)
			return nil
		}
		if !t.reported.Add(strings.Join([]string{lang, file, def.Name(), cls}, "\x00")) {
			return nil
		}
		return collision(other, def.Name(), cls, lang, file, posts)
	}

	e := &Entry{
		Taxonomy:       def.Name(),
		Classification: cls,
		Lang:           lang,
		SourceLangs:    []string{srcLang},
		Path:           parts,
		File:           file,
		Posts:          posts,
	}
	t.byFile[lang][file] = e
	t.byKey[entryKey{def.Name(), lang, cls}] = e
	t.order[lang] = append(t.order[lang], e)
	return nil
}

// Generated reports whether def emits any page or feed for e. Entries
// whose visible posts are all filtered out may still be allocated.
func (e *Entry) Generated(def taxonomy.Definition) bool {
	if len(e.Posts) == 0 && def.Flags().OmitEmpty {
		return false
	}
	return def.ShouldGenerateList(e.Classification, e.Posts, e.Lang) ||
		def.ShouldGenerateRSS(e.Classification, e.Posts, e.Lang)
}

func (e *Entry) merge(srcLang string, posts []*content.Item) {
	if !slices.Contains(e.SourceLangs, srcLang) {
		e.SourceLangs = append(e.SourceLangs, srcLang)
	}
	seen := sets.New[string]()
	for _, p := range e.Posts {
		seen.Add(p.ID)
	}
	for _, p := range posts {
		if seen.Add(p.ID) {
			e.Posts = append(e.Posts, p)
		}
	}
}

func collision(other *Entry, taxonomyName, cls, lang, file string, posts []*content.Item) error {
	first := fmt.Sprintf("%s %q", other.Taxonomy, other.Classification)
	second := fmt.Sprintf("%s %q", taxonomyName, cls)
	return errors.PathCollisionError("classifications are too similar and share an output path").
		WithContext(errors.KeyTaxonomy, taxonomyName).
		WithContext(errors.KeyClassification, cls).
		WithContext(errors.KeyLanguage, lang).
		WithContext(errors.KeyPath, file).
		WithContext(errors.KeyClassifications, []string{first, second}).
		WithContext(errors.KeySources, []string{
			first + " is used in: " + strings.Join(content.SourcePaths(other.Posts), ", "),
			second + " is used in: " + strings.Join(content.SourcePaths(posts), ", "),
		}).
		Build()
}

// Visible returns the items shown in lang. Unless untranslated items are
// shown, only items with their own lang source remain.
func Visible(items []*content.Item, lang string, showUntranslated bool) []*content.Item {
	if showUntranslated {
		return items
	}
	out := make([]*content.Item, 0, len(items))
	for _, it := range items {
		if it.Translated(lang) {
			out = append(out, it)
		}
	}
	return out
}
