package classify

import (
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
	"git.home.luguber.info/inful/taxogen/internal/util/sets"
)

var _ taxonomy.Stats = (*Result)(nil)

// ScannedFunc observes the corpus before classification starts.
type ScannedFunc func(corpus *content.Corpus)

// ClassifiedFunc observes a completed classification.
type ClassifiedFunc func(result *Result)

// Classifier assigns items to the classifications of every registered taxonomy.
type Classifier struct {
	registry   *taxonomy.Registry
	languages  []string
	scanned    []ScannedFunc
	classified []ClassifiedFunc
}

// New returns a classifier for the given output languages.
func New(registry *taxonomy.Registry, languages []string) *Classifier {
	return &Classifier{registry: registry, languages: slices.Clone(languages)}
}

// OnScanned registers fn to run before classification.
func (c *Classifier) OnScanned(fn ScannedFunc) { c.scanned = append(c.scanned, fn) }

// OnClassified registers fn to run once the result is complete.
func (c *Classifier) OnClassified(fn ClassifiedFunc) { c.classified = append(c.classified, fn) }

// Classify builds a fresh Result from corpus. A single-valued taxonomy that
// receives several classifications for an item aborts the pass.
func (c *Classifier) Classify(corpus *content.Corpus) (*Result, error) {
	for _, fn := range c.scanned {
		fn(corpus)
	}

	res := &Result{
		languages:  slices.Clone(c.languages),
		taxonomies: make(map[string]*taxonomyResult),
	}
	for _, def := range c.registry.Definitions() {
		tr, err := c.classifyTaxonomy(def, corpus)
		if err != nil {
			return nil, err
		}
		res.taxonomies[def.Name()] = tr
		res.order = append(res.order, def.Name())
	}

	for _, fn := range c.classified {
		fn(res)
	}
	return res, nil
}

func (c *Classifier) classifyTaxonomy(def taxonomy.Definition, corpus *content.Corpus) (*taxonomyResult, error) {
	flags := def.Flags()
	tr := &taxonomyResult{perLang: make(map[string]*langResult, len(c.languages))}
	for _, lang := range c.languages {
		l := &langResult{
			posts:    make(map[string][]*content.Item),
			members:  make(map[string]sets.Set[string]),
			assigned: make(map[string][]string),
		}
		for _, cls := range def.ImplicitClassifications(lang) {
			l.posts[cls] = nil
		}
		tr.perLang[lang] = l
	}

	for _, item := range corpus.Items() {
		if item.Hidden {
			continue
		}
		applies := flags.ApplyToPages
		if item.IsPost {
			applies = flags.ApplyToPosts
		}
		if !applies {
			continue
		}
		for _, lang := range c.languages {
			l := tr.perLang[lang]
			found := dedupe(def.Classify(item, lang))
			if !flags.MoreThanOnePerPost && len(found) > 1 {
				return nil, errors.ClassificationError("item has more than one classification in a single-valued taxonomy").
					WithContext(errors.KeyTaxonomy, def.Name()).
					WithContext(errors.KeyLanguage, lang).
					WithContext(errors.KeyItem, item.Meta(lang).SourcePath).
					WithContext(errors.KeyClassifications, found).
					Build()
			}
			if len(found) > 0 {
				l.assigned[item.ID] = found
			}
			for _, cls := range found {
				if err := l.insert(def, item, cls, lang); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, lang := range c.languages {
		if err := tr.perLang[lang].finish(def, lang); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

// insert adds item to cls and, when the taxonomy propagates, to every
// ancestor of cls.
func (l *langResult) insert(def taxonomy.Definition, item *content.Item, cls, lang string) error {
	l.add(cls, item)
	flags := def.Flags()
	if !flags.HasHierarchy || !flags.IncludePostsFromSubhierarchies {
		return nil
	}
	parts, err := hierarchy.Parse(cls)
	if err != nil {
		return withTaxonomy(err, def.Name(), lang)
	}
	for len(parts) > 1 {
		parts = parts[:len(parts)-1]
		l.add(hierarchy.Join(parts), item)
	}
	if len(parts) == 1 && flags.IncludePostsIntoHierarchyRoot {
		l.add("", item)
	}
	return nil
}

func (l *langResult) add(cls string, item *content.Item) {
	m, ok := l.members[cls]
	if !ok {
		m = sets.New[string]()
		l.members[cls] = m
	}
	if m.Add(item.ID) {
		l.posts[cls] = append(l.posts[cls], item)
	}
}

// finish sorts buckets and builds the hierarchy.
func (l *langResult) finish(def taxonomy.Definition, lang string) error {
	for cls, items := range l.posts {
		content.SortNewestFirst(items)
		def.SortPosts(items, cls, lang)
	}

	names := make([]string, 0, len(l.posts))
	for cls := range l.posts {
		names = append(names, cls)
	}
	slices.Sort(names)
	sorter := func(group []string, level int) { def.SortClassifications(group, lang, level) }

	hierarchical := def.Flags().HasHierarchy
	sorted, err := hierarchy.SortClassifications(names, hierarchical, sorter)
	if err != nil {
		return withTaxonomy(err, def.Name(), lang)
	}
	l.names = sorted

	if hierarchical {
		tree, err := hierarchy.Build(names)
		if err != nil {
			return withTaxonomy(err, def.Name(), lang)
		}
		tree.Sort(sorter)
		l.tree = tree
	}
	slog.Debug("Taxonomy classified",
		logfields.Taxonomy(def.Name()),
		logfields.Language(lang),
		logfields.Count(len(l.names)))
	return nil
}

func withTaxonomy(err error, name, lang string) error {
	if ce, ok := errors.AsClassified(err); ok {
		return ce.WithContext(errors.KeyTaxonomy, name).WithContext(errors.KeyLanguage, lang)
	}
	return err
}

func dedupe(values []string) []string {
	seen := sets.New[string]()
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen.Add(v) {
			out = append(out, v)
		}
	}
	return out
}
