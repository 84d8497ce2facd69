package classify

import (
	"slices"

	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
	"git.home.luguber.info/inful/taxogen/internal/util/sets"
)

// Result is the immutable outcome of one classification pass. Slices
// returned by accessors are copies; trees and nodes must not be modified.
type Result struct {
	languages  []string
	taxonomies map[string]*taxonomyResult
	order      []string
}

type taxonomyResult struct {
	perLang map[string]*langResult
}

type langResult struct {
	posts   map[string][]*content.Item
	members map[string]sets.Set[string]
	// names is every classification in hierarchy order.
	names []string
	tree  *hierarchy.Tree
	// assigned maps item IDs to the classifications Classify returned.
	assigned map[string][]string
}

func (r *Result) lang(taxonomy, lang string) *langResult {
	t, ok := r.taxonomies[taxonomy]
	if !ok {
		return nil
	}
	return t.perLang[lang]
}

// Languages returns the languages the result was computed for.
func (r *Result) Languages() []string { return slices.Clone(r.languages) }

// Taxonomies returns the classified taxonomy names in registry order.
func (r *Result) Taxonomies() []string { return slices.Clone(r.order) }

// Classifications returns every classification of a taxonomy in one
// language, ordered the way the taxonomy sorts them.
func (r *Result) Classifications(taxonomy, lang string) []string {
	if l := r.lang(taxonomy, lang); l != nil {
		return slices.Clone(l.names)
	}
	return nil
}

// Has reports whether the classification exists, possibly without posts.
func (r *Result) Has(taxonomy, lang, classification string) bool {
	l := r.lang(taxonomy, lang)
	if l == nil {
		return false
	}
	_, ok := l.posts[classification]
	return ok
}

// Posts returns the items of a classification, newest first.
func (r *Result) Posts(taxonomy, lang, classification string) []*content.Item {
	if l := r.lang(taxonomy, lang); l != nil {
		return slices.Clone(l.posts[classification])
	}
	return nil
}

// Sources returns the sorted source paths of a classification's items.
func (r *Result) Sources(taxonomy, lang, classification string) []string {
	return content.SourcePaths(r.Posts(taxonomy, lang, classification))
}

// Assigned returns the classifications an item received directly, without
// hierarchy propagation.
func (r *Result) Assigned(taxonomy, lang, itemID string) []string {
	if l := r.lang(taxonomy, lang); l != nil {
		return slices.Clone(l.assigned[itemID])
	}
	return nil
}

// Tree returns the sorted hierarchy of a hierarchical taxonomy, or nil.
func (r *Result) Tree(taxonomy, lang string) *hierarchy.Tree {
	if l := r.lang(taxonomy, lang); l != nil {
		return l.tree
	}
	return nil
}

// Flat returns the hierarchy nodes in pre-order.
func (r *Result) Flat(taxonomy, lang string) []*hierarchy.Node {
	tree := r.Tree(taxonomy, lang)
	if tree == nil {
		return nil
	}
	out := make([]*hierarchy.Node, 0, tree.Len())
	for _, id := range tree.Flat() {
		out = append(out, tree.Node(id))
	}
	return out
}

// Node looks up the hierarchy node of a classification.
func (r *Result) Node(taxonomy, lang, classification string) (*hierarchy.Node, bool) {
	tree := r.Tree(taxonomy, lang)
	if tree == nil {
		return nil, false
	}
	id, ok := tree.Lookup(classification)
	if !ok {
		return nil, false
	}
	return tree.Node(id), true
}
