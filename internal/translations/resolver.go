// Package translations relates classifications across languages so that a
// classification page can link to its counterparts.
package translations

import (
	"cmp"
	"slices"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/pathalloc"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
	"git.home.luguber.info/inful/taxogen/internal/util/sets"
)

// Variant is a counterpart of a classification in another language.
type Variant struct {
	Lang           string `json:"lang"`
	Classification string `json:"classification"`
}

// Resolver answers cross-language lookups for allocated classifications.
type Resolver struct {
	// equivalents maps taxonomy -> lang -> classification -> other lang -> counterparts.
	equivalents map[string]map[string]map[string]map[string][]string
	table       *pathalloc.Table
	reg         *taxonomy.Registry
	languages   []string
}

// New seeds the resolver with the translation groups configured for each
// taxonomy. Classifications without a group are equivalent to the same
// string in every other language.
func New(cfg *config.Config, reg *taxonomy.Registry, table *pathalloc.Table) *Resolver {
	r := &Resolver{
		equivalents: make(map[string]map[string]map[string]map[string][]string),
		table:       table,
		reg:         reg,
		languages:   slices.Sorted(slices.Values(cfg.Languages())),
	}
	for _, def := range reg.Definitions() {
		for _, group := range groupsFor(cfg, def.Kind()) {
			r.addGroup(def.Name(), group)
		}
	}
	return r
}

func groupsFor(cfg *config.Config, kind taxonomy.Kind) []map[string]string {
	t := cfg.Taxonomies
	switch kind {
	case taxonomy.KindTag:
		return t.Tags.Translations
	case taxonomy.KindCategory:
		return t.Categories.Translations
	case taxonomy.KindArchive:
		return t.Archive.Translations
	case taxonomy.KindAuthor:
		return t.Authors.Translations
	default:
		return nil
	}
}

// addGroup records that every member of group is equivalent to every other.
func (r *Resolver) addGroup(taxonomyName string, group map[string]string) {
	byLang, ok := r.equivalents[taxonomyName]
	if !ok {
		byLang = make(map[string]map[string]map[string][]string)
		r.equivalents[taxonomyName] = byLang
	}
	for lang, cls := range group {
		if byLang[lang] == nil {
			byLang[lang] = make(map[string]map[string][]string)
		}
		if byLang[lang][cls] == nil {
			byLang[lang][cls] = make(map[string][]string)
		}
		for other, otherCls := range group {
			if other == lang {
				continue
			}
			if !slices.Contains(byLang[lang][cls][other], otherCls) {
				byLang[lang][cls][other] = append(byLang[lang][cls][other], otherCls)
			}
		}
	}
}

// Variants returns the counterparts of classification in every language
// other than lang, ordered by language and then by classification order.
// Only counterparts that get generated pages or feeds are returned.
func (r *Resolver) Variants(taxonomyName, classification, lang string) []Variant {
	def, ok := r.reg.Lookup(taxonomyName)
	if !ok {
		return nil
	}
	configured := r.equivalents[taxonomyName][lang][classification]
	var out []Variant
	for _, other := range r.languages {
		if other == lang {
			continue
		}
		candidates := sets.New(configured[other]...)
		if len(configured[other]) == 0 {
			candidates.Add(classification)
		}
		order := r.table.Classifications(taxonomyName, other)
		var found []string
		for cls := range candidates {
			if e, ok := r.table.Lookup(taxonomyName, other, cls); ok && e.Generated(def) {
				found = append(found, cls)
			}
		}
		slices.SortFunc(found, func(a, b string) int {
			return cmp.Compare(slices.Index(order, a), slices.Index(order, b))
		})
		for _, cls := range found {
			out = append(out, Variant{Lang: other, Classification: cls})
		}
	}
	return out
}
