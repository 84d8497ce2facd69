// Package links resolves symbolic references such as link://tag/dogs to
// site paths through one handler per link kind.
package links

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

// Scheme prefixes symbolic references.
const Scheme = "link://"

// Handler returns the postprocessed output segments for name in lang.
type Handler func(name, lang string, t taxonomy.Target) ([]string, error)

// Registry maps link kinds to handlers.
type Registry struct {
	handlers map[string]Handler
	paths    taxonomy.PathBuilder
	baseURL  string
}

// New registers the page, overview, RSS and Atom handlers of every
// definition in reg.
func New(reg *taxonomy.Registry, baseURL string) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		paths:    reg.Paths(),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
	for _, def := range reg.Definitions() {
		r.registerTaxonomy(reg, def)
	}
	return r
}

func (r *Registry) registerTaxonomy(reg *taxonomy.Registry, def taxonomy.Definition) {
	name := def.Name()
	page := func(dest taxonomy.DestType) Handler {
		return func(cls, lang string, t taxonomy.Target) ([]string, error) {
			t.Dest = dest
			return reg.ClassificationPath(def, cls, lang, t)
		}
	}
	r.Register(name, page(taxonomy.DestPage))
	r.Register(name+"_rss", page(taxonomy.DestRSS))
	r.Register(name+"_atom", page(taxonomy.DestAtom))
	if _, _, ok := def.OverviewPath(""); ok {
		r.Register(name+"_index", func(_, lang string, _ taxonomy.Target) ([]string, error) {
			p, _ := reg.OverviewPath(def, lang)
			return p, nil
		})
	}
}

// Register adds or replaces the handler for kind.
func (r *Registry) Register(kind string, h Handler) { r.handlers[kind] = h }

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Path returns the output segments of kind/name.
func (r *Registry) Path(kind, name, lang string) ([]string, error) {
	return r.PagePath(kind, name, lang, taxonomy.Target{})
}

// PagePath returns the output segments of one page of kind/name.
func (r *Registry) PagePath(kind, name, lang string, t taxonomy.Target) ([]string, error) {
	h, ok := r.handlers[kind]
	if !ok {
		return nil, errors.ValidationError("unknown link kind").
			WithContext("kind", kind).
			WithContext(errors.KeyClassification, name).
			Build()
	}
	return h(name, lang, t)
}

// Link returns the site-absolute URL path of kind/name.
func (r *Registry) Link(kind, name, lang string) (string, error) {
	return r.PageLink(kind, name, lang, taxonomy.Target{})
}

// PageLink returns the URL path of one page of kind/name.
func (r *Registry) PageLink(kind, name, lang string, t taxonomy.Target) (string, error) {
	p, err := r.PagePath(kind, name, lang, t)
	if err != nil {
		return "", err
	}
	return r.paths.Link(p), nil
}

// AbsLink prefixes Link with the site base URL.
func (r *Registry) AbsLink(kind, name, lang string) (string, error) {
	return r.AbsPageLink(kind, name, lang, taxonomy.Target{})
}

// AbsPageLink prefixes PageLink with the site base URL.
func (r *Registry) AbsPageLink(kind, name, lang string, t taxonomy.Target) (string, error) {
	l, err := r.PageLink(kind, name, lang, t)
	if err != nil {
		return "", err
	}
	return r.Absolute(l), nil
}

// Absolute prefixes a site-absolute link with the base URL.
func (r *Registry) Absolute(link string) string { return r.baseURL + link }

// Resolve turns link://kind/name into a URL path. The name may itself
// contain slashes.
func (r *Registry) Resolve(ref, lang string) (string, error) {
	rest, ok := strings.CutPrefix(ref, Scheme)
	if !ok {
		return "", errors.ValidationError("not a symbolic link reference").
			WithContext(errors.KeyPath, ref).
			Build()
	}
	kind, name, _ := strings.Cut(rest, "/")
	return r.Link(kind, name, lang)
}
