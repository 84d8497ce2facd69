package taxonomy

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
)

// Registry holds the enabled taxonomy definitions of a site.
type Registry struct {
	defs     []Definition
	byName   map[string]Definition
	paths    PathBuilder
	messages *Messages
}

// NewRegistry builds the definitions enabled in cfg in Kinds order.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	r := &Registry{
		byName:   make(map[string]Definition),
		paths:    NewPathBuilder(cfg),
		messages: NewMessages(cfg.Messages),
	}
	for _, kind := range Kinds {
		if !kindEnabled(cfg, kind) {
			continue
		}
		if err := r.Register(newDefinition(kind, cfg, r.messages)); err != nil {
			return nil, err
		}
	}
	slog.Debug("Taxonomy registry built", logfields.Count(len(r.defs)))
	return r, nil
}

func kindEnabled(cfg *config.Config, kind Kind) bool {
	t := cfg.Taxonomies
	switch kind {
	case KindTag:
		return t.Tags.Enabled
	case KindCategory:
		return t.Categories.Enabled
	case KindArchive:
		return t.Archive.Enabled
	case KindAuthor:
		return t.Authors.Enabled
	case KindSection:
		return t.Sections.Enabled
	case KindPageIndex:
		return t.PageIndex.Enabled
	default:
		panic(fmt.Sprintf("taxonomy: unhandled kind %d", kind))
	}
}

func newDefinition(kind Kind, cfg *config.Config, messages *Messages) Definition {
	switch kind {
	case KindTag:
		return newTag(cfg, messages)
	case KindCategory:
		return newCategory(cfg, messages)
	case KindArchive:
		return newArchive(cfg, messages)
	case KindAuthor:
		return newAuthor(cfg, messages)
	case KindSection:
		return newSection(cfg, messages)
	case KindPageIndex:
		return newPageIndex(cfg, messages)
	default:
		panic(fmt.Sprintf("taxonomy: unhandled kind %d", kind))
	}
}

// Register adds a definition. Two definitions may not share a
// classification name.
func (r *Registry) Register(d Definition) error {
	if _, ok := r.byName[d.Name()]; ok {
		return errors.ConfigError("more than one taxonomy with the same classification name").
			WithContext(errors.KeyTaxonomy, d.Name()).
			WithContext(errors.KeySetting, "taxonomies").
			Build()
	}
	r.byName[d.Name()] = d
	r.defs = append(r.defs, d)
	return nil
}

// Definitions returns the registered definitions in registration order.
func (r *Registry) Definitions() []Definition { return r.defs }

// Lookup finds a definition by classification name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// ByKind returns the first definition of kind.
func (r *Registry) ByKind(kind Kind) (Definition, bool) {
	for _, d := range r.defs {
		if d.Kind() == kind {
			return d, true
		}
	}
	return nil, false
}

// Paths returns the path builder configured for the site.
func (r *Registry) Paths() PathBuilder { return r.paths }

// Messages returns the site message catalog.
func (r *Registry) Messages() *Messages { return r.messages }

// ClassificationPath returns the postprocessed output path of a classification.
func (r *Registry) ClassificationPath(d Definition, classification, lang string, t Target) ([]string, error) {
	segments, mode, err := d.Path(classification, lang)
	if err != nil {
		return nil, err
	}
	return r.paths.Postprocess(segments, mode, lang, t), nil
}

// OverviewPath returns the postprocessed overview path of d, if it has one.
func (r *Registry) OverviewPath(d Definition, lang string) ([]string, bool) {
	segments, mode, ok := d.OverviewPath(lang)
	if !ok {
		return nil, false
	}
	return r.paths.Postprocess(segments, mode, lang, Target{}), true
}
