package config

import (
	"gopkg.in/yaml.v3"
)

// Localized is a per-language string. A plain YAML scalar applies to every
// language and is stored under the empty key.
type Localized map[string]string

// UnmarshalYAML accepts either a scalar or a language mapping.
func (l *Localized) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = Localized{"": value.Value}
		return nil
	}
	m := map[string]string{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	*l = m
	return nil
}

// MarshalYAML writes a language-independent value back as a scalar.
func (l Localized) MarshalYAML() (any, error) {
	if v, ok := l[""]; ok && len(l) == 1 {
		return v, nil
	}
	return map[string]string(l), nil
}

// Get returns the value for lang, falling back to the language-independent value.
func (l Localized) Get(lang string) string {
	if v, ok := l[lang]; ok {
		return v
	}
	return l[""]
}

// TaxonomiesConfig groups the per-kind taxonomy settings.
type TaxonomiesConfig struct {
	Tags       TagsConfig       `yaml:"tags"`
	Categories CategoriesConfig `yaml:"categories"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Authors    ListConfig       `yaml:"authors"`
	Sections   SectionsConfig   `yaml:"sections"`
	PageIndex  PageIndexConfig  `yaml:"page_index"`
}

// ListConfig holds the options shared by taxonomies with per-classification
// list pages and an overview page.
type ListConfig struct {
	Enabled bool      `yaml:"enabled"`
	Path    Localized `yaml:"path"`
	// IndexPath places the overview page; empty puts it at Path/index_file.
	IndexPath       Localized `yaml:"index_path,omitempty"`
	PagesAreIndexes bool      `yaml:"pages_are_indexes"`
	// MinimumPosts is the post count a classification needs to be listed on
	// the overview page.
	MinimumPosts int `yaml:"minimum_posts"`

	Titles       map[string]map[string]string `yaml:"titles,omitempty"`       // lang -> classification -> title
	Descriptions map[string]map[string]string `yaml:"descriptions,omitempty"` // lang -> classification -> description
	// Translations lists groups of equivalent classifications, one entry per language.
	Translations []map[string]string `yaml:"translations,omitempty"`
}

// Title returns a configured page title.
func (l ListConfig) Title(lang, classification string) (string, bool) {
	t, ok := l.Titles[lang][classification]
	return t, ok
}

// Description returns a configured page description.
func (l ListConfig) Description(lang, classification string) string {
	return l.Descriptions[lang][classification]
}

// TagsConfig configures the tag taxonomy.
type TagsConfig struct {
	ListConfig `yaml:",inline"`
	Hidden     []string `yaml:"hidden,omitempty"`
}

// CategoriesConfig configures the category taxonomy.
type CategoriesConfig struct {
	ListConfig `yaml:",inline"`
	Prefix     string `yaml:"prefix"`
	// FlatHierarchy writes only the leaf of a nested category into the path.
	FlatHierarchy bool     `yaml:"flat_hierarchy"`
	Hidden        []string `yaml:"hidden,omitempty"`
}

// ArchiveConfig configures the date archive.
type ArchiveConfig struct {
	Enabled  bool      `yaml:"enabled"`
	Path     Localized `yaml:"path"`
	Filename string    `yaml:"filename"`
	Single   bool      `yaml:"single"`
	Monthly  bool      `yaml:"monthly"`
	Daily    bool      `yaml:"daily"`
	// Full creates year, month and day pages with full post lists.
	Full            bool `yaml:"full"`
	PagesAreIndexes bool `yaml:"pages_are_indexes"`
	IncludeRoot     bool `yaml:"include_root"`

	Translations []map[string]string `yaml:"translations,omitempty"`
}

// Levels is the number of date components in an archive classification.
func (a ArchiveConfig) Levels() int {
	switch {
	case a.Daily || a.Full:
		return 3
	case a.Monthly:
		return 2
	case a.Single:
		return 0
	default:
		return 1
	}
}

// SectionsConfig configures post sections.
type SectionsConfig struct {
	Enabled         bool                         `yaml:"enabled"`
	PagesAreIndexes bool                         `yaml:"pages_are_indexes"`
	Names           map[string]map[string]string `yaml:"names,omitempty"`  // lang -> section -> display name
	Titles          map[string]map[string]string `yaml:"titles,omitempty"` // lang -> section -> title format with {name}
	Descriptions    map[string]map[string]string `yaml:"descriptions,omitempty"`
}

// PageIndexConfig configures folder listings of pages.
type PageIndexConfig struct {
	Enabled bool `yaml:"enabled"`
}
