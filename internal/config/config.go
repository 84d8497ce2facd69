package config

import (
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
)

// Config is the site configuration consumed by one classification pass.
type Config struct {
	DefaultLang  string            `yaml:"default_lang"`
	Translations map[string]string `yaml:"translations"` // language -> URL prefix ("" for the default language)

	ContentDir   string    `yaml:"content_dir"`
	OutputFolder string    `yaml:"output_folder"`
	StateFile    string    `yaml:"state_file"`
	BaseURL      string    `yaml:"base_url"`
	BlogTitle    Localized `yaml:"blog_title"`
	BlogAuthor   string    `yaml:"blog_author"`

	IndexFile             string `yaml:"index_file"`
	PrettyURLs            bool   `yaml:"pretty_urls"`
	StripIndexes          bool   `yaml:"strip_indexes"`
	Slugify               bool   `yaml:"slugify"`
	ShowUntranslatedPosts bool   `yaml:"show_untranslated_posts"`
	FeedLength            int    `yaml:"feed_length"`
	IndexDisplayPostCount int    `yaml:"index_display_post_count"`
	GenerateRSS           bool   `yaml:"generate_rss"`
	GenerateAtom          bool   `yaml:"generate_atom"`
	// IndexesPagesMain also writes the first page of a paginated list to
	// its numbered path.
	IndexesPagesMain bool `yaml:"indexes_pages_main"`

	// Messages overrides the built-in message catalog per language.
	Messages map[string]map[string]string `yaml:"messages,omitempty"`

	Taxonomies TaxonomiesConfig `yaml:"taxonomies"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Languages returns the configured languages with the default language first
// and the rest in lexical order.
func (c *Config) Languages() []string {
	out := make([]string, 0, len(c.Translations))
	if _, ok := c.Translations[c.DefaultLang]; ok {
		out = append(out, c.DefaultLang)
	}
	for _, lang := range sortedKeys(c.Translations) {
		if lang != c.DefaultLang {
			out = append(out, lang)
		}
	}
	return out
}

// TranslationPrefix returns the output prefix of a language.
func (c *Config) TranslationPrefix(lang string) string {
	return c.Translations[lang]
}

// Load reads, normalizes, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	if envFile, err := loadEnvFile(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
			WithContext(errors.KeyPath, envFile).
			Build()
	} else if envFile != "" {
		slog.Debug("Loaded environment variables", logfields.Path(envFile))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext(errors.KeyPath, configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext(errors.KeyPath, configPath).
			Build()
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	slog.Debug("Configuration loaded",
		logfields.Path(configPath),
		slog.Int("languages", len(cfg.Translations)))
	return cfg, nil
}

// Parse decodes YAML configuration content. Environment references are
// expanded before decoding; absent keys keep their defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	res := Normalize(cfg)
	for _, w := range res.Warnings {
		slog.Warn("config normalization", slog.String("warning", w))
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext(errors.KeyPath, configPath).
			Build()
	}

	example := Default()
	example.Translations = map[string]string{"en": "", "de": "de"}
	example.BaseURL = "https://example.com/"
	example.BlogTitle = Localized{"": "My Site"}
	example.BlogAuthor = "Jane Doe"
	example.Taxonomies.Categories.Titles = map[string]map[string]string{
		"en": {"travel": "Stories from the road"},
	}
	example.Taxonomies.Tags.Translations = []map[string]string{
		{"en": "cooking", "de": "kochen"},
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext(errors.KeyPath, configPath).
			Build()
	}
	return nil
}

// Summary is a compact, deterministic description of the settings that
// influence rendered output. It feeds task fingerprints.
func (c *Config) Summary() map[string]any {
	return map[string]any{
		"default_lang":             c.DefaultLang,
		"translations":             c.Translations,
		"base_url":                 c.BaseURL,
		"index_file":               c.IndexFile,
		"pretty_urls":              c.PrettyURLs,
		"strip_indexes":            c.StripIndexes,
		"show_untranslated_posts":  c.ShowUntranslatedPosts,
		"feed_length":              c.FeedLength,
		"index_display_post_count": c.IndexDisplayPostCount,
		"generate_rss":             c.GenerateRSS,
		"generate_atom":            c.GenerateAtom,
		"indexes_pages_main":       c.IndexesPagesMain,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
