package config

// Default returns a configuration with every setting at its default value.
// Files are decoded on top of it, so keys absent from YAML keep these values.
func Default() *Config {
	return &Config{
		DefaultLang:           "en",
		ContentDir:            "content",
		OutputFolder:          "output",
		StateFile:             ".taxogen/state.db",
		BlogTitle:             Localized{"": "My Site"},
		IndexFile:             "index.html",
		PrettyURLs:            true,
		StripIndexes:          true,
		Slugify:               true,
		ShowUntranslatedPosts: true,
		FeedLength:            10,
		IndexDisplayPostCount: 10,
		GenerateRSS:           true,
		Taxonomies: TaxonomiesConfig{
			Tags: TagsConfig{
				ListConfig: ListConfig{Enabled: true, Path: Localized{"": "categories"}, MinimumPosts: 1},
				Hidden:     []string{"mathjax"},
			},
			Categories: CategoriesConfig{
				ListConfig: ListConfig{Enabled: true, Path: Localized{"": "categories"}, MinimumPosts: 1},
				Prefix:     "cat_",
			},
			Archive: ArchiveConfig{
				Enabled:     true,
				Path:        Localized{"": "archive"},
				Filename:    "archive.html",
				IncludeRoot: true,
			},
			Authors: ListConfig{Enabled: true, Path: Localized{"": "authors"}, MinimumPosts: 1},
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// applyDefaults fills settings whose default depends on other settings.
func applyDefaults(cfg *Config) {
	if len(cfg.Translations) == 0 {
		cfg.Translations = map[string]string{cfg.DefaultLang: ""}
	}
	if cfg.BlogTitle == nil {
		cfg.BlogTitle = Localized{"": "My Site"}
	}
	if cfg.Taxonomies.Archive.Filename == "" {
		cfg.Taxonomies.Archive.Filename = "archive.html"
	}
}
