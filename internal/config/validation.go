package config

import (
	stderrors "errors"
	"path"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
)

// Validate reports conflicting or out-of-range settings. Every problem is a
// ConfigurationError; all problems found are joined into one error.
func (c *Config) Validate() error {
	var errs []error
	add := func(setting, message string, kv ...any) {
		b := errors.ConfigError(message).WithContext(errors.KeySetting, setting)
		for i := 0; i+1 < len(kv); i += 2 {
			b = b.WithContext(kv[i].(string), kv[i+1])
		}
		errs = append(errs, b.Build())
	}

	if c.DefaultLang == "" {
		add("default_lang", "default language must be set")
	} else if _, ok := c.Translations[c.DefaultLang]; !ok {
		add("default_lang", "default language is missing from translations", errors.KeyLanguage, c.DefaultLang)
	}
	if c.IndexDisplayPostCount < 1 {
		add("index_display_post_count", "page size must be at least 1", "value", c.IndexDisplayPostCount)
	}
	if c.FeedLength < 0 {
		add("feed_length", "feed length must not be negative", "value", c.FeedLength)
	}
	if c.IndexFile == "" || strings.Contains(c.IndexFile, "/") || path.Ext(c.IndexFile) == "" {
		add("index_file", "index file must be a file name with an extension", "value", c.IndexFile)
	}

	a := c.Taxonomies.Archive
	if a.Enabled && a.Monthly && a.Single && !a.Full {
		add("taxonomies.archive", "cannot create monthly and single archives at the same time")
	}

	c.validateTranslationGroups("taxonomies.tags.translations", c.Taxonomies.Tags.Translations, add)
	c.validateTranslationGroups("taxonomies.categories.translations", c.Taxonomies.Categories.Translations, add)
	c.validateTranslationGroups("taxonomies.authors.translations", c.Taxonomies.Authors.Translations, add)
	c.validateTranslationGroups("taxonomies.archive.translations", c.Taxonomies.Archive.Translations, add)

	return stderrors.Join(errs...)
}

func (c *Config) validateTranslationGroups(setting string, groups []map[string]string, add func(string, string, ...any)) {
	for _, group := range groups {
		for _, lang := range sortedKeys(group) {
			if _, ok := c.Translations[lang]; !ok {
				add(setting, "translation group references an unknown language", errors.KeyLanguage, lang)
			}
		}
	}
}
