package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments made by Normalize.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerations, language codes, path settings and
// bounds in place. It runs before defaults are derived.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}

	if raw := strings.TrimSpace(string(c.Logging.Level)); raw != "" {
		if _, err := logLevelNormalizer.NormalizeWithError(raw); err != nil {
			res.Warnings = append(res.Warnings, warnUnknown("logging.level", raw, string(LogLevelInfo)))
		}
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	if raw := strings.TrimSpace(string(c.Logging.Format)); raw != "" {
		if _, err := logFormatNormalizer.NormalizeWithError(raw); err != nil {
			res.Warnings = append(res.Warnings, warnUnknown("logging.format", raw, string(LogFormatText)))
		}
	}
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))

	c.DefaultLang = strings.TrimSpace(c.DefaultLang)
	if len(c.Translations) > 0 {
		normalized := make(map[string]string, len(c.Translations))
		for lang, prefix := range c.Translations {
			clean := strings.Trim(strings.TrimSpace(prefix), "/")
			if clean != prefix {
				res.Warnings = append(res.Warnings, warnChanged("translations."+lang, prefix, clean))
			}
			normalized[strings.TrimSpace(lang)] = clean
		}
		c.Translations = normalized
	}

	c.IndexFile = strings.TrimSpace(c.IndexFile)
	c.BaseURL = strings.TrimSpace(c.BaseURL)

	t := &c.Taxonomies
	normalizePath("taxonomies.tags.path", t.Tags.Path, res)
	normalizePath("taxonomies.tags.index_path", t.Tags.IndexPath, res)
	normalizePath("taxonomies.categories.path", t.Categories.Path, res)
	normalizePath("taxonomies.categories.index_path", t.Categories.IndexPath, res)
	normalizePath("taxonomies.authors.path", t.Authors.Path, res)
	normalizePath("taxonomies.authors.index_path", t.Authors.IndexPath, res)
	normalizePath("taxonomies.archive.path", t.Archive.Path, res)
	t.Tags.Hidden = normalizeStringSlice("taxonomies.tags.hidden", t.Tags.Hidden, res)
	t.Categories.Hidden = normalizeStringSlice("taxonomies.categories.hidden", t.Categories.Hidden, res)
	for _, l := range []*ListConfig{&t.Tags.ListConfig, &t.Categories.ListConfig, &t.Authors} {
		if l.MinimumPosts < 0 {
			l.MinimumPosts = 0
		}
	}
	return res
}

// normalizePath trims surrounding slashes from every localized value.
func normalizePath(label string, l Localized, res *NormalizationResult) {
	for lang, v := range l {
		clean := strings.Trim(strings.TrimSpace(v), "/")
		if clean != v {
			res.Warnings = append(res.Warnings, warnChanged(label, v, clean))
			l[lang] = clean
		}
	}
}

// normalizeStringSlice trims and dedupes, keeping first-seen order.
func normalizeStringSlice(label string, in []string, res *NormalizationResult) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		t := strings.TrimSpace(v)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) != len(in) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s list (%d -> %d entries)", label, len(in), len(out)))
	}
	return out
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to '%s'", field, value, def)
}
