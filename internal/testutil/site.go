// Package testutil builds throwaway sites for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/taxogen/internal/config"
)

// Site is a fluent builder for a configuration file plus content tree.
type Site struct {
	t      *testing.T
	Dir    string
	Config *config.Config
}

// NewSite starts a site in a fresh temp directory with the default
// configuration, output folder "out" and base URL https://example.org/.
func NewSite(t *testing.T) *Site {
	t.Helper()
	cfg := config.Default()
	cfg.OutputFolder = "out"
	cfg.BaseURL = "https://example.org/"
	cfg.StateFile = "state.db"
	return &Site{t: t, Dir: t.TempDir(), Config: cfg}
}

// WithLanguages sets the default language and the language prefixes.
func (s *Site) WithLanguages(defaultLang string, prefixes map[string]string) *Site {
	s.Config.DefaultLang = defaultLang
	s.Config.Translations = prefixes
	return s
}

// WithoutAuthors disables the author taxonomy, which most tests do not need.
func (s *Site) WithoutAuthors() *Site {
	s.Config.Taxonomies.Authors.Enabled = false
	return s
}

// Configure applies fn to the configuration.
func (s *Site) Configure(fn func(*config.Config)) *Site {
	fn(s.Config)
	return s
}

// Write places a source file below the content directory. fields become
// its YAML frontmatter.
func (s *Site) Write(rel string, fields map[string]any, body string) *Site {
	s.t.Helper()
	front, err := yaml.Marshal(fields)
	require.NoError(s.t, err)
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n")
	b.WriteString(body)

	p := filepath.Join(s.ContentDir(), filepath.FromSlash(rel))
	require.NoError(s.t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(s.t, os.WriteFile(p, []byte(b.String()), 0o600))
	return s
}

// ConfigPath is where Save writes the configuration.
func (s *Site) ConfigPath() string { return filepath.Join(s.Dir, "taxogen.yaml") }

// ContentDir is the absolute content directory.
func (s *Site) ContentDir() string { return filepath.Join(s.Dir, s.Config.ContentDir) }

// Save writes the configuration and returns its path.
func (s *Site) Save() string {
	s.t.Helper()
	data, err := yaml.Marshal(s.Config)
	require.NoError(s.t, err)
	require.NoError(s.t, os.WriteFile(s.ConfigPath(), data, 0o600))
	return s.ConfigPath()
}

// Load saves and reloads the configuration through the normal parser so
// defaults and validation apply.
func (s *Site) Load() *config.Config {
	s.t.Helper()
	cfg, err := config.Load(s.Save())
	require.NoError(s.t, err)
	return cfg
}

// AssertFileContains checks a file relative to the site directory.
func (s *Site) AssertFileContains(rel, expected string) {
	s.t.Helper()
	data, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	require.NoError(s.t, err)
	require.Contains(s.t, string(data), expected)
}
