package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	cfg, err := config.Parse([]byte("base_url: https://example.org/\ntranslations:\n  en: \"\"\n  de: de\n"))
	require.NoError(t, err)
	reg, err := taxonomy.NewRegistry(cfg)
	require.NoError(t, err)
	return New(reg, cfg.BaseURL)
}

func TestLinks(t *testing.T) {
	r := newRegistry(t)
	tests := []struct {
		kind, name, lang, want string
	}{
		{"tag", "dogs", "en", "/categories/dogs/"},
		{"tag", "dogs", "de", "/de/categories/dogs/"},
		{"tag_rss", "dogs", "en", "/categories/dogs.xml"},
		{"tag_atom", "dogs", "en", "/categories/dogs.atom"},
		{"tag_index", "", "en", "/categories/"},
		{"category", "pets/dogs", "en", "/categories/cat_pets/dogs/"},
		{"archive", "2012", "en", "/archive/2012/"},
		{"archive", "", "en", "/archive/archive.html"},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.name, func(t *testing.T) {
			got, err := r.Link(tt.kind, tt.name, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageLink(t *testing.T) {
	r := newRegistry(t)
	got, err := r.PageLink("tag", "dogs", "en", taxonomy.Target{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "/categories/dogs/index-2.html", got)
}

func TestResolve(t *testing.T) {
	r := newRegistry(t)

	got, err := r.Resolve("link://category/pets/dogs", "de")
	require.NoError(t, err)
	assert.Equal(t, "/de/categories/cat_pets/dogs/", got)

	_, err = r.Resolve("https://example.org/", "en")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = r.Resolve("link://nope/x", "en")
	require.Error(t, err)
	assert.Equal(t, 2, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestAbsLinkAndKinds(t *testing.T) {
	r := newRegistry(t)
	got, err := r.AbsLink("author", "Jane", "en")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/authors/jane/", got)

	assert.Contains(t, r.Kinds(), "category_index")
	assert.NotContains(t, r.Kinds(), "archive_index")
}
