package pathalloc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/taxogen/internal/classify"
	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

type fixture struct {
	cfg *config.Config
	reg *taxonomy.Registry
}

func setup(t *testing.T, yaml string) fixture {
	t.Helper()
	cfg, err := config.Parse([]byte("translations:\n  en: \"\"\n  de: de\n" + yaml))
	require.NoError(t, err)
	reg, err := taxonomy.NewRegistry(cfg)
	require.NoError(t, err)
	return fixture{cfg: cfg, reg: reg}
}

func (f fixture) allocate(t *testing.T, items ...*content.Item) (*Table, error) {
	t.Helper()
	res, err := classify.New(f.reg, f.cfg.Languages()).Classify(content.NewCorpus("en", items...))
	require.NoError(t, err)
	return Allocate(res, f.reg, f.cfg)
}

func post(id, date string, tags ...string) *content.Item {
	d, _ := time.Parse("2006-01-02", date)
	return &content.Item{
		ID:          id,
		IsPost:      true,
		Date:        d,
		DefaultLang: "en",
		Translations: map[string]*content.Metadata{
			"en": {SourcePath: id + ".md", Tags: tags},
		},
	}
}

func TestCollisionBetweenTags(t *testing.T) {
	f := setup(t, "taxonomies:\n  tags:\n    path: tags\n")
	_, err := f.allocate(t, post("posts/a", "2012-01-01", "Dogs"), post("posts/b", "2012-01-02", "dogs"))
	require.Error(t, err)

	collisions := errors.Collect(err, errors.CategoryPathCollision)
	require.NotEmpty(t, collisions)
	ce := collisions[0]
	names, ok := ce.Context().GetStrings(errors.KeyClassifications)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{`tag "Dogs"`, `tag "dogs"`}, names)
	file, _ := ce.Context().GetString(errors.KeyPath)
	assert.Equal(t, "tags/dogs/index.html", file)
	sources, _ := ce.Context().GetStrings(errors.KeySources)
	assert.Contains(t, sources, `tag "Dogs" is used in: posts/a.md`)
	assert.Contains(t, sources, `tag "dogs" is used in: posts/b.md`)
	assert.Equal(t, 4, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestCollisionAcrossTaxonomies(t *testing.T) {
	f := setup(t, "taxonomies:\n  categories:\n    prefix: \"\"\n")
	p := post("posts/a", "2012-01-01", "dogs")
	p.Translations["en"].Category = "dogs"

	_, err := f.allocate(t, p)
	require.Error(t, err)
	collisions := errors.Collect(err, errors.CategoryPathCollision)
	// One collision per output language.
	require.Len(t, collisions, 2)
	names, _ := collisions[0].Context().GetStrings(errors.KeyClassifications)
	assert.Equal(t, []string{`tag "dogs"`, `category "dogs"`}, names)
}

func TestEmptySegmentIsFatal(t *testing.T) {
	f := setup(t, "")
	_, err := f.allocate(t, post("posts/a", "2012-01-01", "!!!"))
	require.Error(t, err)
	ce := errors.Collect(err, errors.CategoryPathCollision)[0]
	cls, _ := ce.Context().GetString(errors.KeyClassification)
	assert.Equal(t, "!!!", cls)
}

func TestMergeAcrossSourceLanguages(t *testing.T) {
	f := setup(t, "")
	a := post("posts/a", "2012-01-01", "dogs")
	a.Translations["de"] = &content.Metadata{SourcePath: "posts/a.de.md", Tags: []string{"dogs"}}
	b := post("posts/b", "2012-02-01", "cats")
	b.Translations["de"] = &content.Metadata{SourcePath: "posts/b.de.md", Tags: []string{"dogs"}}

	table, err := f.allocate(t, a, b)
	require.NoError(t, err)

	e, ok := table.Lookup("tag", "en", "dogs")
	require.True(t, ok)
	assert.Equal(t, []string{"en", "de"}, e.SourceLangs)
	assert.Equal(t, "categories/dogs/index.html", e.File)
	require.Len(t, e.Posts, 2)
	assert.Equal(t, "posts/b", e.Posts[0].ID)

	de, ok := table.Lookup("tag", "de", "cats")
	require.True(t, ok)
	assert.Equal(t, "de/categories/cats/index.html", de.File)
	at, ok := table.At("de", "de/categories/cats/index.html")
	require.True(t, ok)
	assert.Same(t, de, at)
}

func TestUntranslatedPostsFilteredPerLanguage(t *testing.T) {
	f := setup(t, "show_untranslated_posts: false\n")
	table, err := f.allocate(t, post("posts/a", "2012-01-01", "dogs"))
	require.NoError(t, err)

	en, ok := table.Lookup("tag", "en", "dogs")
	require.True(t, ok)
	assert.Len(t, en.Posts, 1)
	de, ok := table.Lookup("tag", "de", "dogs")
	require.True(t, ok)
	assert.Empty(t, de.Posts)
}

func TestSingleAuthorSiteAllocatesNoAuthorPages(t *testing.T) {
	f := setup(t, "")
	a := post("posts/a", "2012-01-01")
	a.Translations["en"].Author = "ann"
	table, err := f.allocate(t, a)
	require.NoError(t, err)
	assert.Empty(t, table.Classifications("author", "en"))
	assert.Equal(t, []string{"", "2012"}, table.Classifications("archive", "en"))

	b := post("posts/b", "2012-01-01")
	b.Translations["en"].Author = "bob"
	table, err = f.allocate(t, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"ann", "bob"}, table.Classifications("author", "en"))
}

func TestAllCollisionsReported(t *testing.T) {
	f := setup(t, "")
	_, err := f.allocate(t,
		post("a", "2012-01-01", "Dogs", "Cats"),
		post("b", "2012-01-01", "dogs", "cats"),
	)
	require.Error(t, err)
	// Two pairs in each of two languages.
	assert.Len(t, errors.Collect(err, errors.CategoryPathCollision), 4)
}

func TestVisible(t *testing.T) {
	a := post("a", "2012-01-01")
	b := post("b", "2012-01-01")
	b.Translations["de"] = &content.Metadata{}
	items := []*content.Item{a, b}
	assert.Len(t, Visible(items, "de", true), 2)
	assert.Equal(t, []*content.Item{b}, Visible(items, "de", false))
}
