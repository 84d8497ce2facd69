package taxonomy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
)

func siteConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("translations:\n  en: \"\"\n  de: de\n" + yaml))
	require.NoError(t, err)
	return cfg
}

func item(id string, date string, meta content.Metadata) *content.Item {
	d, _ := time.Parse("2006-01-02", date)
	m := meta
	return &content.Item{
		ID:           id,
		IsPost:       true,
		Date:         d,
		DefaultLang:  "en",
		Translations: map[string]*content.Metadata{"en": &m},
	}
}

type fakeStats map[string][]string

func (f fakeStats) Classifications(taxonomy, lang string) []string { return f[taxonomy+"/"+lang] }

func TestRegistryDefaults(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, ""))
	require.NoError(t, err)

	var names []string
	for _, d := range r.Definitions() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"tag", "category", "archive", "author"}, names)

	d, ok := r.ByKind(KindArchive)
	require.True(t, ok)
	assert.Equal(t, "archive", d.Kind().String())
	_, ok = r.Lookup("section_index")
	assert.False(t, ok)
}

func TestRegistryAllKinds(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, "taxonomies:\n  sections:\n    enabled: true\n  page_index:\n    enabled: true\n"))
	require.NoError(t, err)
	require.Len(t, r.Definitions(), len(Kinds))
	for i, d := range r.Definitions() {
		assert.Equal(t, Kinds[i], d.Kind())
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	cfg := siteConfig(t, "")
	r, err := NewRegistry(cfg)
	require.NoError(t, err)

	err = r.Register(newTag(cfg, r.Messages()))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	assert.Equal(t, 7, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestTag(t *testing.T) {
	cfg := siteConfig(t, "taxonomies:\n  tags:\n    path: tags\n    titles:\n      en:\n        Big Dogs: All about big dogs\n")
	r, err := NewRegistry(cfg)
	require.NoError(t, err)
	tag, _ := r.Lookup("tag")

	it := item("posts/a", "2012-03-30", content.Metadata{Tags: []string{"Big Dogs", "mathjax", "cats"}})
	assert.Equal(t, []string{"Big Dogs", "cats"}, tag.Classify(it, "en"))

	segments, mode, err := tag.Path("Big Dogs", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"tags", "big-dogs"}, segments)
	assert.Equal(t, IndexAuto, mode)

	p, err := r.ClassificationPath(tag, "Big Dogs", "de", Target{Dest: DestRSS})
	require.NoError(t, err)
	assert.Equal(t, "de/tags/big-dogs.xml", r.Paths().File(p))

	overview, ok := r.OverviewPath(tag, "en")
	require.True(t, ok)
	assert.Equal(t, "tags/index.html", r.Paths().File(overview))

	ctx, kw := tag.Context(Page{Classification: "Big Dogs", Lang: "en"})
	assert.Equal(t, "All about big dogs", ctx["title"])
	assert.Equal(t, []string{"list", "tag_page"}, ctx["pagekind"])
	assert.Equal(t, "tags", kw["tag_path"])

	ctx, _ = tag.Context(Page{Classification: "cats", Lang: "en"})
	assert.Equal(t, "Posts about cats", ctx["title"])

	ctx, _ = tag.OverviewContext("en")
	assert.Equal(t, "Tags", ctx["title"])
}

func TestTagOverviewIndexPath(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, "taxonomies:\n  tags:\n    index_path: tags.html\n"))
	require.NoError(t, err)
	tag, _ := r.Lookup("tag")
	p, ok := r.OverviewPath(tag, "de")
	require.True(t, ok)
	assert.Equal(t, "de/tags.html", r.Paths().File(p))
}

func TestCategoryPath(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{"nested", "", []string{"categories", "cat_pets", "big-dogs"}},
		{"plain urls", "pretty_urls: false\n", []string{"categories", "cat_pets-big-dogs"}},
		{"flat hierarchy", "taxonomies:\n  categories:\n    flat_hierarchy: true\n", []string{"categories", "cat_big-dogs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(siteConfig(t, tt.yaml))
			require.NoError(t, err)
			cat, _ := r.Lookup("category")
			got, _, err := cat.Path("Pets/Big Dogs", "en")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, "taxonomies:\n  categories:\n    hidden: [secret]\n"))
	require.NoError(t, err)
	cat, _ := r.Lookup("category")

	assert.Equal(t, []string{"pets/dogs"}, cat.Classify(item("a", "2012-01-01", content.Metadata{Category: "pets/dogs"}), "en"))
	assert.Empty(t, cat.Classify(item("b", "2012-01-01", content.Metadata{}), "en"))
	assert.Empty(t, cat.Classify(item("c", "2012-01-01", content.Metadata{Category: "secret"}), "en"))
	assert.Equal(t, "dogs", cat.FriendlyName("pets/dogs", "en", false))
	assert.Equal(t, `a/b`, cat.FriendlyName(`x/a\/b`, "en", true))

	_, _, err = cat.Path(`bad\q`, "en")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryEscapeSyntax))

	subs := []Subcategory{{Name: "dogs", Classification: "pets/dogs", Link: "/categories/cat_pets/dogs/", Count: 2}}
	ctx, _ := cat.Context(Page{Classification: "pets", Lang: "en", Subcategories: subs})
	assert.Equal(t, subs, ctx["subcategories"])
	assert.Equal(t, []string{"pets"}, ctx["category_path"])
}

func TestArchiveClassify(t *testing.T) {
	it := item("posts/a", "2012-03-30", content.Metadata{})
	tests := []struct {
		yaml string
		want string
	}{
		{"", "2012"},
		{"taxonomies:\n  archive:\n    monthly: true\n", "2012/03"},
		{"taxonomies:\n  archive:\n    daily: true\n", "2012/03/30"},
		{"taxonomies:\n  archive:\n    full: true\n", "2012/03/30"},
		{"taxonomies:\n  archive:\n    single: true\n", ""},
	}
	for _, tt := range tests {
		r, err := NewRegistry(siteConfig(t, tt.yaml))
		require.NoError(t, err)
		a, _ := r.Lookup("archive")
		assert.Equal(t, []string{tt.want}, a.Classify(it, "en"), tt.yaml)
	}
}

func TestArchive(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, "taxonomies:\n  archive:\n    monthly: true\nmessages:\n  de:\n    March: März\n"))
	require.NoError(t, err)
	a, _ := r.Lookup("archive")

	assert.Equal(t, []string{""}, a.ImplicitClassifications("en"))
	assert.True(t, a.Flags().ShowListAsSubcategoriesList)
	assert.True(t, a.Flags().AlwaysDisableRSS)

	segments, mode, err := a.Path("", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"archive", "archive.html"}, segments)
	assert.Equal(t, IndexNever, mode)
	p, err := r.ClassificationPath(a, "2012/03", "en", Target{})
	require.NoError(t, err)
	assert.Equal(t, "archive/2012/03/index.html", r.Paths().File(p))

	assert.Equal(t, "Archive", a.FriendlyName("", "en", false))
	assert.Equal(t, "2012", a.FriendlyName("2012", "en", false))
	assert.Equal(t, "March 2012", a.FriendlyName("2012/03", "en", false))
	assert.Equal(t, "März 2012", a.FriendlyName("2012/03", "de", false))
	assert.Equal(t, "March", a.FriendlyName("2012/03", "en", true))
	assert.Equal(t, "March 5, 2012", a.FriendlyName("2012/03/05", "en", false))
	assert.Equal(t, "5", a.FriendlyName("2012/03/05", "en", true))

	years := []string{"2010", "2012", "2011"}
	a.SortClassifications(years, "en", 0)
	assert.Equal(t, []string{"2012", "2011", "2010"}, years)
	days := []string{"01", "15", "03"}
	a.SortClassifications(days, "en", 2)
	assert.Equal(t, []string{"01", "15", "03"}, days)

	assert.True(t, a.ShouldGenerateList("", nil, "en"))
	assert.False(t, a.ShouldGenerateList("2012", nil, "en"))

	ctx, _ := a.Context(Page{Classification: "2012", Lang: "en"})
	assert.Equal(t, "Posts for year 2012", ctx["title"])
	ctx, _ = a.Context(Page{Classification: "2012/03", Lang: "en"})
	assert.Equal(t, "Posts for March 2012", ctx["title"])
}

func TestAuthorEnabledOnlyForSeveralAuthors(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, ""))
	require.NoError(t, err)
	a, _ := r.Lookup("author")

	assert.False(t, a.Enabled("en", fakeStats{"author/en": {"alice"}}))
	assert.True(t, a.Enabled("de", fakeStats{"author/en": {"alice", "bob"}}))
	assert.Equal(t, []string{"alice"}, a.Classify(item("x", "2012-01-01", content.Metadata{Author: "alice"}), "en"))

	ctx, _ := a.Context(Page{Classification: "alice", Lang: "en"})
	assert.Equal(t, "Posts by alice", ctx["title"])
}

func TestSection(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, "taxonomies:\n  sections:\n    enabled: true\n    names:\n      de:\n        travel-notes: Reisenotizen\n"))
	require.NoError(t, err)
	s, _ := r.Lookup("section_index")

	assert.Equal(t, []string{"travel-notes"}, s.Classify(item("Travel Notes/day-one", "2012-01-01", content.Metadata{}), "en"))
	assert.Equal(t, []string{"food"}, s.Classify(item("posts/x", "2012-01-01", content.Metadata{Section: "Food"}), "en"))
	assert.Empty(t, s.Classify(item("toplevel", "2012-01-01", content.Metadata{}), "en"))

	assert.Equal(t, "Travel Notes", s.FriendlyName("travel-notes", "en", false))
	assert.Equal(t, "Reisenotizen", s.FriendlyName("travel-notes", "de", false))

	p, err := r.ClassificationPath(s, "travel-notes", "de", Target{})
	require.NoError(t, err)
	assert.Equal(t, "de/travel-notes/index.html", r.Paths().File(p))
}

func TestPageIndex(t *testing.T) {
	r, err := NewRegistry(siteConfig(t, "taxonomies:\n  page_index:\n    enabled: true\n"))
	require.NoError(t, err)
	p, _ := r.Lookup("page_index_folder")
	assert.True(t, p.Flags().ApplyToPages)
	assert.False(t, p.Flags().ApplyToPosts)

	about := item("pages/about", "2012-01-01", content.Metadata{Destination: "pages/about/index.html"})
	assert.Equal(t, []string{"pages"}, p.Classify(about, "en"))
	top := item("imprint", "2012-01-01", content.Metadata{Destination: "imprint/index.html"})
	assert.Equal(t, []string{""}, p.Classify(top, "en"))

	assert.True(t, p.ShouldGenerateList("pages", []*content.Item{about}, "en"))
	index := item("pages/index", "2012-01-01", content.Metadata{Destination: "pages/index.html"})
	assert.False(t, p.ShouldGenerateList("pages", []*content.Item{about, index}, "en"))

	path, err := r.ClassificationPath(p, "pages", "en", Target{})
	require.NoError(t, err)
	assert.Equal(t, "pages/index.html", r.Paths().File(path))
}
