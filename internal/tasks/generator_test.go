package tasks

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/taxogen/internal/classify"
	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/pathalloc"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
	"git.home.luguber.info/inful/taxogen/internal/translations"
)

const onlyTags = `
taxonomies:
  categories:
    enabled: false
  archive:
    enabled: false
  authors:
    enabled: false
`

func post(id string, date time.Time, meta content.Metadata) *content.Item {
	meta.SourcePath = id + ".md"
	meta.Destination = id + "/index.html"
	meta.Title = id
	return &content.Item{
		ID:           id,
		IsPost:       true,
		Date:         date,
		UseInFeeds:   true,
		DefaultLang:  "en",
		Translations: map[string]*content.Metadata{"en": &meta},
	}
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func generate(t *testing.T, yaml string, items ...*content.Item) []*Task {
	t.Helper()
	cfg, err := config.Parse([]byte("output_folder: out\nbase_url: https://example.org/\n" + yaml))
	require.NoError(t, err)
	reg, err := taxonomy.NewRegistry(cfg)
	require.NoError(t, err)
	res, err := classify.New(reg, cfg.Languages()).Classify(content.NewCorpus(cfg.DefaultLang, items...))
	require.NoError(t, err)
	table, err := pathalloc.Allocate(res, reg, cfg)
	require.NoError(t, err)
	tasks, err := New(cfg, reg, res, table, translations.New(cfg, reg, table), nil).Generate()
	require.NoError(t, err)
	return tasks
}

func find(t *testing.T, tasks []*Task, name string) *Task {
	t.Helper()
	for _, task := range tasks {
		if task.Name == name {
			return task
		}
	}
	var names []string
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	require.Failf(t, "task not found", "%s not in %v", name, names)
	return nil
}

func ofKind(tasks []*Task, kind Kind) []*Task {
	var out []*Task
	for _, task := range tasks {
		if task.Kind == kind {
			out = append(out, task)
		}
	}
	return out
}

func postIDs(ctx taxonomy.Values) []string {
	var out []string
	for _, p := range ctx["posts"].([]PostRef) {
		out = append(out, p.ID)
	}
	return out
}

func TestPaginatedIndex(t *testing.T) {
	var items []*content.Item
	start := day("2012-01-01")
	for i := range 25 {
		items = append(items, post(fmt.Sprintf("posts/p%02d", i), start.AddDate(0, 0, i), content.Metadata{Tags: []string{"dogs"}}))
	}
	tasks := generate(t, onlyTags+"  tags:\n    path: tags\n    pages_are_indexes: true\n", items...)

	pages := ofKind(tasks, KindIndex)
	require.Len(t, pages, 3)
	assert.Equal(t, "out/tags/dogs/index.html", pages[0].Name)
	assert.Equal(t, "out/tags/dogs/index-1.html", pages[1].Name)
	assert.Equal(t, "out/tags/dogs/index-2.html", pages[2].Name)

	first := pages[0].Actions[0].Context
	assert.Len(t, first["posts"], 10)
	assert.Equal(t, "posts/p24", postIDs(first)[0])
	assert.Nil(t, first["prevlink"])
	assert.Equal(t, "/tags/dogs/index-1.html", first["nextlink"])

	second := pages[1].Actions[0].Context
	assert.Equal(t, 1, pages[1].Page)
	assert.Equal(t, "/tags/dogs/", second["prevlink"])
	assert.Equal(t, "/tags/dogs/index-2.html", second["nextlink"])
	assert.Equal(t, "/tags/dogs/index-1.html", second["permalink"])

	third := pages[2].Actions[0].Context
	assert.Equal(t, "/tags/dogs/index-1.html", third["prevlink"])
	assert.Nil(t, third["nextlink"])
	assert.Equal(t, []string{"posts/p04", "posts/p03", "posts/p02", "posts/p01", "posts/p00"}, postIDs(third))
	assert.Equal(t, "tagindex.tmpl", pages[2].Actions[0].Template)
	assert.Equal(t, []string{"posts/p00.md", "posts/p01.md", "posts/p02.md", "posts/p03.md", "posts/p04.md"}, pages[2].FileDep)

	rss := find(t, tasks, "out/tags/dogs.xml")
	assert.Equal(t, KindRSS, rss.Kind)
	assert.Equal(t, []string{"render_posts"}, rss.TaskDep)
	feed := rss.Actions[0].Feed
	require.NotNil(t, feed)
	assert.Len(t, feed.Posts, 10)
	assert.Equal(t, "My Site (Posts about dogs)", feed.Title)
	assert.Equal(t, "https://example.org/tags/dogs.xml", feed.FeedURL)
	assert.Equal(t, "/posts/p24/", feed.Posts[0].Link)
}

func TestAlternativeFirstPage(t *testing.T) {
	tasks := generate(t, "indexes_pages_main: true\n"+onlyTags+"  tags:\n    pages_are_indexes: true\n",
		post("posts/a", day("2012-01-01"), content.Metadata{Tags: []string{"dogs"}}))

	page := find(t, tasks, "out/categories/dogs/index.html")
	assert.Equal(t, []string{"out/categories/dogs/index.html", "out/categories/dogs/index-0.html"}, page.Targets)
	require.Len(t, page.Actions, 2)
	assert.Equal(t, "/categories/dogs/index-0.html", page.Actions[1].Context["permalink"])
}

func TestPaginate(t *testing.T) {
	assert.Equal(t, [][]int{{}}, Paginate([]int{}, 10))
	assert.Equal(t, [][]int{{1, 2}, {3}}, Paginate([]int{1, 2, 3}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Paginate([]int{1, 2}, 0))
}

func TestListWithAtomAndOverview(t *testing.T) {
	tasks := generate(t, "generate_atom: true\n"+onlyTags,
		post("posts/a", day("2012-01-01"), content.Metadata{Tags: []string{"dogs", "cats"}}),
		post("posts/b", day("2012-02-01"), content.Metadata{Tags: []string{"dogs"}}))

	list := find(t, tasks, "out/categories/dogs/index.html")
	assert.Equal(t, KindList, list.Kind)
	ctx := list.Actions[0].Context
	assert.Equal(t, []string{"posts/b", "posts/a"}, postIDs(ctx))
	assert.Equal(t, "Posts about dogs", ctx["title"])
	assert.Equal(t, "cats", ctx["previous_tag"])
	assert.Equal(t, "/categories/cats/", ctx["previous_tag_link"])
	assert.Equal(t, "/categories/cats.xml", ctx["previous_tag_rss"])
	assert.NotContains(t, ctx, "previous_tag_atom")
	assert.Nil(t, ctx["next_tag"])
	assert.Nil(t, ctx["parent_tag"])

	atom := find(t, tasks, "out/categories/dogs.atom")
	assert.Equal(t, KindAtom, atom.Kind)
	assert.Equal(t, "https://example.org/categories/dogs.atom", atom.Actions[0].Feed.FeedURL)

	overview := ofKind(tasks, KindOverview)
	require.Len(t, overview, 1)
	assert.Equal(t, "out/categories/index.html", overview[0].Name)
	octx := overview[0].Actions[0].Context
	assert.Equal(t, []string{"cats", "dogs"}, octx["tags"])
	assert.Equal(t, []CountedLink{
		{Name: "cats", Link: "/categories/cats/", Count: 1},
		{Name: "dogs", Link: "/categories/dogs/", Count: 2},
	}, octx["items_with_postcount"])
	assert.Equal(t, "/categories/", octx["permalink"])
}

func TestSharedTagAndCategoryOverview(t *testing.T) {
	tasks := generate(t, "taxonomies:\n  archive:\n    enabled: false\n  authors:\n    enabled: false\n",
		post("posts/a", day("2012-01-01"), content.Metadata{Tags: []string{"dogs"}, Category: "pets"}))

	overview := ofKind(tasks, KindOverview)
	require.Len(t, overview, 1)
	ctx := overview[0].Actions[0].Context
	assert.Equal(t, "out/categories/index.html", overview[0].Name)
	assert.Equal(t, "tags.tmpl", overview[0].Actions[0].Template)
	assert.Equal(t, "Tags and Categories", ctx["title"])
	assert.Equal(t, []string{"dogs"}, ctx["tags"])
	assert.Equal(t, []string{"pets"}, ctx["categories"])
}

func TestCategoryNavigation(t *testing.T) {
	tasks := generate(t, "taxonomies:\n  tags:\n    enabled: false\n  archive:\n    enabled: false\n  authors:\n    enabled: false\n",
		post("posts/a", day("2012-01-01"), content.Metadata{Category: "pets/dogs"}),
		post("posts/b", day("2012-01-02"), content.Metadata{Category: "pets/cats"}),
		post("posts/c", day("2012-01-03"), content.Metadata{Category: "travel"}))

	dogs := find(t, tasks, "out/categories/cat_pets/dogs/index.html").Actions[0].Context
	assert.Equal(t, "pets/cats", dogs["previous_category"])
	assert.Equal(t, "travel", dogs["next_category"])
	assert.Equal(t, "pets/cats", dogs["previous_category_sibling"])
	assert.Nil(t, dogs["next_category_sibling"])
	assert.Equal(t, "pets/cats", dogs["previous_category_samelevel"])
	assert.Nil(t, dogs["next_category_samelevel"])
	assert.Equal(t, "pets", dogs["parent_category"])
	assert.Equal(t, "/categories/cat_pets/", dogs["parent_category_link"])

	pets := find(t, tasks, "out/categories/cat_pets/index.html").Actions[0].Context
	assert.Equal(t, "travel", pets["next_category_samelevel"])
	assert.Equal(t, []string{"posts/b", "posts/a"}, postIDs(pets))
	assert.Equal(t, []taxonomy.Subcategory{
		{Name: "cats", Classification: "pets/cats", Link: "/categories/cat_pets/cats/", Count: 1},
		{Name: "dogs", Classification: "pets/dogs", Link: "/categories/cat_pets/dogs/", Count: 1},
	}, pets["subcategories"])

	overview := ofKind(tasks, KindOverview)
	require.Len(t, overview, 1)
	hier := overview[0].Actions[0].Context["cat_hierarchy_with_postcount"].([]HierarchyEntry)
	require.Len(t, hier, 4)
	assert.Equal(t, "pets", hier[0].Classification)
	assert.Equal(t, &HierarchyEntryCounts{Children: 2, Posts: 2}, hier[0].Counts)
	assert.Equal(t, 1, hier[0].IndentChangeBefore)
	assert.Equal(t, -1, hier[3].IndentChangeAfter)
}

func TestArchiveSubcategoryListing(t *testing.T) {
	tasks := generate(t, "taxonomies:\n  tags:\n    enabled: false\n  categories:\n    enabled: false\n  authors:\n    enabled: false\n",
		post("posts/a", day("2012-05-01"), content.Metadata{}),
		post("posts/b", day("2013-05-01"), content.Metadata{}))

	root := find(t, tasks, "out/archive/archive.html")
	assert.Equal(t, KindSubcategories, root.Kind)
	assert.Equal(t, "list.tmpl", root.Actions[0].Template)
	assert.Equal(t, []taxonomy.Subcategory{
		{Name: "2013", Classification: "2013", Link: "/archive/2013/", Count: 1},
		{Name: "2012", Classification: "2012", Link: "/archive/2012/", Count: 1},
	}, root.Actions[0].Context["items"])

	year := find(t, tasks, "out/archive/2012/index.html")
	assert.Equal(t, KindList, year.Kind)
	ctx := year.Actions[0].Context
	assert.Equal(t, "2013", ctx["previous_archive"])
	assert.Equal(t, "/archive/2013/", ctx["previous_archive_link"])
	assert.NotContains(t, ctx, "previous_archive_rss")
	assert.Empty(t, ofKind(tasks, KindRSS))
	assert.Empty(t, ofKind(tasks, KindOverview))
}

func TestUntranslatedPostsAndVariants(t *testing.T) {
	yaml := `
show_untranslated_posts: false
translations:
  en: ""
  de: de
taxonomies:
  archive:
    enabled: false
  authors:
    enabled: false
  tags:
    translations:
      - {en: dogs, de: hunde}
`
	both := post("posts/a", day("2012-01-01"), content.Metadata{Tags: []string{"dogs"}, Category: "pets"})
	both.Translations["de"] = &content.Metadata{SourcePath: "posts/a.de.md", Destination: "posts/a/index.html", Title: "A", Tags: []string{"hunde"}}
	enOnly := post("posts/b", day("2012-01-02"), content.Metadata{Category: "travel"})
	tasks := generate(t, yaml, both, enOnly)

	dogs := find(t, tasks, "out/categories/dogs/index.html").Actions[0].Context
	assert.Equal(t, []Variant{{Lang: "de", Classification: "hunde", Name: "hunde", Link: "/de/categories/hunde/"}}, dogs["other_languages"])

	for _, task := range tasks {
		if task.Lang == "de" && task.Taxonomy == "category" {
			assert.NotEqual(t, "travel", task.Classification, task.Name)
		}
	}
	find(t, tasks, "out/de/categories/cat_pets/index.html")
}

func TestListAtomFeedHonoursFeedLength(t *testing.T) {
	var items []*content.Item
	start := day("2012-01-01")
	for i := range 15 {
		items = append(items, post(fmt.Sprintf("posts/p%02d", i), start.AddDate(0, 0, i), content.Metadata{Tags: []string{"dogs"}}))
	}
	items[14].UseInFeeds = false
	tasks := generate(t, "generate_atom: true\nfeed_length: 5\n"+onlyTags, items...)

	rss := find(t, tasks, "out/categories/dogs.xml")
	atom := find(t, tasks, "out/categories/dogs.atom")
	assert.Len(t, rss.Actions[0].Feed.Posts, 5)
	require.Len(t, atom.Actions[0].Feed.Posts, 5)
	assert.Len(t, atom.Actions[0].Posts, 5)
	assert.Equal(t, "posts/p13", atom.Actions[0].Feed.Posts[0].ID)
	assert.Equal(t, rss.Actions[0].Feed.Posts, atom.Actions[0].Feed.Posts)
}

func TestVariantsSkipUngeneratedPages(t *testing.T) {
	yaml := `
show_untranslated_posts: false
translations:
  en: ""
  de: de
taxonomies:
  tags:
    enabled: false
  archive:
    enabled: false
  authors:
    enabled: false
`
	deOnly := post("posts/r", day("2012-01-01"), content.Metadata{Category: "reisen"})
	deOnly.Translations = map[string]*content.Metadata{"de": deOnly.Translations["en"]}
	tasks := generate(t, yaml, deOnly)

	for _, task := range tasks {
		if task.Lang == "en" {
			assert.NotEqual(t, "reisen", task.Classification, task.Name)
		}
	}
	reisen := find(t, tasks, "out/de/categories/cat_reisen/index.html").Actions[0].Context
	assert.Empty(t, reisen["other_languages"])
}

func TestGenerationIsDeterministic(t *testing.T) {
	items := func() []*content.Item {
		return []*content.Item{
			post("posts/a", day("2012-01-01"), content.Metadata{Tags: []string{"dogs", "cats"}, Category: "pets/dogs"}),
			post("posts/b", day("2013-01-01"), content.Metadata{Tags: []string{"dogs"}, Category: "travel"}),
		}
	}
	first := generate(t, "", items()...)
	second := generate(t, "", items()...)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Uptodate, second[i].Uptodate)
		assert.Len(t, first[i].Uptodate, 64)
	}

	retitled := generate(t, "blog_title: Other\n", items()...)
	assert.NotEqual(t,
		find(t, first, "out/categories/dogs/index.html").Uptodate,
		find(t, retitled, "out/categories/dogs/index.html").Uptodate)
}
