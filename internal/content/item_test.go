package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func post(id string, priority int, date string) *Item {
	d, _ := time.Parse("2006-01-02", date)
	return &Item{
		ID:           id,
		IsPost:       true,
		Date:         d,
		Priority:     priority,
		DefaultLang:  "en",
		Translations: map[string]*Metadata{"en": {SourcePath: id + ".md"}},
	}
}

func ids(items []*Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestSortNewestFirst(t *testing.T) {
	items := []*Item{
		post("b", 0, "2012-01-01"),
		post("a", 0, "2012-01-01"),
		post("old-but-pinned", 5, "2001-01-01"),
		post("new", 0, "2020-06-01"),
	}
	SortNewestFirst(items)
	assert.Equal(t, []string{"old-but-pinned", "new", "b", "a"}, ids(items))
}

func TestNewCorpusOrdersByID(t *testing.T) {
	c := NewCorpus("en", post("z", 0, "2012-01-01"), post("m", 0, "2012-01-01"))
	assert.Equal(t, []string{"m", "z"}, ids(c.Items()))
	_, ok := c.Lookup("m")
	assert.True(t, ok)
}

func TestSourceCompilerDeps(t *testing.T) {
	it := post("posts/x", 0, "2012-01-01")
	it.Translations["de"] = &Metadata{SourcePath: "posts/x.de.md"}
	var c Compiler = SourceCompiler{}
	assert.Equal(t, []string{"posts/x.de.md"}, c.Deps(it, "de"))
	assert.Equal(t, []string{"posts/x.md"}, c.Deps(it, "fr"))
	assert.Equal(t, []string{"a.md", "posts/x.md"}, SourcePaths([]*Item{it, post("a", 0, "2012-01-01")}))
}
