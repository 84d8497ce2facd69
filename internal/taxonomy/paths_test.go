package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostprocess(t *testing.T) {
	pretty := PathBuilder{Translations: map[string]string{"en": "", "de": "de"}, PrettyURLs: true, IndexFile: "index.html"}
	plain := pretty
	plain.PrettyURLs = false

	tests := []struct {
		name     string
		b        PathBuilder
		segments []string
		mode     IndexMode
		lang     string
		target   Target
		want     string
	}{
		{"pretty page", pretty, []string{"categories", "dogs"}, IndexAuto, "en", Target{}, "categories/dogs/index.html"},
		{"plain page", plain, []string{"categories", "dogs"}, IndexAuto, "en", Target{}, "categories/dogs.html"},
		{"translated page", pretty, []string{"categories", "dogs"}, IndexAuto, "de", Target{}, "de/categories/dogs/index.html"},
		{"always", plain, []string{"archive", "2012"}, IndexAlways, "en", Target{}, "archive/2012/index.html"},
		{"never", pretty, []string{"archive", "archive.html"}, IndexNever, "en", Target{}, "archive/archive.html"},
		{"empty page", plain, nil, IndexNever, "en", Target{}, "index.html"},
		{"empty segments dropped", pretty, []string{"", "tags", ""}, IndexAuto, "en", Target{}, "tags/index.html"},
		{"rss", pretty, []string{"categories", "dogs"}, IndexAuto, "en", Target{Dest: DestRSS}, "categories/dogs.xml"},
		{"empty rss", pretty, nil, IndexAuto, "de", Target{Dest: DestRSS}, "de/rss.xml"},
		{"atom never", pretty, []string{"archive", "archive.html"}, IndexNever, "en", Target{Dest: DestAtom}, "archive/archive.atom"},
		{"atom always", pretty, []string{"archive", "2012"}, IndexAlways, "en", Target{Dest: DestAtom}, "archive/2012/index.atom"},
		{"empty atom", pretty, nil, IndexAuto, "en", Target{Dest: DestAtom}, "index.atom"},
		{"second page", pretty, []string{"categories", "dogs"}, IndexAuto, "en", Target{Page: 2}, "categories/dogs/index-2.html"},
		{"plain second page", plain, []string{"categories", "dogs"}, IndexAuto, "en", Target{Page: 1}, "categories/dogs-1.html"},
		{"alternative first page", pretty, []string{"categories", "dogs"}, IndexAuto, "en", Target{Alternative: true}, "categories/dogs/index-0.html"},
		{"paged atom", pretty, []string{"categories", "dogs"}, IndexAuto, "en", Target{Dest: DestAtom, Page: 1}, "categories/dogs-1.atom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.b.Postprocess(tt.segments, tt.mode, tt.lang, tt.target)
			assert.Equal(t, tt.want, tt.b.File(got))
		})
	}
}

func TestPostprocessDoesNotModifyInput(t *testing.T) {
	b := PathBuilder{PrettyURLs: false, IndexFile: "index.html"}
	in := []string{"tags", "dogs"}
	b.Postprocess(in, IndexAuto, "en", Target{})
	assert.Equal(t, []string{"tags", "dogs"}, in)
}

func TestLink(t *testing.T) {
	b := PathBuilder{IndexFile: "index.html", StripIndexes: true}
	assert.Equal(t, "/categories/dogs/", b.Link([]string{"categories", "dogs", "index.html"}))
	assert.Equal(t, "/categories/dogs.xml", b.Link([]string{"categories", "dogs.xml"}))
	assert.Equal(t, "/", b.Link([]string{"index.html"}))

	b.StripIndexes = false
	assert.Equal(t, "/categories/dogs/index.html", b.Link([]string{"categories", "dogs", "index.html"}))
}
