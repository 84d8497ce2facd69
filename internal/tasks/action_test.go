package tasks

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

type memFile struct {
	bytes.Buffer
	closed bool
}

func (f *memFile) Close() error {
	f.closed = true
	return nil
}

type memWriter map[string]*memFile

func (m memWriter) Create(output string) (io.WriteCloser, error) {
	f := &memFile{}
	m[output] = f
	return f, nil
}

type fakeRenderer struct{ err error }

func (r fakeRenderer) Render(_ context.Context, template string, data taxonomy.Values, w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	data["mutated"] = true
	_, err := fmt.Fprintf(w, "%s:%v", template, data["title"])
	return err
}

func (r fakeRenderer) RenderFeed(_ context.Context, feed *Feed, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s:%s:%d", feed.Format, feed.Title, len(feed.Posts))
	return err
}

func TestTaskRun(t *testing.T) {
	ctx := taxonomy.Values{"title": "Posts about dogs"}
	task := &Task{Actions: []Action{
		{Kind: ActionRender, Template: "tag.tmpl", Output: "out/tags/dogs/index.html", Context: ctx},
		{Kind: ActionFeed, Output: "out/tags/dogs.xml", Feed: &Feed{Format: KindRSS, Title: "dogs", Posts: []PostRef{{ID: "a"}}}},
	}}
	w := memWriter{}
	require.NoError(t, task.Run(context.Background(), fakeRenderer{}, fakeRenderer{}, w))

	assert.Equal(t, "tag.tmpl:Posts about dogs", w["out/tags/dogs/index.html"].String())
	assert.Equal(t, "rss:dogs:1", w["out/tags/dogs.xml"].String())
	assert.True(t, w["out/tags/dogs.xml"].closed)
	assert.NotContains(t, ctx, "mutated")
}

func TestActionRunErrors(t *testing.T) {
	a := Action{Kind: ActionRender, Template: "tag.tmpl", Output: "out/x.html"}

	err := a.Run(context.Background(), fakeRenderer{err: stderrors.New("boom")}, fakeRenderer{}, memWriter{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryInternal))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Run(cancelled, fakeRenderer{}, fakeRenderer{}, memWriter{}), context.Canceled)
}

func TestFileWriterCreatesDirectories(t *testing.T) {
	out := filepath.ToSlash(filepath.Join(t.TempDir(), "a", "b", "index.html"))
	f, err := FileWriter{}.Create(out)
	require.NoError(t, err)
	_, err = f.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.FromSlash(out))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}
