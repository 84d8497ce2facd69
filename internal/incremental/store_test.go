package incremental

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/taxogen/internal/tasks"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func task(name, fp string) *tasks.Task {
	return &tasks.Task{Basename: tasks.Basename, Name: name, Targets: []string{name}, Uptodate: fp}
}

func TestGetPut(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "a", "1", []string{"out/a"}))
	require.NoError(t, s.Put(ctx, "a", "2", []string{"out/a"}))
	fp, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", fp)
}

func TestStaleAndRecord(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a, b := task("out/a.html", "aa"), task("out/b.html", "bb")

	stale, err := s.Stale(ctx, []*tasks.Task{a, b})
	require.NoError(t, err)
	assert.Len(t, stale, 2)

	require.NoError(t, s.Record(ctx, []*tasks.Task{a, b}))
	ok, err := s.UpToDate(ctx, a)
	require.NoError(t, err)
	assert.True(t, ok)

	b.Uptodate = "changed"
	stale, err = s.Stale(ctx, []*tasks.Task{a, b})
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "out/b.html", stale[0].Name)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a, b := task("out/a.html", "aa"), task("out/b.html", "bb")
	require.NoError(t, s.Record(ctx, []*tasks.Task{a, b}))

	n, err := s.Prune(ctx, []string{a.FullName()})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, err := s.Get(ctx, b.FullName())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "state.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "a", "1", nil))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	fp, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", fp)
}
