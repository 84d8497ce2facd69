package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o750))

	w, err := New([]string{dir}, WithDebounce(100*time.Millisecond), WithExtensions(".md"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs <- struct{}{}
			return nil
		})
	}()

	for i := range 3 {
		name := filepath.Join(dir, "posts", "a.md")
		require.NoError(t, os.WriteFile(name, []byte{byte('a' + i)}, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("callback did not run")
	}
	select {
	case <-runs:
		t.Fatal("burst triggered more than one run")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "site.yaml")
	content := filepath.Join(dir, "content")
	require.NoError(t, os.WriteFile(cfg, []byte("{}"), 0o600))
	require.NoError(t, os.MkdirAll(content, 0o750))

	w, err := New([]string{cfg, content}, WithExtensions(".md"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fs.Close() })

	assert.True(t, w.relevant(cfg))
	assert.True(t, w.relevant(filepath.Join(content, "posts", "a.md")))
	assert.False(t, w.relevant(filepath.Join(content, "a.txt")))
	assert.False(t, w.relevant(filepath.Join(dir, "other.yaml")))
	assert.False(t, w.relevant(filepath.Join(dir, "content-old", "a.md")))
}

func TestNewRejectsMissingPath(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
}
