// Package watch re-runs a callback when watched files change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors directory trees and single files.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	files    map[string]bool
	trees    []string
	exts     map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the callback runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExtensions limits tree events to files with one of exts (".md").
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		for _, e := range exts {
			w.exts[e] = true
		}
	}
}

// New returns a watcher. Directories are watched recursively; for a file
// its parent directory is watched and events are filtered by name.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	w := &Watcher{
		fs:       fw,
		debounce: DefaultDebounce,
		files:    make(map[string]bool),
		exts:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watch path").
			WithContext(errors.KeyPath, p).
			Build()
	}
	info, err := os.Stat(abs)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to stat watch path").
			WithContext(errors.KeyPath, p).
			Build()
	}
	if !info.IsDir() {
		w.files[abs] = true
		return w.watchDir(filepath.Dir(abs))
	}
	w.trees = append(w.trees, abs)
	return w.addTree(abs)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watchDir(p)
		}
		return nil
	})
}

func (w *Watcher) watchDir(dir string) error {
	if err := w.fs.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
			WithContext(errors.KeyPath, dir).
			Build()
	}
	return nil
}

// relevant reports whether a change to name should trigger a run.
func (w *Watcher) relevant(name string) bool {
	if w.files[name] {
		return true
	}
	for _, root := range w.trees {
		rel, err := filepath.Rel(root, name)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return len(w.exts) == 0 || w.exts[filepath.Ext(name)]
	}
	return false
}

// Run calls fn once per burst of relevant changes until ctx is done.
// Errors from fn are logged; the watcher keeps running.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	defer func() { _ = w.fs.Close() }()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(ev.Name), logfields.Error(err))
					}
					continue
				}
			}
			if !w.relevant(ev.Name) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			if err := fn(ctx); err != nil {
				slog.Error("Watch run failed", logfields.Error(err))
			}
		}
	}
}
