package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/frontmatter"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/util/slug"
)

// LoadOptions controls how sources map onto items.
type LoadOptions struct {
	DefaultLang string
	Languages   []string
	PrettyURLs  bool
	IndexFile   string
	// PagesDir is the top-level folder whose sources are pages rather than posts.
	PagesDir string
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
}

// source is one parsed file before translations are merged.
type source struct {
	id     string
	lang   string
	rel    string
	fields map[string]any
	meta   *Metadata
}

// Load reads every *.md file below dir into a corpus. Files named
// <base>.<lang>.md are translations of <base>.md.
func Load(ctx context.Context, dir string, opts LoadOptions) (*Corpus, error) {
	if opts.IndexFile == "" {
		opts.IndexFile = "index.html"
	}
	if opts.PagesDir == "" {
		opts.PagesDir = "pages"
	}

	var sources []source
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		src, err := parseSource(p, filepath.ToSlash(rel), opts)
		if err != nil {
			return err
		}
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan content directory").
			WithContext(errors.KeyPath, dir).
			Build()
	}

	items := merge(sources, opts)
	slog.Debug("Corpus loaded", logfields.Path(dir), logfields.Count(len(items)))
	return NewCorpus(opts.DefaultLang, items...), nil
}

func parseSource(p, rel string, opts LoadOptions) (source, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return source{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read source").
			WithContext(errors.KeyPath, p).
			Build()
	}
	fm, body, _, err := frontmatter.Split(data)
	if err != nil {
		return source{}, invalidSource(err, rel)
	}
	fields, err := frontmatter.Parse(fm)
	if err != nil {
		return source{}, invalidSource(err, rel)
	}

	id, lang := splitLanguage(strings.TrimSuffix(rel, ".md"), opts)
	base := path.Base(id)

	fp, err := Fingerprint(fields, body)
	if err != nil {
		return source{}, invalidSource(err, rel)
	}

	meta := &Metadata{
		SourcePath:  rel,
		Title:       stringField(fields, "title"),
		Slug:        stringField(fields, "slug"),
		Description: stringField(fields, "description"),
		Tags:        listField(fields, "tags"),
		Category:    strings.TrimSpace(stringField(fields, "category")),
		Author:      strings.TrimSpace(stringField(fields, "author")),
		Section:     strings.TrimSpace(stringField(fields, "section")),
		Fingerprint: fp,
	}
	if meta.Title == "" {
		meta.Title = base
	}
	if meta.Slug == "" {
		meta.Slug = slug.Make(base)
	}
	meta.Destination = destination(path.Dir(id), meta.Slug, opts)

	return source{id: id, lang: lang, rel: rel, fields: fields, meta: meta}, nil
}

// splitLanguage strips a recognized language suffix from a source path.
func splitLanguage(noExt string, opts LoadOptions) (id, lang string) {
	if ext := path.Ext(noExt); ext != "" && slices.Contains(opts.Languages, ext[1:]) {
		return strings.TrimSuffix(noExt, ext), ext[1:]
	}
	return noExt, opts.DefaultLang
}

func destination(folder, name string, opts LoadOptions) string {
	if folder == "." {
		folder = ""
	}
	if opts.PrettyURLs {
		return path.Join(folder, name, opts.IndexFile)
	}
	return path.Join(folder, name+path.Ext(opts.IndexFile))
}

// merge groups sources by ID. Item-level fields come from the
// default-language source, or the lexically first language without one.
func merge(sources []source, opts LoadOptions) []*Item {
	byID := map[string][]source{}
	var ids []string
	for _, s := range sources {
		if _, ok := byID[s.id]; !ok {
			ids = append(ids, s.id)
		}
		byID[s.id] = append(byID[s.id], s)
	}
	slices.Sort(ids)

	items := make([]*Item, 0, len(ids))
	for _, id := range ids {
		group := byID[id]
		slices.SortFunc(group, func(a, b source) int { return strings.Compare(a.lang, b.lang) })
		primary := group[0]
		for _, s := range group {
			if s.lang == opts.DefaultLang {
				primary = s
			}
		}

		item := &Item{
			ID:           id,
			DefaultLang:  opts.DefaultLang,
			Translations: make(map[string]*Metadata, len(group)),
		}
		for _, s := range group {
			item.Translations[s.lang] = s.meta
		}

		f := primary.fields
		item.IsPost = !strings.HasPrefix(id, opts.PagesDir+"/")
		switch strings.ToLower(stringField(f, "type")) {
		case "page":
			item.IsPost = false
		case "post":
			item.IsPost = true
		}
		item.Date = dateField(f, "date")
		item.Priority = intField(f, "priority")
		status := strings.ToLower(stringField(f, "status"))
		item.Hidden = boolField(f, "draft", false) || boolField(f, "hidden", false) ||
			status == "draft" || status == "private"
		item.UseInFeeds = boolField(f, "use_in_feeds", item.IsPost && !item.Hidden)

		items = append(items, item)
	}
	return items
}

func invalidSource(err error, rel string) error {
	return errors.WrapError(err, errors.CategoryValidation, "invalid source frontmatter").
		WithContext(errors.KeyPath, rel).
		Build()
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// listField accepts a YAML list or a comma-separated string.
func listField(fields map[string]any, key string) []string {
	var raw []string
	switch v := fields[key].(type) {
	case []any:
		for _, e := range v {
			raw = append(raw, fmt.Sprint(e))
		}
	case string:
		raw = strings.Split(v, ",")
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if t := strings.TrimSpace(r); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}

func boolField(fields map[string]any, key string, def bool) bool {
	switch v := fields[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func dateField(fields map[string]any, key string) time.Time {
	switch v := fields[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}
