package taxonomy

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/config"
)

const rssFilename = "rss"

// PathBuilder turns raw taxonomy segments into output paths and links.
type PathBuilder struct {
	Translations map[string]string
	PrettyURLs   bool
	StripIndexes bool
	IndexFile    string
}

// NewPathBuilder copies the path settings of cfg.
func NewPathBuilder(cfg *config.Config) PathBuilder {
	return PathBuilder{
		Translations: cfg.Translations,
		PrettyURLs:   cfg.PrettyURLs,
		StripIndexes: cfg.StripIndexes,
		IndexFile:    cfg.IndexFile,
	}
}

// Target addresses one file produced for a classification.
type Target struct {
	Dest DestType
	// Page is the zero-based page number of a paginated index.
	Page int
	// Alternative requests the numbered variant of the first page.
	Alternative bool
}

// Postprocess applies extension and index-file rules to segments, prefixes
// the language path and drops empty segments. segments is not modified.
func (b PathBuilder) Postprocess(segments []string, mode IndexMode, lang string, t Target) []string {
	p := slices.DeleteFunc(slices.Clone(segments), func(s string) bool { return s == "" })
	stem := strings.TrimSuffix(b.IndexFile, path.Ext(b.IndexFile))

	switch t.Dest {
	case DestRSS, DestAtom:
		ext := ".xml"
		if t.Dest == DestAtom {
			ext = ".atom"
		}
		switch {
		case len(p) == 0 && t.Dest == DestRSS:
			p = []string{rssFilename}
		case len(p) == 0 || mode == IndexAlways:
			p = append(p, stem)
		case mode == IndexNever:
			last := p[len(p)-1]
			p[len(p)-1] = strings.TrimSuffix(last, path.Ext(last))
		}
		p[len(p)-1] += ext
	default:
		switch {
		case (b.PrettyURLs && mode != IndexNever) || len(p) == 0 || mode == IndexAlways:
			p = append(p, b.IndexFile)
		case mode != IndexNever:
			p[len(p)-1] += ".html"
		}
	}

	out := make([]string, 0, len(p)+1)
	if prefix := b.Translations[lang]; prefix != "" {
		out = append(out, strings.Split(prefix, "/")...)
	}
	out = append(out, p...)
	if t.Page > 0 || t.Alternative {
		out[len(out)-1] = pageName(out[len(out)-1], t.Page)
	}
	return out
}

// pageName inserts the page number before the extension.
func pageName(name string, page int) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + strconv.Itoa(page) + ext
}

// File joins postprocessed segments into a slash-separated relative path.
func (b PathBuilder) File(parts []string) string {
	return strings.Join(parts, "/")
}

// Link renders postprocessed segments as a site-absolute URL path. With
// StripIndexes a trailing index file is dropped.
func (b PathBuilder) Link(parts []string) string {
	link := "/" + strings.Join(parts, "/")
	if b.StripIndexes && b.IndexFile != "" && strings.HasSuffix(link, "/"+b.IndexFile) {
		link = strings.TrimSuffix(link, b.IndexFile)
	}
	return link
}
