package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPassID         = "pass_id"
	KeyPhase          = "phase"
	KeyTaxonomy       = "taxonomy"
	KeyClassification = "classification"
	KeyLanguage       = "language"
	KeyPath           = "path"
	KeyTask           = "task"
	KeyTaskKind       = "task_kind"
	KeyCount          = "count"
	KeyDurationMS     = "duration_ms"
	KeyItem           = "item"
	KeyError          = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func PassID(id string) slog.Attr         { return slog.String(KeyPassID, id) }
func Phase(name string) slog.Attr        { return slog.String(KeyPhase, name) }
func Taxonomy(name string) slog.Attr     { return slog.String(KeyTaxonomy, name) }
func Classification(c string) slog.Attr  { return slog.String(KeyClassification, c) }
func Language(lang string) slog.Attr     { return slog.String(KeyLanguage, lang) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Task(name string) slog.Attr         { return slog.String(KeyTask, name) }
func TaskKind(kind string) slog.Attr     { return slog.String(KeyTaskKind, kind) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Item(sourcePath string) slog.Attr   { return slog.String(KeyItem, sourcePath) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
