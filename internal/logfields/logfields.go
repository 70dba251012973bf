package logfields

import "log/slog"

// Canonical log field names shared by all packages.
const (
	KeyRunID      = "run_id"
	KeyLocale     = "locale"
	KeyFormat     = "format"
	KeyMode       = "mode"
	KeyBase       = "base"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyIssue      = "issue"
	KeyError      = "error"
)

// Helpers returning slog.Attr so callers can compose them.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Locale(prefix string) slog.Attr  { return slog.String(KeyLocale, prefix) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Base(b string) slog.Attr         { return slog.String(KeyBase, b) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Issue(code string) slog.Attr     { return slog.String(KeyIssue, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
