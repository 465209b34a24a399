package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPassID     = "pass_id"
	KeyPageURL    = "page_url"
	KeyPlugin     = "plugin"
	KeyOption     = "option"
	KeyOutputDir  = "output_dir"
	KeyPath       = "path"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func PassID(id string) slog.Attr      { return slog.String(KeyPassID, id) }
func PageURL(u string) slog.Attr      { return slog.String(KeyPageURL, u) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Option(name string) slog.Attr    { return slog.String(KeyOption, name) }
func OutputDir(dir string) slog.Attr  { return slog.String(KeyOutputDir, dir) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
