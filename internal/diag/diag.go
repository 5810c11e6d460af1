// Package diag centralizes the core's two failure policies: fatal
// programmer-error invariant violations, and recoverable generation
// warnings. Nothing outside this package decides whether a failure is
// fatal or not; callers just report what happened.
package diag

import "log/slog"

// Fatal logs a structured error and panics. Use only for programmer-error
// invariant violations that must never happen in a correct program: a
// reciprocal link already occupied, a generation invariant failed after a
// phase, a MoveTo transaction whose re-add failed, or rendering with no
// current tile.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	panic(msg)
}

// Warn logs a recoverable failure and returns. Use for conditions the core
// resolves silently: the interlink phase of map generation giving up after
// exhausting its retry budget.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}
