// Package synthgraphlog is this repository's structured-logging seam
// (SPEC_FULL.md §2, ambient stack): a thin facade over the standard
// library's log/slog that namespace calls through instead of importing
// log/slog directly, so a caller embedding this engine can
// redirect every record (e.g. into its own zerolog/zap pipeline) by
// installing a different slog.Handler without this package choosing one
// for them.
//
// No structured-logging library appears as a direct, non-tooling
// dependency anywhere in the retrieved example pack (see DESIGN.md): the
// only occurrences of zerolog/zap/logrus in the corpus are indirect lint
// dependencies of bufbuild-protocompile/internal/tools/go.mod's toolchain,
// never imported by any example repo's own package code. This package is
// therefore grounded on log/slog, the same "no corpus library, stdlib with
// justification" pattern gen/datetimegen and regexsample already follow.
package synthgraphlog

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
}

// SetDefault installs l as the logger every package-level call below
// writes through. Callers embedding this engine in a service with its own
// logging pipeline should call this once at startup.
func SetDefault(l *slog.Logger) {
	current.Store(l)
}

// Logger returns the currently installed logger.
func Logger() *slog.Logger {
	return current.Load()
}

// Debug logs a compile- or build-time diagnostic not interesting outside
// development (e.g. a collection's resolved build order).
func Debug(ctx context.Context, msg string, args ...any) {
	Logger().DebugContext(ctx, msg, args...)
}

// Info logs a normal lifecycle event (compile started/finished, tape GC
// ran).
func Info(ctx context.Context, msg string, args ...any) {
	Logger().InfoContext(ctx, msg, args...)
}

// Warn logs a recovered condition that did not abort compilation (a
// structural error collected under a multi-error Report handler).
func Warn(ctx context.Context, msg string, args ...any) {
	Logger().WarnContext(ctx, msg, args...)
}

// Error logs a fatal condition the caller is about to return as an error.
func Error(ctx context.Context, msg string, args ...any) {
	Logger().ErrorContext(ctx, msg, args...)
}
