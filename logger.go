package fundamentals

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so log calls made
// from the frame loop cost no formatting while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr is swapped atomically: the window's draw callback may log
// while the command installs or removes its handler.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger used by this package and by gfx, demo,
// loop and the window integration. Each demo gets a child logger tagged
// with its name. Nil turns logging off again, which is the default.
//
// Messages by level:
//   - Debug: GPU resources created or resized (programs, buffers,
//     uniforms, textures, targets)
//   - Info: device opened or closed, demo initialized or reloaded
//   - Warn: shader build failures, reloads that kept the old instance,
//     textures that failed to load
//   - Error: window frames that failed to render
//
// The fundamentals command installs a text handler on stderr and enables
// Debug with -v:
//
//	fundamentals.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the installed logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
