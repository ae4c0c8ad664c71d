package webui

import (
	"log/slog"
	"sync"

	"github.com/gogpu/webui/internal/logging"
)

// engines counts the open Views per engine, so SetLogger can reach engines
// that keep their own logger.
var (
	enginesMu sync.Mutex
	engines   = map[any]int{}
)

// SetLogger configures the logger for webui and all its sub-packages.
// By default, webui produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by webui:
//   - [slog.LevelDebug]: per-frame diagnostics (reallocations, drained messages)
//   - [slog.LevelInfo]: lifecycle transitions
//   - [slog.LevelWarn]: isolated handler failures, script errors
//   - [slog.LevelError]: frames the engine painted but could not publish
//
// Example:
//
//	webui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
	l = logging.Logger()

	enginesMu.Lock()
	defer enginesMu.Unlock()
	for e := range engines {
		logging.Propagate(e, l)
	}
}

// Logger returns the current logger used by webui.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}

// trackEngine remembers e and hands it the current logger.
func trackEngine(e any) {
	enginesMu.Lock()
	engines[e]++
	enginesMu.Unlock()
	logging.Propagate(e, logging.Logger())
}

// untrackEngine forgets e once its last View is closed.
func untrackEngine(e any) {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	if n := engines[e]; n > 1 {
		engines[e] = n - 1
		return
	}
	delete(engines, e)
}
