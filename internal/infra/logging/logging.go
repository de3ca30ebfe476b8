// Package logging provides the module's single process-wide structured
// logger, installed by Configure and read through Default or With.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	current *slog.Logger
)

// Configure installs the process-wide default logger. json selects the JSON
// handler; otherwise a text handler is used.
func Configure(json bool, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	current = slog.New(handler)
}

// Default returns the process-wide logger, initializing a sensible text
// default on first use if Configure was never called.
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return current
}

// With returns a logger derived from Default() with the given attributes,
// for constructors that want a component-scoped child logger.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}
