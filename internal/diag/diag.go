// Package diag provides the evaluator's internal structured diagnostics:
// module cache hits/misses, import resolution, recursion warnings, and
// top-level exception propagation. It never touches language-visible
// puts/print output — that path is object.OutputTarget's concern.
package diag

import (
	"sync"

	"go.uber.org/zap"
)

// Logger wraps a zap.SugaredLogger with the handful of event shapes the
// evaluator and module loader emit.
type Logger struct {
	s *zap.SugaredLogger
}

var (
	noop     *Logger
	noopOnce sync.Once
)

// Noop returns a Logger that discards everything, the default when no
// internal/config trace setting enables diagnostics.
func Noop() *Logger {
	noopOnce.Do(func() {
		noop = &Logger{s: zap.NewNop().Sugar()}
	})
	return noop
}

// New builds a Logger at debug level (trace: true) or info level otherwise.
func New(trace bool) (*Logger, error) {
	var cfg zap.Config
	if trace {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{s: l.Sugar()}, nil
}

func (l *Logger) ModuleCacheHit(path string) {
	l.s.Debugw("module cache hit", "path", path)
}

func (l *Logger) ModuleCacheMiss(path string) {
	l.s.Debugw("module cache miss", "path", path)
}

func (l *Logger) ImportResolved(path, resolved string) {
	l.s.Debugw("import resolved", "path", path, "resolved", resolved)
}

func (l *Logger) RecursionWarning(depth, limit int) {
	l.s.Warnw("approaching call depth limit", "depth", depth, "limit", limit)
}

func (l *Logger) TopLevelException(kind, message string) {
	l.s.Errorw("uncaught exception propagated to top level", "kind", kind, "message", message)
}

// Sync flushes any buffered log entries; callers should defer it after New.
func (l *Logger) Sync() {
	_ = l.s.Sync()
}
