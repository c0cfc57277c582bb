// Package otlog provides the structured logger used by the CLI; the
// engine packages and the fixture runner do not log. It is a thin
// wrapper around zap so call sites don't each have to decide between
// the production and development encoder configs.
package otlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger. debug selects the development encoder
// (console, caller, stack traces on warn+) over the production one
// (JSON, sampled, stack traces on error+).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	return zap.NewProduction()
}

// Nop returns a logger that discards everything, for tests and
// library callers that don't want otjson's logging.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// ComponentFields builds the zap fields shared by every log line that
// reports on a single operation component: its path and operator kind.
func ComponentFields(path string, kind string) []zap.Field {
	return []zap.Field{
		zap.String("path", path),
		zap.String("op", kind),
	}
}
