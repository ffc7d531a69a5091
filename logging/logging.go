// Package logging builds the diagnostic logger. Conversation output goes
// straight to the terminal; this logger carries only trace-level diagnostics
// and one-line warnings, on stderr so it never interleaves with the prompt.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr. With trace enabled the level drops
// to debug so per-turn diagnostics become visible.
func New(trace bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if trace {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}
