// Package logging wires structured logging the way the rest of the pack
// does it, adapted from uhyunpark-hyperlicked's pkg/util/log.go
// (go.uber.org/zap, production config, ISO8601 timestamps). The core
// dispatch path never logs; this is strictly for the fault-reporting and
// --bench summary paths around it.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style zap logger. quiet drops the level to
// Warn so routine info lines (the --bench summary) are suppressed while
// fault reporting still gets through, per SPEC_FULL's quiet-mode note.
func New(quiet bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
