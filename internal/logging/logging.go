// Package logging wraps zap for the converter's driver and CLI: one
// logger constructed per run, threaded explicitly through constructors
// rather than held in a package global.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standardized structured field keys for log lines, so a log aggregator
// can group lines across a single run.
const (
	FieldRunID    = "run_id"
	FieldStage    = "stage"
	FieldAnimName = "animation"
	FieldBytes    = "bytes_written"
)

// Options configures logger construction.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console, json
}

// New builds a *zap.Logger from opts. An empty Format means "console"
// and an empty Level means "info"; an unrecognized Format or Level is an
// error.
func New(opts Options) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(orDefault(opts.Level, "info"))); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var cfg zap.Config
	switch orDefault(opts.Format, "console") {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", opts.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
