package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Enabled turns diagnostics on. When false a no-op logger is returned.
	Enabled bool

	// Verbose lowers the level from info to debug.
	Verbose bool

	// File receives log output. The TUI owns the terminal, so logs never go
	// to stdout or stderr while it runs.
	File string
}

// New builds a zap logger for the given options.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Enabled {
		return zap.NewNop(), nil
	}
	if opts.File == "" {
		return nil, fmt.Errorf("logging enabled without a log file")
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{opts.File}
	cfg.ErrorOutputPaths = []string{opts.File}
	cfg.Sampling = nil
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Category loggers used across the app.
const (
	CategoryCache     = "cache"
	CategoryMiniGame  = "microgame"
	CategoryQuiz      = "quiz"
	CategoryStore     = "store"
	CategoryQuestions = "questions"
)
