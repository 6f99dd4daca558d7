// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps routine runs quiet; only problems reach stderr.
const DefaultLevel = "warn"

// Config returns the production config with console encoding on stderr.
// verbose forces debug level.
func Config(level string, verbose bool) (zap.Config, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config, nil
}

// New builds the logger described by Config.
func New(level string, verbose bool) (*zap.Logger, error) {
	config, err := Config(level, verbose)
	if err != nil {
		return nil, err
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
