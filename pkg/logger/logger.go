// Package logger builds the application zap logger.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and encoding of the logger
type Config struct {
	Level  string
	Format string
}

// ParseLevel maps a configured level name to a zap level; names are case-insensitive
// and an empty name means info
func ParseLevel(level string) (zapcore.Level, error) {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return parsed, nil
}

// New creates a logger. Format is json (default) or console.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		config = zap.NewProductionConfig()
	case "console":
		config = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
