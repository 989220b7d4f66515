// Package logging builds the zap loggers used across the service and bridges
// gorm's SQL logger onto them.
package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/pageza/pantrychef/backend/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New creates a logger for the given environment. Production gets JSON output,
// everything else the human friendly development encoder.
func New(env config.Environment, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == config.Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// GormLogger returns a gorm logger writing through zap
func GormLogger(l *zap.Logger, env config.Environment) gormlogger.Interface {
	level := gormlogger.Warn
	switch env {
	case config.Development:
		level = gormlogger.Info
	case config.Test, config.CI:
		level = gormlogger.Silent
	}

	return gormlogger.New(
		zap.NewStdLog(l.WithOptions(zap.AddCallerSkip(3)).Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}
