package app

import (
	"fmt"

	"go.uber.org/zap"
)

// initLogger создает логгер по LOG_LEVEL: "production", "development"
// или уровень zap (debug, info, warn, error) для production-формата
func initLogger(logLevel string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch logLevel {
	case "production":
		logger, err = zap.NewProduction()
	case "development", "":
		logger, err = zap.NewDevelopment()
	default:
		level, parseErr := zap.ParseAtomicLevel(logLevel)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse log level %q: %w", logLevel, parseErr)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		logger, err = cfg.Build()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	return logger, nil
}
