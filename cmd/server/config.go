package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/item-api/internal/config"
	"github.com/phrazzld/item-api/internal/platform/logger"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger configures the process-wide logger from config settings.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"worker_count", cfg.Processing.WorkerCount,
		"queue_size", cfg.Processing.QueueSize,
		"item_delay_ms", cfg.Processing.ItemDelayMs)

	return l, nil
}
