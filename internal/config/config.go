package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Processing ProcessingConfig `mapstructure:"processing" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the graceful shutdown window as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// ProcessingConfig sizes the shared worker pool used by batch item processing.
type ProcessingConfig struct {
	// WorkerCount is the fixed number of pool workers shared by all batch runs.
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1,lte=1000"`

	// QueueSize is the buffer between batch dispatchers and pool workers.
	QueueSize int `mapstructure:"queue_size" validate:"gte=1"`

	// ItemDelayMs is an artificial per-item delay before the item is re-fetched.
	ItemDelayMs int `mapstructure:"item_delay_ms" validate:"gte=0"`
}

// ItemDelay returns the per-item delay as a duration.
func (p ProcessingConfig) ItemDelay() time.Duration {
	return time.Duration(p.ItemDelayMs) * time.Millisecond
}
