// Package config loads the inspection service's settings from environment
// variables, applying defaults and validating on startup so misconfiguration
// fails fast.
package config

import (
	"fmt"
	"time"
)

// Config holds all service configuration.
type Config struct {
	Server  ServerConfig
	Limits  LimitsConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

// LimitsConfig holds request processing limits.
type LimitsConfig struct {
	// MaxUploadSize is the largest accepted request body in bytes (default: 50MB)
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" default:"52428800"`

	// PreviewRows is how many parsed rows preview responses include (default: 10)
	PreviewRows int `env:"PREVIEW_ROWS" default:"10"`

	// MaxConcurrentParses caps uploads parsed in parallel (default: 5)
	MaxConcurrentParses int `env:"MAX_CONCURRENT_PARSES" default:"5"`

	// ParseWaitTime is how long a request waits for a parse slot before it
	// is rejected (default: 30s)
	ParseWaitTime time.Duration `env:"PARSE_WAIT_TIME" default:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
