// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// MaxPageSize caps the page_size query parameter on every list
	// endpoint. DefaultPageSize is used when the parameter is absent.
	MaxPageSize     int `mapstructure:"max_page_size" validate:"required,gte=1,lte=100"`
	DefaultPageSize int `mapstructure:"default_page_size" validate:"required,gte=1"`

	// AllowedOrigins is the CORS allow-list for the browser frontend.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}
