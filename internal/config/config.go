package config

import "time"

// Supported values of database.driver.
const (
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Security SecurityConfig `mapstructure:"security" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects and configures the user document store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres mongodb memory"`
	// URL is the connection string; the memory driver ignores it.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`
	// Name is the MongoDB database name.
	Name string `mapstructure:"name" validate:"required_if=Driver mongodb"`

	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// SecurityConfig controls how account passwords are protected at rest.
type SecurityConfig struct {
	// BcryptCost must stay inside the range accepted by x/crypto/bcrypt.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
