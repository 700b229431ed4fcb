package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Parse loads T from environment variables.
func Parse[T any]() (*T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &cfg, nil
}

// ServerConfig holds the HTTP listener settings shared by every service.
type ServerConfig struct {
	Host            string        `env:"HOST"             envDefault:"0.0.0.0"`
	Port            int           `env:"PORT"             envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	URI            string        `env:"MONGO_URI"`
	Database       string        `env:"MONGO_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Validate checks if the MongoDB configuration is valid.
func (c MongoConfig) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Database == "" {
		return fmt.Errorf("missing MONGO_DATABASE environment variable")
	}

	return nil
}

// ConsulConfig holds the service discovery settings. An empty Addr disables consul.
type ConsulConfig struct {
	Addr          string        `env:"CONSUL_ADDR"`
	Token         string        `env:"CONSUL_TOKEN"`
	CheckInterval time.Duration `env:"CONSUL_CHECK_INTERVAL" envDefault:"10s"`
	// ServiceHost is the address other services reach this instance on.
	// Defaults to the hostname.
	ServiceHost string `env:"CONSUL_SERVICE_HOST"`
}

// Enabled reports whether consul should be used.
func (c ConsulConfig) Enabled() bool {
	return c.Addr != ""
}
