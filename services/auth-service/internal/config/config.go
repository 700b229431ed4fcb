package config

import (
	"fmt"
	"time"

	sharedconfig "github.com/vasapolrittideah/loginflow/shared/config"
)

type Config struct {
	Server sharedconfig.ServerConfig
	Mongo  sharedconfig.MongoConfig
	Consul sharedconfig.ConsulConfig
	Token  TokenConfig
}

// TokenConfig holds the ID token signing settings. Issuer and audience must
// match the profile-service configuration.
type TokenConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	Issuer    string        `env:"JWT_ISSUER"    envDefault:"auth-service"`
	Audience  string        `env:"JWT_AUDIENCE"  envDefault:"loginflow"`
	ExpiresIn time.Duration `env:"ID_TOKEN_TTL"  envDefault:"1h"`
}

// Load reads and validates the auth-service configuration from the environment.
func Load() (*Config, error) {
	cfg, err := sharedconfig.Parse[Config]()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.Token.ExpiresIn <= 0 {
		return fmt.Errorf("ID_TOKEN_TTL must be positive")
	}

	return nil
}
