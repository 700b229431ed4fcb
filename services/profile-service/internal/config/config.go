package config

import (
	"fmt"

	sharedconfig "github.com/vasapolrittideah/loginflow/shared/config"
	"github.com/vasapolrittideah/loginflow/shared/mailer"
)

const (
	TokenBackendLocal    = "local"
	TokenBackendFirebase = "firebase"
)

type Config struct {
	Server sharedconfig.ServerConfig
	Mongo  sharedconfig.MongoConfig
	Consul sharedconfig.ConsulConfig
	Mailer mailer.Config

	TokenBackend     string `env:"TOKEN_BACKEND"     envDefault:"local"`
	JWTSecret        string `env:"JWT_SECRET"`
	JWTIssuer        string `env:"JWT_ISSUER"        envDefault:"auth-service"`
	JWTAudience      string `env:"JWT_AUDIENCE"      envDefault:"loginflow"`
	FirebaseAPIKey   string `env:"FIREBASE_API_KEY"`
	FirebaseEndpoint string `env:"FIREBASE_ENDPOINT"`

	DefaultPlan    string `env:"DEFAULT_PROFILE_PLAN" envDefault:"free"`
	WelcomeSubject string `env:"WELCOME_SUBJECT"      envDefault:"Welcome aboard"`
}

// Load reads and validates the profile-service configuration from the environment.
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

	switch c.TokenBackend {
	case TokenBackendLocal:
		if c.JWTSecret == "" {
			return fmt.Errorf("missing JWT_SECRET environment variable")
		}
	case TokenBackendFirebase:
		if c.FirebaseAPIKey == "" {
			return fmt.Errorf("missing FIREBASE_API_KEY environment variable")
		}
	default:
		return fmt.Errorf("unsupported TOKEN_BACKEND %q", c.TokenBackend)
	}

	if c.Mailer.Enabled() {
		if err := c.Mailer.Validate(); err != nil {
			return err
		}
	}

	return nil
}
