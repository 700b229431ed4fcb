package config

import (
	"fmt"
	"time"

	sharedconfig "github.com/vasapolrittideah/loginflow/shared/config"
)

const (
	IdentityBackendLocal    = "local"
	IdentityBackendFirebase = "firebase"

	SessionBackendMongo  = "mongo"
	SessionBackendMemory = "memory"
)

type Config struct {
	Server sharedconfig.ServerConfig
	Mongo  sharedconfig.MongoConfig
	Consul sharedconfig.ConsulConfig

	IdentityBackend  string `env:"IDENTITY_BACKEND"  envDefault:"local"`
	FirebaseAPIKey   string `env:"FIREBASE_API_KEY"`
	FirebaseEndpoint string `env:"FIREBASE_ENDPOINT"`

	AuthServiceName    string `env:"AUTH_SERVICE_NAME"    envDefault:"auth-service"`
	AuthServiceURL     string `env:"AUTH_SERVICE_URL"`
	ProfileServiceName string `env:"PROFILE_SERVICE_NAME" envDefault:"profile-service"`
	ProfileServiceURL  string `env:"PROFILE_SERVICE_URL"`

	SessionBackend    string        `env:"SESSION_BACKEND"     envDefault:"memory"`
	SessionTTL        time.Duration `env:"SESSION_TTL"         envDefault:"24h"`
	HomePath          string        `env:"HOME_PATH"           envDefault:"/"`
	CookieSecure      bool          `env:"COOKIE_SECURE"       envDefault:"true"`
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
}

// Load reads and validates the login-service configuration from the environment.
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
	switch c.IdentityBackend {
	case IdentityBackendLocal:
		if !c.Consul.Enabled() && c.AuthServiceURL == "" {
			return fmt.Errorf("missing AUTH_SERVICE_URL environment variable")
		}
	case IdentityBackendFirebase:
		if c.FirebaseAPIKey == "" {
			return fmt.Errorf("missing FIREBASE_API_KEY environment variable")
		}
	default:
		return fmt.Errorf("unsupported IDENTITY_BACKEND %q", c.IdentityBackend)
	}

	if !c.Consul.Enabled() && c.ProfileServiceURL == "" {
		return fmt.Errorf("missing PROFILE_SERVICE_URL environment variable")
	}

	switch c.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendMongo:
		if err := c.Mongo.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}
