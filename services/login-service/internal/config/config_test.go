package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_SERVICE_URL", "http://auth:8080")
	t.Setenv("PROFILE_SERVICE_URL", "http://profile:8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, IdentityBackendLocal, cfg.IdentityBackend)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/", cfg.HomePath)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "auth-service", cfg.AuthServiceName)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "no auth service",
			env:     map[string]string{"PROFILE_SERVICE_URL": "http://profile"},
			wantErr: "missing AUTH_SERVICE_URL environment variable",
		},
		{
			name:    "no profile service",
			env:     map[string]string{"AUTH_SERVICE_URL": "http://auth"},
			wantErr: "missing PROFILE_SERVICE_URL environment variable",
		},
		{
			name:    "firebase without key",
			env:     map[string]string{"IDENTITY_BACKEND": "firebase", "PROFILE_SERVICE_URL": "http://profile"},
			wantErr: "missing FIREBASE_API_KEY environment variable",
		},
		{
			name: "mongo sessions without uri",
			env: map[string]string{
				"AUTH_SERVICE_URL":    "http://auth",
				"PROFILE_SERVICE_URL": "http://profile",
				"SESSION_BACKEND":     "mongo",
			},
			wantErr: "missing MONGO_URI environment variable",
		},
		{
			name: "unknown session backend",
			env: map[string]string{
				"AUTH_SERVICE_URL":    "http://auth",
				"PROFILE_SERVICE_URL": "http://profile",
				"SESSION_BACKEND":     "redis",
			},
			wantErr: `unsupported SESSION_BACKEND "redis"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLoad_ConsulReplacesStaticURLs(t *testing.T) {
	t.Setenv("CONSUL_ADDR", "127.0.0.1:8500")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Consul.Enabled())
}
