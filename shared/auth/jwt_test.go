package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func TestJWTAuthenticator_IssueAndVerify(t *testing.T) {
	a := NewJWTAuthenticator("loginflow", "auth-service", testSecret)

	token, expiresAt, err := a.IssueIDToken("user-123", "a@b.com", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := a.VerifyIDToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "auth-service", claims.Issuer)
}

func TestJWTAuthenticator_IssueRequiresSubject(t *testing.T) {
	a := NewJWTAuthenticator("loginflow", "auth-service", testSecret)

	_, _, err := a.IssueIDToken("", "a@b.com", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestJWTAuthenticator_VerifyRejects(t *testing.T) {
	issuer := NewJWTAuthenticator("loginflow", "auth-service", testSecret)
	valid, _, err := issuer.IssueIDToken("user-123", "a@b.com", time.Hour)
	require.NoError(t, err)

	expired := NewJWTAuthenticator("loginflow", "auth-service", testSecret)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.IssueIDToken("user-123", "a@b.com", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier *JWTAuthenticator
		token    string
	}{
		{
			name:     "empty token",
			verifier: issuer,
			token:    "",
		},
		{
			name:     "garbage token",
			verifier: issuer,
			token:    "not.a.jwt",
		},
		{
			name:     "wrong secret",
			verifier: NewJWTAuthenticator("loginflow", "auth-service", "another-secret-key-at-least-32-bytes"),
			token:    valid,
		},
		{
			name:     "wrong audience",
			verifier: NewJWTAuthenticator("other-app", "auth-service", testSecret),
			token:    valid,
		},
		{
			name:     "wrong issuer",
			verifier: NewJWTAuthenticator("loginflow", "someone-else", testSecret),
			token:    valid,
		},
		{
			name:     "expired",
			verifier: issuer,
			token:    expiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.verifier.VerifyIDToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidIDToken)
			assert.Nil(t, claims)
		})
	}
}
