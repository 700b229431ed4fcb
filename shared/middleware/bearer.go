package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vasapolrittideah/loginflow/shared/response"
)

var (
	ErrMissingAuthorization = errors.New("missing authorization header")
	ErrInvalidAuthorization = errors.New("invalid authorization header format")
)

// Principal is the account a verified bearer token was issued for.
type Principal struct {
	Subject string
	Email   string
	Token   string
}

// TokenVerifier resolves a raw bearer token to its principal.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Principal, error)
}

type principalKey struct{}

// PrincipalFromContext returns the principal stored by RequireBearer.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// RequireBearer rejects requests without a valid `Authorization: Bearer` token
// and stores the verified principal in the request context.
func RequireBearer(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			principal, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				unauthorized(w, "invalid bearer token")
				return
			}
			principal.Token = token

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAuthorization
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidAuthorization
	}

	return strings.TrimSpace(parts[1]), nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	response.Error(w, http.StatusUnauthorized, msg)
}
