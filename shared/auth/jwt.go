package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidIDToken = errors.New("invalid id token")
	ErrMissingSubject = errors.New("id token has no subject")
)

// IdentityClaims are the claims carried by an ID token issued to a signed-in account.
type IdentityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuthenticator issues and verifies HS256 ID tokens for one issuer/audience pair.
type JWTAuthenticator struct {
	audience string
	issuer   string
	secret   []byte
	now      func() time.Time
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(audience, issuer, secret string) *JWTAuthenticator {
	return &JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		secret:   []byte(secret),
		now:      time.Now,
	}
}

// IssueIDToken signs an ID token for subject that expires after ttl.
func (a *JWTAuthenticator) IssueIDToken(subject, email string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, ErrMissingSubject
	}

	now := a.now()
	expiresAt := now.Add(ttl)
	claims := IdentityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// VerifyIDToken parses tokenString and returns its claims when the signature,
// issuer, audience and expiry all check out.
func (a *JWTAuthenticator) VerifyIDToken(tokenString string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidIDToken
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
