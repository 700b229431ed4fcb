package verifier

import (
	"context"

	"github.com/vasapolrittideah/loginflow/shared/auth"
	"github.com/vasapolrittideah/loginflow/shared/middleware"
)

// JWTVerifier accepts ID tokens issued by the auth-service.
type JWTVerifier struct {
	authenticator *auth.JWTAuthenticator
}

func NewJWTVerifier(authenticator *auth.JWTAuthenticator) *JWTVerifier {
	return &JWTVerifier{authenticator: authenticator}
}

func (v *JWTVerifier) VerifyToken(_ context.Context, token string) (*middleware.Principal, error) {
	claims, err := v.authenticator.VerifyIDToken(token)
	if err != nil {
		return nil, err
	}

	return &middleware.Principal{Subject: claims.Subject, Email: claims.Email}, nil
}
