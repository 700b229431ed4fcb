package verifier

import (
	"context"
	"errors"

	"github.com/vasapolrittideah/loginflow/shared/middleware"
	"github.com/vasapolrittideah/loginflow/shared/provider"
)

var ErrEmptyAccount = errors.New("firebase account has no local id")

type idTokenLookup interface {
	LookupIDToken(ctx context.Context, idToken string) (*provider.FirebaseAccount, error)
}

// FirebaseVerifier accepts Firebase ID tokens by resolving them through the
// Identity Toolkit.
type FirebaseVerifier struct {
	client idTokenLookup
}

func NewFirebaseVerifier(client idTokenLookup) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, token string) (*middleware.Principal, error) {
	account, err := v.client.LookupIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if account.LocalID == "" {
		return nil, ErrEmptyAccount
	}

	return &middleware.Principal{Subject: account.LocalID, Email: account.Email}, nil
}
