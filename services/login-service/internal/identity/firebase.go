package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasapolrittideah/loginflow/shared/provider"
)

type passwordSignIner interface {
	SignInWithPassword(ctx context.Context, email, password string) (*provider.FirebaseAccount, error)
}

// FirebaseProvider signs accounts in through Firebase Authentication.
type FirebaseProvider struct {
	client passwordSignIner
}

func NewFirebaseProvider(client passwordSignIner) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	account, err := p.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		var fbErr *provider.FirebaseError
		if errors.As(err, &fbErr) {
			return nil, &Error{Reason: ReasonFromCode(fbErr.Code), Code: fbErr.Code, Err: err}
		}
		return nil, &Error{Reason: ReasonUnknown, Err: err}
	}

	if account.LocalID == "" || account.IDToken == "" {
		return nil, &Error{Reason: ReasonUnknown, Err: fmt.Errorf("firebase account missing id or token")}
	}

	return &Identity{
		SubjectID:     account.LocalID,
		Email:         account.Email,
		DisplayName:   account.DisplayName,
		EmailVerified: account.EmailVerified,
		IDToken:       account.IDToken,
	}, nil
}
