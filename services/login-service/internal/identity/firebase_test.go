package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/loginflow/shared/provider"
)

type fakeFirebase struct {
	account *provider.FirebaseAccount
	err     error
}

func (f *fakeFirebase) SignInWithPassword(_ context.Context, _, _ string) (*provider.FirebaseAccount, error) {
	return f.account, f.err
}

func TestFirebaseProvider_SignIn(t *testing.T) {
	p := NewFirebaseProvider(&fakeFirebase{account: &provider.FirebaseAccount{
		LocalID:     "uid-1",
		Email:       "a@b.com",
		DisplayName: "A",
		IDToken:     "id-token",
	}})

	id, err := p.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.SubjectID)
	assert.Equal(t, "A", id.DisplayName)
	assert.Equal(t, "id-token", id.IDToken)
}

func TestFirebaseProvider_SignInErrors(t *testing.T) {
	tests := []struct {
		name       string
		fake       *fakeFirebase
		wantReason Reason
	}{
		{
			name:       "invalid email",
			fake:       &fakeFirebase{err: &provider.FirebaseError{Code: "INVALID_EMAIL", Err: errors.New("400")}},
			wantReason: ReasonInvalidEmail,
		},
		{
			name:       "wrong password",
			fake:       &fakeFirebase{err: &provider.FirebaseError{Code: "INVALID_PASSWORD", Err: errors.New("400")}},
			wantReason: ReasonInvalidCredential,
		},
		{
			name:       "transport failure",
			fake:       &fakeFirebase{err: errors.New("dial tcp: timeout")},
			wantReason: ReasonUnknown,
		},
		{
			name:       "account without token",
			fake:       &fakeFirebase{account: &provider.FirebaseAccount{LocalID: "uid-1"}},
			wantReason: ReasonUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewFirebaseProvider(tt.fake).SignIn(context.Background(), "a@b.com", "secret1")
			assert.Nil(t, id)

			var idErr *Error
			require.ErrorAs(t, err, &idErr)
			assert.Equal(t, tt.wantReason, idErr.Reason)
		})
	}
}
