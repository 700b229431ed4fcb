package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidator_Struct(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	tests := []struct {
		name       string
		req        signInRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req:  signInRequest{Email: "a@b.com", Password: "secret1"},
		},
		{
			name:       "missing both",
			req:        signInRequest{},
			wantFields: []string{"email", "password"},
		},
		{
			name:       "malformed email",
			req:        signInRequest{Email: "bad", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			req:        signInRequest{Email: "a@b.com", Password: "12345"},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var fields FieldErrors
			require.ErrorAs(t, err, &fields)
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
				assert.Contains(t, fields[f], f)
			}
		})
	}
}

func TestFieldErrors_ErrorIsStable(t *testing.T) {
	fields := FieldErrors{"password": "password is required", "email": "email is required"}

	assert.Equal(t, "email is required; password is required", fields.Error())
}

func TestValidator_Var(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Var("a@b.com", "email"))
	assert.Error(t, v.Var("bad", "email"))
}
