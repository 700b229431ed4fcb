package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonFromCode(t *testing.T) {
	tests := []struct {
		code string
		want Reason
	}{
		{code: "INVALID_EMAIL", want: ReasonInvalidEmail},
		{code: "MISSING_EMAIL", want: ReasonInvalidEmail},
		{code: "INVALID_PASSWORD", want: ReasonInvalidCredential},
		{code: "MISSING_PASSWORD", want: ReasonInvalidCredential},
		{code: "EMAIL_NOT_FOUND", want: ReasonInvalidCredential},
		{code: "INVALID_LOGIN_CREDENTIALS", want: ReasonInvalidCredential},
		{code: "INVALID_CREDENTIAL", want: ReasonInvalidCredential},
		{code: "USER_DISABLED", want: ReasonUnknown},
		{code: "TOO_MANY_ATTEMPTS_TRY_LATER", want: ReasonUnknown},
		{code: "invalid_email", want: ReasonUnknown},
		{code: "", want: ReasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ReasonFromCode(tt.code))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Reason: ReasonUnknown, Code: "USER_DISABLED", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "USER_DISABLED")
}
