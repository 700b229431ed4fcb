package identity

import (
	"context"
	"fmt"
)

// Identity is an account freshly authenticated by the identity provider.
// IDToken is the bearer token for the current reconciliation only and is never persisted.
type Identity struct {
	SubjectID     string `json:"subject_id"     bson:"subject_id"`
	Email         string `json:"email"          bson:"email"`
	DisplayName   string `json:"display_name"   bson:"display_name,omitempty"`
	EmailVerified bool   `json:"email_verified" bson:"email_verified"`
	IDToken       string `json:"-"              bson:"-"`
}

// Provider signs an account in with email and password.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
}

// Reason classifies why the provider rejected a sign-in.
type Reason string

const (
	ReasonInvalidEmail      Reason = "invalid_email"
	ReasonInvalidCredential Reason = "invalid_credential"
	ReasonUnknown           Reason = "unknown"
)

// Error is a sign-in failure reported by a provider. Code keeps the provider's
// own machine readable code for logging.
type Error struct {
	Reason Reason
	Code   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity provider: %s (%s): %v", e.Reason, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReasonFromCode translates an Identity Toolkit style error code into a Reason.
// Both the local auth-service and Firebase report codes in this vocabulary.
func ReasonFromCode(code string) Reason {
	switch code {
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return ReasonInvalidEmail
	case "INVALID_PASSWORD",
		"MISSING_PASSWORD",
		"EMAIL_NOT_FOUND",
		"INVALID_LOGIN_CREDENTIALS",
		"INVALID_CREDENTIAL":
		return ReasonInvalidCredential
	default:
		return ReasonUnknown
	}
}
