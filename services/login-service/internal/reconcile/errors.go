package reconcile

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("email and password are required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProvider           = errors.New("identity provider error")
	ErrProfileLookup      = errors.New("profile lookup failed")
	ErrProfileCreation    = errors.New("profile creation failed")
	ErrSessionPersist     = errors.New("session persist failed")

	errIllegalTransition   = errors.New("illegal state transition")
	errInvalidProviderData = errors.New("identity provider returned no subject or token")
)

const unknownErrorMessage = "Login failed: An unknown error occurred."

// kinds lists the taxonomy in classification order with its user facing message.
var kinds = []struct {
	kind    error
	message string
}{
	{ErrValidation, "All fields are required"},
	{ErrInvalidEmailFormat, "Invalid email format"},
	{ErrInvalidCredentials, "Invalid email or password"},
	{ErrProvider, unknownErrorMessage},
	{ErrProfileLookup, "Login failed: could not load your profile."},
	{ErrProfileCreation, "Login failed: could not create your profile."},
	{ErrSessionPersist, "Login failed: could not start your session."},
}

// Error is the terminal failure of one attempt. Kind is one of the ErrXxx
// sentinels, State is the step that failed and Err the underlying cause.
type Error struct {
	Kind  error
	State State
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("reconcile %s: %v", e.State, e.Kind)
	}
	return fmt.Sprintf("reconcile %s: %v: %v", e.State, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Kind returns the taxonomy sentinel err belongs to, or ErrProvider when it
// belongs to none.
func Kind(err error) error {
	var rerr *Error
	if errors.As(err, &rerr) && rerr.Kind != nil {
		return rerr.Kind
	}

	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.kind
		}
	}

	return ErrProvider
}

// Message returns the fixed user facing message for err.
func Message(err error) string {
	kind := Kind(err)
	for _, k := range kinds {
		if k.kind == kind {
			return k.message
		}
	}

	return unknownErrorMessage
}
