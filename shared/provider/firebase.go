package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

var ErrAccountNotFound = errors.New("firebase account not found")

// FirebaseError is a failed Identity Toolkit call with its machine readable code
// (e.g. INVALID_EMAIL, INVALID_PASSWORD). Code is empty when the failure never
// reached the API.
type FirebaseError struct {
	Code string
	Err  error
}

func (e *FirebaseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("firebase: %v", e.Err)
	}
	return fmt.Sprintf("firebase: %s: %v", e.Code, e.Err)
}

func (e *FirebaseError) Unwrap() error {
	return e.Err
}

// FirebaseAccount is the account returned by a successful password sign-in or token lookup.
type FirebaseAccount struct {
	LocalID       string
	Email         string
	DisplayName   string
	EmailVerified bool
	IDToken       string
	ExpiresIn     time.Duration
}

// FirebaseClient signs accounts in with email/password and resolves ID tokens
// through the Identity Toolkit REST API.
type FirebaseClient struct {
	service *identitytoolkit.Service
	timeout time.Duration
}

type firebaseOptions struct {
	endpoint string
	timeout  time.Duration
}

// FirebaseOption customizes a FirebaseClient.
type FirebaseOption func(*firebaseOptions)

// WithFirebaseEndpoint points the client at a different base URL, such as the auth emulator.
func WithFirebaseEndpoint(endpoint string) FirebaseOption {
	return func(o *firebaseOptions) {
		o.endpoint = endpoint
	}
}

// WithFirebaseTimeout bounds every request made by the client.
func WithFirebaseTimeout(timeout time.Duration) FirebaseOption {
	return func(o *firebaseOptions) {
		o.timeout = timeout
	}
}

// NewFirebaseClient creates a FirebaseClient authenticated with the project's web API key.
func NewFirebaseClient(ctx context.Context, apiKey string, opts ...FirebaseOption) (*FirebaseClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing firebase api key")
	}

	o := firebaseOptions{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if o.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(o.endpoint))
	}

	service, err := identitytoolkit.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	return &FirebaseClient{service: service, timeout: o.timeout}, nil
}

// SignInWithPassword verifies email and password and returns the account with a fresh ID token.
func (c *FirebaseClient) SignInWithPassword(ctx context.Context, email, password string) (*FirebaseAccount, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.service.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, &FirebaseError{Code: ErrorCode(err), Err: err}
	}

	return &FirebaseAccount{
		LocalID:     resp.LocalId,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		IDToken:     resp.IdToken,
		ExpiresIn:   time.Duration(resp.ExpiresIn) * time.Second,
	}, nil
}

// LookupIDToken resolves idToken to the account it was issued for.
func (c *FirebaseClient) LookupIDToken(ctx context.Context, idToken string) (*FirebaseAccount, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.service.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return nil, &FirebaseError{Code: ErrorCode(err), Err: err}
	}

	if len(resp.Users) == 0 {
		return nil, ErrAccountNotFound
	}

	user := resp.Users[0]
	return &FirebaseAccount{
		LocalID:       user.LocalId,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		EmailVerified: user.EmailVerified,
	}, nil
}

// ErrorCode extracts the Identity Toolkit error code from err. Messages such as
// "TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account..." are cut at the first space.
func ErrorCode(err error) string {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return ""
	}

	msg := apiErr.Message
	if msg == "" && len(apiErr.Errors) > 0 {
		msg = apiErr.Errors[0].Message
	}

	code, _, _ := strings.Cut(strings.TrimSpace(msg), " ")
	return code
}

func (c *FirebaseClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
