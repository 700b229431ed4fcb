package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vasapolrittideah/loginflow/shared/discovery"
	"github.com/vasapolrittideah/loginflow/shared/httpheader"
)

const signInPath = "/v1/accounts:signInWithPassword"

// AuthServiceClient signs accounts in against the local auth-service.
type AuthServiceClient struct {
	resolver   discovery.Resolver
	service    string
	httpClient *http.Client
}

// NewAuthServiceClient creates a provider that resolves service through resolver on every call.
func NewAuthServiceClient(resolver discovery.Resolver, service string, httpClient *http.Client) *AuthServiceClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &AuthServiceClient{
		resolver:   resolver,
		service:    service,
		httpClient: httpClient,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	EmailVerified bool   `json:"emailVerified"`
	IDToken       string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AuthServiceClient) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	baseURL, err := c.resolver.Resolve(ctx, c.service)
	if err != nil {
		return nil, &Error{Reason: ReasonUnknown, Err: err}
	}

	body, err := json.Marshal(signInRequest{Email: email, Password: password})
	if err != nil {
		return nil, &Error{Reason: ReasonUnknown, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+signInPath, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Reason: ReasonUnknown, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	httpheader.Forward(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Reason: ReasonUnknown, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, &Error{Reason: ReasonUnknown, Err: fmt.Errorf("auth-service returned status %d", resp.StatusCode)}
		}

		code := errResp.Error.Message
		return nil, &Error{
			Reason: ReasonFromCode(code),
			Code:   code,
			Err:    fmt.Errorf("auth-service returned status %d", resp.StatusCode),
		}
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Reason: ReasonUnknown, Err: fmt.Errorf("decode sign-in response: %w", err)}
	}

	if out.LocalID == "" || out.IDToken == "" {
		return nil, &Error{Reason: ReasonUnknown, Err: fmt.Errorf("sign-in response missing account id or token")}
	}

	return &Identity{
		SubjectID:     out.LocalID,
		Email:         out.Email,
		DisplayName:   out.DisplayName,
		EmailVerified: out.EmailVerified,
		IDToken:       out.IDToken,
	}, nil
}
