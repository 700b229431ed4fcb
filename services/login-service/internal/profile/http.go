package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vasapolrittideah/loginflow/shared/discovery"
	"github.com/vasapolrittideah/loginflow/shared/httpheader"
)

const profilePath = "/v1/profile"

var (
	ErrUnexpectedStatus = errors.New("unexpected profile service status")
	ErrMissingProfile   = errors.New("profile service response carried no profile")
)

// HTTPClient is a Client backed by the profile-service HTTP API.
type HTTPClient struct {
	resolver   discovery.Resolver
	service    string
	httpClient *http.Client
}

func NewHTTPClient(resolver discovery.Resolver, service string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		resolver:   resolver,
		service:    service,
		httpClient: httpClient,
	}
}

type getProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type createProfileResponse struct {
	User struct {
		Profile *Profile `json:"profile"`
	} `json:"user"`
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*Profile, error) {
	var out getProfileResponse
	if err := c.do(ctx, http.MethodGet, token, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return out.Profile, nil
}

func (c *HTTPClient) CreateProfile(ctx context.Context, token string) (*Profile, error) {
	var out createProfileResponse
	if err := c.do(ctx, http.MethodPost, token, &out, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}

	if out.User.Profile == nil {
		return nil, ErrMissingProfile
	}

	return out.User.Profile, nil
}

func (c *HTTPClient) do(ctx context.Context, method, token string, out any, accept ...int) error {
	baseURL, err := c.resolver.Resolve(ctx, c.service)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+profilePath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	httpheader.Forward(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, profilePath, err)
	}
	defer resp.Body.Close()

	ok := false
	for _, status := range accept {
		if resp.StatusCode == status {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, profilePath, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, profilePath, err)
	}

	return nil
}
