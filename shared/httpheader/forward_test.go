package httpheader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_AssignsRequestID(t *testing.T) {
	var captured context.Context
	handler := Capture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context()
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, captured)
	id := RequestID(captured)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestCaptureAndForward(t *testing.T) {
	var captured context.Context
	handler := Capture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context()
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/login", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	req.Header.Set("Authorization", "Bearer should-not-forward")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out, err := http.NewRequest(http.MethodGet, "http://profile/v1/profile", nil)
	require.NoError(t, err)
	out.Header.Set("Authorization", "Bearer id-token")

	Forward(captured, out)

	assert.Equal(t, "req-1", out.Header.Get(RequestIDHeader))
	assert.Equal(t, "10.0.0.1", out.Header.Get("X-Forwarded-For"))
	assert.Equal(t, "Bearer id-token", out.Header.Get("Authorization"))
}

func TestForward_WithoutCapture(t *testing.T) {
	out, err := http.NewRequest(http.MethodGet, "http://profile/v1/profile", nil)
	require.NoError(t, err)

	Forward(context.Background(), out)

	assert.Empty(t, out.Header)
	assert.Empty(t, RequestID(context.Background()))
}
