package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, http.StatusUnauthorized, "Invalid email or password")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, rec.Body.String())
}

func TestFieldError(t *testing.T) {
	rec := httptest.NewRecorder()

	FieldError(rec, "invalid request", map[string]string{"email": "email must be a valid email address"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request","fields":{"email":"email must be a valid email address"}}`, rec.Body.String())
}

func TestDecode(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))
		var b body
		require.NoError(t, Decode(r, &b))
		assert.Equal(t, "a@b.com", b.Email)
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var b body
		assert.ErrorIs(t, Decode(r, &b), ErrEmptyBody)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"mail":"a@b.com"}`))
		var b body
		assert.Error(t, Decode(r, &b))
	})
}
