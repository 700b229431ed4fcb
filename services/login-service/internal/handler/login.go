package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/loginflow/services/login-service/internal/payload"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/reconcile"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/session"
	"github.com/vasapolrittideah/loginflow/shared/httpheader"
	"github.com/vasapolrittideah/loginflow/shared/response"
	"github.com/vasapolrittideah/loginflow/shared/validate"
)

// SessionCookie is the cookie carrying the session id.
const SessionCookie = "session_id"

// Reconciler runs one login reconciliation.
type Reconciler interface {
	Reconcile(ctx context.Context, sessionID string, creds *reconcile.Credentials) (*reconcile.NavigationSignal, error)
}

type LoginHandler struct {
	logger       *zerolog.Logger
	reconciler   Reconciler
	sessions     session.Store
	validator    *validate.Validator
	secureCookie bool
}

func NewLoginHandler(
	logger *zerolog.Logger,
	reconciler Reconciler,
	sessions session.Store,
	validator *validate.Validator,
	secureCookie bool,
) *LoginHandler {
	return &LoginHandler{
		logger:       logger,
		reconciler:   reconciler,
		sessions:     sessions,
		validator:    validator,
		secureCookie: secureCookie,
	}
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		var fields validate.FieldErrors
		if errors.As(err, &fields) {
			response.FieldError(w, "invalid request", fields)
			return
		}
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}

	creds := &reconcile.Credentials{Email: req.Email, Password: req.Password}
	req.Password = ""

	nav, err := h.reconciler.Reconcile(r.Context(), h.reusableSessionID(r), creds)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", httpheader.RequestID(r.Context())).
			Msg("failed to reconcile login")

		response.Error(w, statusFor(err), reconcile.Message(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    nav.SessionID,
		Path:     "/",
		Expires:  nav.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, payload.LoginResponse{Redirect: nav.Destination})
}

func (h *LoginHandler) Session(w http.ResponseWriter, r *http.Request) {
	id, ok := readSessionCookie(r)
	if !ok {
		response.Error(w, http.StatusNotFound, "session not found")
		return
	}

	record, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load session")
		response.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if record == nil {
		h.clearCookie(w)
		response.Error(w, http.StatusNotFound, "session not found")
		return
	}

	response.JSON(w, http.StatusOK, payload.SessionResponse{
		ID:          record.ID,
		SubjectID:   record.Identity.SubjectID,
		Email:       record.Identity.Email,
		DisplayName: record.Identity.DisplayName,
		Profile:     record.Profile.Data,
		ExpiresAt:   record.ExpiresAt,
	})
}

// reusableSessionID returns the cookie's session id when it still names a live
// record. Unknown ids are dropped so a client cannot choose its own id.
func (h *LoginHandler) reusableSessionID(r *http.Request) string {
	id, ok := readSessionCookie(r)
	if !ok {
		return ""
	}

	record, err := h.sessions.Get(r.Context(), id)
	if err != nil || record == nil {
		return ""
	}

	return id
}

func (h *LoginHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func readSessionCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}

	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrValidation),
		errors.Is(err, reconcile.ErrInvalidEmailFormat):
		return http.StatusBadRequest
	case errors.Is(err, reconcile.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, reconcile.ErrSessionPersist):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
