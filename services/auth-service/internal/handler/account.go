package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/payload"
	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/usecase"
	"github.com/vasapolrittideah/loginflow/shared/httpheader"
	authmiddleware "github.com/vasapolrittideah/loginflow/shared/middleware"
	"github.com/vasapolrittideah/loginflow/shared/response"
	"github.com/vasapolrittideah/loginflow/shared/server"
)

type AccountHandler struct {
	logger      *zerolog.Logger
	authUsecase usecase.AuthUsecase
}

func NewAccountHandler(logger *zerolog.Logger, authUsecase usecase.AuthUsecase) *AccountHandler {
	return &AccountHandler{logger: logger, authUsecase: authUsecase}
}

func NewRouter(h *AccountHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httpheader.Capture)

	r.Get(server.HealthPath, server.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/accounts:signUp", h.SignUp)
		r.Post("/accounts:signInWithPassword", h.SignIn)
		r.Get("/accounts:lookup", h.Lookup)
	})

	return r
}

func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req payload.SignUpRequest
	if err := response.Decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	account, err := h.authUsecase.SignUp(r.Context(), usecase.SignUpParams{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.fail(w, r, err, "failed to sign up")
		return
	}

	response.JSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req payload.SignInRequest
	if err := response.Decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	account, err := h.authUsecase.SignIn(r.Context(), usecase.SignInParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(w, r, err, "failed to sign in")
		return
	}

	response.JSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	token, err := authmiddleware.BearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "INVALID_ID_TOKEN")
		return
	}

	account, err := h.authUsecase.LookupToken(r.Context(), token)
	if err != nil {
		h.fail(w, r, err, "failed to look up token")
		return
	}

	response.JSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, code := http.StatusBadRequest, ""

	switch {
	case errors.Is(err, usecase.ErrInvalidEmail):
		code = "INVALID_EMAIL"
	case errors.Is(err, usecase.ErrMissingPassword):
		code = "MISSING_PASSWORD"
	case errors.Is(err, usecase.ErrWeakPassword):
		code = "WEAK_PASSWORD"
	case errors.Is(err, usecase.ErrEmailExists):
		code = "EMAIL_EXISTS"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		code = "INVALID_LOGIN_CREDENTIALS"
	case errors.Is(err, usecase.ErrInvalidIDToken):
		status, code = http.StatusUnauthorized, "INVALID_ID_TOKEN"
	default:
		h.logger.Error().
			Err(err).
			Str("request_id", httpheader.RequestID(r.Context())).
			Msg(msg)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	h.logger.Debug().Str("code", code).Msg(msg)
	writeError(w, status, code)
}

func writeError(w http.ResponseWriter, status int, code string) {
	response.JSON(w, status, payload.ErrorResponse{Error: payload.ErrorDetail{Code: status, Message: code}})
}

func toAccountResponse(account *usecase.Account) payload.AccountResponse {
	resp := payload.AccountResponse{
		LocalID:       account.LocalID,
		Email:         account.Email,
		DisplayName:   account.DisplayName,
		EmailVerified: account.EmailVerified,
		IDToken:       account.IDToken,
	}
	if account.ExpiresIn > 0 {
		resp.ExpiresIn = strconv.FormatInt(int64(account.ExpiresIn.Seconds()), 10)
	}

	return resp
}
