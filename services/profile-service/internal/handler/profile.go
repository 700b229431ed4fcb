package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/payload"
	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/usecase"
	"github.com/vasapolrittideah/loginflow/shared/httpheader"
	authmiddleware "github.com/vasapolrittideah/loginflow/shared/middleware"
	"github.com/vasapolrittideah/loginflow/shared/response"
	"github.com/vasapolrittideah/loginflow/shared/server"
)

type ProfileHandler struct {
	logger         *zerolog.Logger
	profileUsecase usecase.ProfileUsecase
}

func NewProfileHandler(logger *zerolog.Logger, profileUsecase usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{logger: logger, profileUsecase: profileUsecase}
}

func NewRouter(h *ProfileHandler, verifier authmiddleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httpheader.Capture)

	r.Get(server.HealthPath, server.Health)

	r.Route("/v1/profile", func(r chi.Router) {
		r.Use(authmiddleware.RequireBearer(verifier))
		r.Get("/", h.GetProfile)
		r.Post("/", h.CreateProfile)
	})

	return r
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := authmiddleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing principal")
		return
	}

	profile, err := h.profileUsecase.GetProfile(r.Context(), principal.Subject)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", httpheader.RequestID(r.Context())).
			Msg("failed to get profile")
		response.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	response.JSON(w, http.StatusOK, payload.GetProfileResponse{Profile: profile})
}

func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := authmiddleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing principal")
		return
	}

	profile, created, err := h.profileUsecase.CreateProfile(r.Context(), usecase.CreateProfileParams{
		OwnerID: principal.Subject,
		Email:   principal.Email,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", httpheader.RequestID(r.Context())).
			Msg("failed to create profile")
		response.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	response.JSON(w, status, payload.CreateProfileResponse{User: payload.CreateProfileUser{Profile: profile}})
}
