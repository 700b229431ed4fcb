package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vasapolrittideah/loginflow/shared/httpheader"
	"github.com/vasapolrittideah/loginflow/shared/server"
)

func NewRouter(login *LoginHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httpheader.Capture)

	r.Get(server.HealthPath, server.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/login", login.Login)
		r.Get("/session", login.Session)
	})

	return r
}
