package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(logger *zap.Logger, debug bool, auth *AuthHandler, users *UserHandler, resolver IdentityResolver) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(stripPort)
	router.Use(recoverer(logger))
	router.Use(middleware.StripSlashes)

	/* Свой логгер запросов только в дебаг режиме */
	if debug {
		router.Use(requestLogger(logger))
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, "account-service is running")
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/token", auth.Token)

		r.Route("/users", func(r chi.Router) {
			r.Use(Authenticate(logger, resolver))
			r.Post("/", users.Create)
			r.Get("/", users.List)
			r.Get("/{id}", users.Get)
			r.Put("/{id}", users.Update)
			r.Patch("/{id}", users.Patch)
			r.Delete("/{id}", users.Delete)
		})
	})

	return router
}
