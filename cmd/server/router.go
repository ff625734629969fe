package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/ads-api/internal/api"
	apiMiddleware "github.com/phrazzld/ads-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.userService, app.authService, app.logger)
	adHandler := api.NewAdvertisementHandler(app.adService, app.config.Pagination.DefaultPerPage, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/ads", adHandler.List)
		r.Get("/ads/{id}", adHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Post("/ads", adHandler.Create)
			r.Put("/ads/{id}", adHandler.Update)
			r.Patch("/ads/{id}", adHandler.Update)
			r.Delete("/ads/{id}", adHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
