package routes

import (
	"github.com/go-chi/chi/v5"

	userhandler "Chirp/internal/api/handlers/user"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/users"
)

// UserRoutes builds the router serving /api/user
func UserRoutes(service users.Service, authMiddleware *middleware.AuthMiddleware) chi.Router {
	handler := userhandler.NewHandler(service)

	r := chi.NewRouter()
	r.Use(authMiddleware.RequireAuth)

	r.Post("/follow/{id}", handler.HandleFollow)
	r.Get("/profile/{username}", handler.HandleProfile)

	return r
}
