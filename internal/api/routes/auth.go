package routes

import (
	"github.com/go-chi/chi/v5"

	authhandler "Chirp/internal/api/handlers/auth"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/users"
)

// AuthRoutes builds the router serving /api/auth.
// Signup and login are public; me requires authentication.
func AuthRoutes(service users.Service, secret []byte, authMiddleware *middleware.AuthMiddleware) chi.Router {
	handler := authhandler.NewHandler(service, secret)

	r := chi.NewRouter()

	r.Post("/signup", handler.HandleSignup)
	r.Post("/login", handler.HandleLogin)
	r.Post("/logout", handler.HandleLogout)
	r.With(authMiddleware.RequireAuth).Get("/me", handler.HandleMe)

	return r
}
