package routes

import (
	"github.com/go-chi/chi/v5"

	notifhandler "Chirp/internal/api/handlers/notification"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/notifications"
)

// NotificationRoutes builds the router serving /api/notification
func NotificationRoutes(service notifications.Service, authMiddleware *middleware.AuthMiddleware) chi.Router {
	handler := notifhandler.NewHandler(service)

	r := chi.NewRouter()
	r.Use(authMiddleware.RequireAuth)

	r.Get("/", handler.HandleList)
	r.Delete("/", handler.HandleDeleteAll)

	return r
}
