package notification

import (
	"encoding/json"
	"log"
	"net/http"

	"Chirp/internal/api/middleware"
	"Chirp/internal/core/notifications"
)

// Handler serves the notification endpoints
type Handler struct {
	service notifications.Service
}

// NewHandler creates a new notification handler
func NewHandler(service notifications.Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /api/notification/.
// Returns the caller's notifications newest-first; unread ones are marked
// read after retrieval.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	views, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Printf("Unexpected error in notification handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// HandleDeleteAll handles DELETE /api/notification/
func (h *Handler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.DeleteAll(r.Context(), userID); err != nil {
		log.Printf("Unexpected error in notification handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notifications deleted successfully"})
}

func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
