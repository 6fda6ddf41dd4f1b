package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/middleware"
	"Chirp/internal/core/users"
)

// Handler serves the follow and profile endpoints
type Handler struct {
	service users.Service
}

// NewHandler creates a new user handler
func NewHandler(service users.Service) *Handler {
	return &Handler{service: service}
}

// HandleFollow handles POST /api/user/follow/{id}.
// Toggles the caller's follow edge to the target user.
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "user id is required")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	result, err := h.service.FollowUnfollow(r.Context(), userID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	message := "User unfollowed successfully"
	if result.Following {
		message = "User followed successfully"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   message,
		"following": result.Following,
	})
}

// HandleProfile handles GET /api/user/profile/{username}
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "username is required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: errorType, Message: message}); err != nil {
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

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "UserNotFound", "User not found")

	case errors.Is(err, users.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "You cannot follow yourself")

	default:
		log.Printf("Unexpected error in user handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
