package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
)

// LikeHandler handles like toggle requests
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleLike handles POST /api/post/like/{id}.
// Toggles the caller's like on the post and responds with the resulting
// liker-id list.
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "post id is required")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	likers, err := h.service.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likers)
}
