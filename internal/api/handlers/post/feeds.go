package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
)

// FeedHandler handles post retrieval requests
type FeedHandler struct {
	service posts.Service
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(service posts.Service) *FeedHandler {
	return &FeedHandler{service: service}
}

// HandleAll handles GET /api/post/all.
// Returns every post newest-first; an empty feed responds 200 with [].
func (h *FeedHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.GetAllPosts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// HandleLiked handles GET /api/post/liked/{id}, where id is a user id
func (h *FeedHandler) HandleLiked(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "user id is required")
		return
	}

	views, err := h.service.GetLikedPosts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// HandleFollowing handles GET /api/post/following.
// Returns posts authored by users the caller follows, newest-first.
func (h *FeedHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	views, err := h.service.GetFollowingPosts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// HandleUserPosts handles GET /api/post/user/{username}
func (h *FeedHandler) HandleUserPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "username is required")
		return
	}

	views, err := h.service.GetUserPosts(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}
