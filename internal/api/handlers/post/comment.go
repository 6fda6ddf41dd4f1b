package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
)

// CommentHandler handles comment requests
type CommentHandler struct {
	service posts.Service
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service posts.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// HandleComment handles POST /api/post/comment/{id}.
// Any authenticated user may comment on any post. Responds with the
// updated post view, commenter identities resolved.
func (h *CommentHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	postID := chi.URLParam(r, "id")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "post id is required")
		return
	}

	var req posts.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}
	req.UserID = userID
	req.PostID = postID

	view, err := h.service.CommentOnPost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
