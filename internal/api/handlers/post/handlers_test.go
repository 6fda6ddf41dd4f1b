package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
	"Chirp/internal/core/users"
)

// mockPostService implements posts.Service for testing
type mockPostService struct {
	createFunc    func(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error)
	deleteFunc    func(ctx context.Context, requesterID, postID string) error
	commentFunc   func(ctx context.Context, req posts.CommentRequest) (*posts.PostView, error)
	toggleFunc    func(ctx context.Context, userID, postID string) ([]string, error)
	allFunc       func(ctx context.Context) ([]*posts.PostView, error)
	likedFunc     func(ctx context.Context, userID string) ([]*posts.PostView, error)
	followingFunc func(ctx context.Context, requesterID string) ([]*posts.PostView, error)
	userPostsFunc func(ctx context.Context, username string) ([]*posts.PostView, error)
}

func (m *mockPostService) CreatePost(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &posts.Post{ID: "p1", UserID: req.UserID}, nil
}

func (m *mockPostService) DeletePost(ctx context.Context, requesterID, postID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, requesterID, postID)
	}
	return nil
}

func (m *mockPostService) CommentOnPost(ctx context.Context, req posts.CommentRequest) (*posts.PostView, error) {
	if m.commentFunc != nil {
		return m.commentFunc(ctx, req)
	}
	return &posts.PostView{ID: req.PostID}, nil
}

func (m *mockPostService) ToggleLike(ctx context.Context, userID, postID string) ([]string, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, userID, postID)
	}
	return []string{userID}, nil
}

func (m *mockPostService) GetAllPosts(ctx context.Context) ([]*posts.PostView, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return []*posts.PostView{}, nil
}

func (m *mockPostService) GetLikedPosts(ctx context.Context, userID string) ([]*posts.PostView, error) {
	if m.likedFunc != nil {
		return m.likedFunc(ctx, userID)
	}
	return []*posts.PostView{}, nil
}

func (m *mockPostService) GetFollowingPosts(ctx context.Context, requesterID string) ([]*posts.PostView, error) {
	if m.followingFunc != nil {
		return m.followingFunc(ctx, requesterID)
	}
	return []*posts.PostView{}, nil
}

func (m *mockPostService) GetUserPosts(ctx context.Context, username string) ([]*posts.PostView, error) {
	if m.userPostsFunc != nil {
		return m.userPostsFunc(ctx, username)
	}
	return []*posts.PostView{}, nil
}

// newAuthedRequest builds a request with a URL param and an authenticated
// user injected the way the auth middleware would
func newAuthedRequest(method, target, userID string, body []byte, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	ctx := middleware.SetTestUserID(req.Context(), userID)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

func TestCreateHandler_Success(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	body, _ := json.Marshal(map[string]string{"text": "hello"})
	req := newAuthedRequest(http.MethodPost, "/create", "u1", body, nil)

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateHandler_EmptyContent(t *testing.T) {
	mockService := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
			return nil, posts.NewValidationError("text", "post must have text or image")
		},
	}
	handler := NewCreateHandler(mockService)

	body, _ := json.Marshal(map[string]string{})
	req := newAuthedRequest(http.MethodPost, "/create", "u1", body, nil)

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateHandler_UserNotFound(t *testing.T) {
	mockService := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
			return nil, users.ErrUserNotFound
		},
	}
	handler := NewCreateHandler(mockService)

	body, _ := json.Marshal(map[string]string{"text": "hello"})
	req := newAuthedRequest(http.MethodPost, "/create", "ghost", body, nil)

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
}

func TestCreateHandler_MissingAuth(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	body, _ := json.Marshal(map[string]string{"text": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewReader(body))

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
}

func TestDeleteHandler_NotOwner(t *testing.T) {
	mockService := &mockPostService{
		deleteFunc: func(ctx context.Context, requesterID, postID string) error {
			return posts.ErrNotPostOwner
		},
	}
	handler := NewDeleteHandler(mockService)

	req := newAuthedRequest(http.MethodDelete, "/delete/p1", "intruder", nil,
		map[string]string{"id": "p1"})

	w := httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if resp.Error != "NotPostOwner" {
		t.Errorf("Expected error type NotPostOwner, got %q", resp.Error)
	}
}

func TestDeleteHandler_NotFound(t *testing.T) {
	mockService := &mockPostService{
		deleteFunc: func(ctx context.Context, requesterID, postID string) error {
			return posts.ErrNotFound
		},
	}
	handler := NewDeleteHandler(mockService)

	req := newAuthedRequest(http.MethodDelete, "/delete/ghost", "u1", nil,
		map[string]string{"id": "ghost"})

	w := httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
}

func TestCommentHandler_EmptyText(t *testing.T) {
	mockService := &mockPostService{
		commentFunc: func(ctx context.Context, req posts.CommentRequest) (*posts.PostView, error) {
			return nil, posts.NewValidationError("text", "comment cannot be empty")
		},
	}
	handler := NewCommentHandler(mockService)

	body, _ := json.Marshal(map[string]string{"text": ""})
	req := newAuthedRequest(http.MethodPost, "/comment/p1", "u1", body,
		map[string]string{"id": "p1"})

	w := httptest.NewRecorder()
	handler.HandleComment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestCommentHandler_SetsIdentityFromContext(t *testing.T) {
	var got posts.CommentRequest
	mockService := &mockPostService{
		commentFunc: func(ctx context.Context, req posts.CommentRequest) (*posts.PostView, error) {
			got = req
			return &posts.PostView{ID: req.PostID}, nil
		},
	}
	handler := NewCommentHandler(mockService)

	body, _ := json.Marshal(map[string]string{"text": "hi"})
	req := newAuthedRequest(http.MethodPost, "/comment/p1", "u2", body,
		map[string]string{"id": "p1"})

	w := httptest.NewRecorder()
	handler.HandleComment(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got.UserID != "u2" || got.PostID != "p1" {
		t.Errorf("Expected identity (u2, p1), got (%s, %s)", got.UserID, got.PostID)
	}
}

func TestLikeHandler_ReturnsLikers(t *testing.T) {
	mockService := &mockPostService{
		toggleFunc: func(ctx context.Context, userID, postID string) ([]string, error) {
			return []string{"u1", "u2"}, nil
		},
	}
	handler := NewLikeHandler(mockService)

	req := newAuthedRequest(http.MethodPost, "/like/p1", "u2", nil,
		map[string]string{"id": "p1"})

	w := httptest.NewRecorder()
	handler.HandleLike(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var likers []string
	if err := json.Unmarshal(w.Body.Bytes(), &likers); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(likers) != 2 {
		t.Errorf("Expected 2 likers, got %d", len(likers))
	}
}

func TestLikeHandler_PostNotFound(t *testing.T) {
	mockService := &mockPostService{
		toggleFunc: func(ctx context.Context, userID, postID string) ([]string, error) {
			return nil, posts.ErrNotFound
		},
	}
	handler := NewLikeHandler(mockService)

	req := newAuthedRequest(http.MethodPost, "/like/ghost", "u1", nil,
		map[string]string{"id": "ghost"})

	w := httptest.NewRecorder()
	handler.HandleLike(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
}

func TestFeedHandler_AllEmptyFeed(t *testing.T) {
	handler := NewFeedHandler(&mockPostService{})

	req := newAuthedRequest(http.MethodGet, "/all", "u1", nil, nil)

	w := httptest.NewRecorder()
	handler.HandleAll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestFeedHandler_LikedUnknownUser(t *testing.T) {
	mockService := &mockPostService{
		likedFunc: func(ctx context.Context, userID string) ([]*posts.PostView, error) {
			return nil, users.ErrUserNotFound
		},
	}
	handler := NewFeedHandler(mockService)

	req := newAuthedRequest(http.MethodGet, "/liked/ghost", "u1", nil,
		map[string]string{"id": "ghost"})

	w := httptest.NewRecorder()
	handler.HandleLiked(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
}
