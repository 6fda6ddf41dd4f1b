package routes

import (
	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/handlers/post"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
)

// PostRoutes builds the router serving /api/post.
// Every endpoint requires an authenticated identity.
func PostRoutes(service posts.Service, authMiddleware *middleware.AuthMiddleware) chi.Router {
	createHandler := post.NewCreateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	commentHandler := post.NewCommentHandler(service)
	likeHandler := post.NewLikeHandler(service)
	feedHandler := post.NewFeedHandler(service)

	r := chi.NewRouter()
	r.Use(authMiddleware.RequireAuth)

	r.Get("/all", feedHandler.HandleAll)
	r.Get("/liked/{id}", feedHandler.HandleLiked)
	r.Get("/following", feedHandler.HandleFollowing)
	r.Get("/user/{username}", feedHandler.HandleUserPosts)
	r.Post("/create", createHandler.HandleCreate)
	r.Post("/comment/{id}", commentHandler.HandleComment)
	r.Post("/like/{id}", likeHandler.HandleLike)
	r.Delete("/delete/{id}", deleteHandler.HandleDelete)

	return r
}
