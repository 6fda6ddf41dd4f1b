package posts

import "context"

// Repository defines the data access interface for posts, comments and likes.
// Both Post.likes and a user's liked posts are backed by the post_likes
// join table, so the two directions of the like relation cannot diverge.
type Repository interface {
	// Create inserts a new post row
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by id; returns ErrNotFound when absent
	GetByID(ctx context.Context, id string) (*Post, error)

	// Delete removes a post row (comments and likes cascade)
	Delete(ctx context.Context, id string) error

	// AddComment appends a comment to a post
	AddComment(ctx context.Context, comment *Comment) error

	// HasLike reports whether userID currently likes postID
	HasLike(ctx context.Context, postID, userID string) (bool, error)

	// AddLike records a like; inserting an existing like is a no-op
	AddLike(ctx context.Context, postID, userID string) error

	// RemoveLike deletes a like if present
	RemoveLike(ctx context.Context, postID, userID string) error

	// ListLikerIDs returns the ids of users who like the post
	ListLikerIDs(ctx context.Context, postID string) ([]string, error)

	// GetView retrieves a single post with author, likers and comments resolved
	GetView(ctx context.Context, id string) (*PostView, error)

	// ListAll returns all posts newest-first with identities resolved
	ListAll(ctx context.Context) ([]*PostView, error)

	// ListByAuthors returns posts by any of the given authors, newest-first
	ListByAuthors(ctx context.Context, authorIDs []string) ([]*PostView, error)

	// ListLikedBy returns posts the user has liked
	ListLikedBy(ctx context.Context, userID string) ([]*PostView, error)
}

// Service defines the business logic interface for post interactions
type Service interface {
	// CreatePost validates content, uploads the image when present and
	// persists the post. A post must have text or an image.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// DeletePost removes a post owned by requesterID. The post's image
	// is deleted from the media store best-effort.
	DeletePost(ctx context.Context, requesterID, postID string) error

	// CommentOnPost appends a comment and returns the post view with
	// commenter identities resolved
	CommentOnPost(ctx context.Context, req CommentRequest) (*PostView, error)

	// ToggleLike likes the post when the user has not liked it, unlikes
	// it otherwise, and returns the resulting liker-id list. A new like
	// notifies the post owner unless the liker is the owner.
	ToggleLike(ctx context.Context, userID, postID string) ([]string, error)

	// GetAllPosts returns every post newest-first
	GetAllPosts(ctx context.Context) ([]*PostView, error)

	// GetLikedPosts returns posts liked by the user
	GetLikedPosts(ctx context.Context, userID string) ([]*PostView, error)

	// GetFollowingPosts returns posts authored by users the requester follows
	GetFollowingPosts(ctx context.Context, requesterID string) ([]*PostView, error)

	// GetUserPosts returns posts authored by the named user
	GetUserPosts(ctx context.Context, username string) ([]*PostView, error)
}
