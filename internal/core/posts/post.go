package posts

import (
	"time"
)

// Post represents a post row in the posts table.
// A post must carry non-empty text or an image; the service enforces
// this at creation. ImageID is the media-store asset id captured at
// upload time so deletes never re-derive it from the URL.
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Text      *string   `json:"text,omitempty" db:"text"`
	ImageURL  *string   `json:"img,omitempty" db:"image_url"`
	ImageID   *string   `json:"-" db:"image_id"`
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user" db:"user_id"`
}

// Comment represents a comment row. Comments are append-only.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"user" db:"user_id"`
	Text      string    `json:"text" db:"text"`
}

// AuthorView is the resolved public identity of a post or comment author.
// Password and email equivalents are never part of this view.
type AuthorView struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	ProfileImg string `json:"profileImg,omitempty"`
}

// CommentView is a comment with its author identity resolved
type CommentView struct {
	CreatedAt time.Time   `json:"createdAt"`
	Author    *AuthorView `json:"user"`
	ID        string      `json:"id"`
	Text      string      `json:"text"`
}

// PostView is the full view of a post returned by feed and comment
// endpoints: author resolved, liker ids, and comments with resolved
// commenters, in insertion order.
type PostView struct {
	CreatedAt time.Time      `json:"createdAt"`
	Author    *AuthorView    `json:"user"`
	Text      *string        `json:"text,omitempty"`
	ImageURL  *string        `json:"img,omitempty"`
	ID        string         `json:"id"`
	Likes     []string       `json:"likes"`
	Comments  []*CommentView `json:"comments"`
}

// CreatePostRequest represents input for creating a new post.
// ImageData is an inline payload (base64 or data URI), not a URL;
// the service uploads it and stores the returned URL.
type CreatePostRequest struct {
	UserID    string `json:"-"`
	Text      string `json:"text"`
	ImageData string `json:"img"`
}

// CommentRequest represents input for commenting on a post
type CommentRequest struct {
	UserID string `json:"-"`
	PostID string `json:"-"`
	Text   string `json:"text"`
}
