package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"Chirp/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post into the posts table
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, user_id, text, image_url, image_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.UserID, post.Text, post.ImageURL, post.ImageID).
		Scan(&post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by id
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `
		SELECT id, user_id, text, image_url, image_id, created_at
		FROM posts
		WHERE id = $1`

	post := &posts.Post{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.UserID, &post.Text, &post.ImageURL, &post.ImageID, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// Delete removes a post row. Comments and likes cascade via foreign keys.
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// AddComment appends a comment to a post
func (r *postgresPostRepo) AddComment(ctx context.Context, comment *posts.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Text).
		Scan(&comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// HasLike reports whether userID currently likes postID
func (r *postgresPostRepo) HasLike(ctx context.Context, postID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`

	var liked bool
	if err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&liked); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return liked, nil
}

// AddLike records a like. The primary key makes re-inserting an existing
// like a no-op, so concurrent toggles cannot double-count.
func (r *postgresPostRepo) AddLike(ctx context.Context, postID, userID string) error {
	query := `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// RemoveLike deletes a like if present
func (r *postgresPostRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// ListLikerIDs returns the ids of users who like the post, oldest like first
func (r *postgresPostRepo) ListLikerIDs(ctx context.Context, postID string) ([]string, error) {
	query := `SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY created_at, user_id`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query likers: %w", err)
	}
	defer rows.Close()

	likers := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liker id: %w", err)
		}
		likers = append(likers, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likers: %w", err)
	}

	return likers, nil
}

// GetView retrieves a single post with author, likers and comments resolved
func (r *postgresPostRepo) GetView(ctx context.Context, id string) (*posts.PostView, error) {
	views, err := r.listViews(ctx, "p.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, posts.ErrNotFound
	}
	return views[0], nil
}

// ListAll returns all posts newest-first with identities resolved
func (r *postgresPostRepo) ListAll(ctx context.Context) ([]*posts.PostView, error) {
	return r.listViews(ctx, "TRUE")
}

// ListByAuthors returns posts by any of the given authors, newest-first
func (r *postgresPostRepo) ListByAuthors(ctx context.Context, authorIDs []string) ([]*posts.PostView, error) {
	if len(authorIDs) == 0 {
		return []*posts.PostView{}, nil
	}
	return r.listViews(ctx, "p.user_id = ANY($1)", pq.Array(authorIDs))
}

// ListLikedBy returns posts the user has liked, newest-first
func (r *postgresPostRepo) ListLikedBy(ctx context.Context, userID string) ([]*posts.PostView, error) {
	return r.listViews(ctx, "p.id IN (SELECT post_id FROM post_likes WHERE user_id = $1)", userID)
}

// listViews runs the shared post-view query with the given filter and
// hydrates likes and comments for the returned posts in two batch queries.
// Author identities come from the users join; password and email columns
// are never selected.
func (r *postgresPostRepo) listViews(ctx context.Context, where string, args ...interface{}) ([]*posts.PostView, error) {
	query := fmt.Sprintf(`
		SELECT
			p.id, p.text, p.image_url, p.created_at,
			u.id, u.username, u.full_name, u.profile_img
		FROM posts p
		INNER JOIN users u ON p.user_id = u.id
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
	`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	views := []*posts.PostView{}
	var postIDs []string
	for rows.Next() {
		view := &posts.PostView{
			Author:   &posts.AuthorView{},
			Likes:    []string{},
			Comments: []*posts.CommentView{},
		}
		if err := rows.Scan(
			&view.ID, &view.Text, &view.ImageURL, &view.CreatedAt,
			&view.Author.ID, &view.Author.Username, &view.Author.FullName, &view.Author.ProfileImg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post view: %w", err)
		}
		views = append(views, view)
		postIDs = append(postIDs, view.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	if len(views) == 0 {
		return views, nil
	}

	byID := make(map[string]*posts.PostView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	if err := r.attachLikes(ctx, byID, postIDs); err != nil {
		return nil, err
	}
	if err := r.attachComments(ctx, byID, postIDs); err != nil {
		return nil, err
	}

	return views, nil
}

func (r *postgresPostRepo) attachLikes(ctx context.Context, byID map[string]*posts.PostView, postIDs []string) error {
	query := `
		SELECT post_id, user_id
		FROM post_likes
		WHERE post_id = ANY($1)
		ORDER BY created_at, user_id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, userID string
		if err := rows.Scan(&postID, &userID); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		if view, ok := byID[postID]; ok {
			view.Likes = append(view.Likes, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating likes: %w", err)
	}

	return nil
}

func (r *postgresPostRepo) attachComments(ctx context.Context, byID map[string]*posts.PostView, postIDs []string) error {
	query := `
		SELECT
			c.id, c.post_id, c.text, c.created_at,
			u.id, u.username, u.full_name, u.profile_img
		FROM comments c
		INNER JOIN users u ON c.user_id = u.id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at, c.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		comment := &posts.CommentView{Author: &posts.AuthorView{}}
		if err := rows.Scan(
			&comment.ID, &postID, &comment.Text, &comment.CreatedAt,
			&comment.Author.ID, &comment.Author.Username, &comment.Author.FullName, &comment.Author.ProfileImg,
		); err != nil {
			return fmt.Errorf("failed to scan comment: %w", err)
		}
		if view, ok := byID[postID]; ok {
			view.Comments = append(view.Comments, comment)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating comments: %w", err)
	}

	return nil
}
