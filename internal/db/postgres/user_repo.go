package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"Chirp/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, username, full_name, email, hashed_password, profile_img)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, full_name, email, hashed_password, profile_img, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.FullName, user.Email, user.HashedPassword, user.ProfileImg).
		Scan(&user.ID, &user.Username, &user.FullName, &user.Email, &user.HashedPassword,
			&user.ProfileImg, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// Check for unique constraint violations
		if strings.Contains(err.Error(), "duplicate key") {
			if strings.Contains(err.Error(), "users_username_key") {
				return nil, users.ErrUsernameTaken
			}
			if strings.Contains(err.Error(), "users_email_key") {
				return nil, users.ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `
		SELECT id, username, full_name, email, hashed_password, profile_img, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	query := `
		SELECT id, username, full_name, email, hashed_password, profile_img, created_at, updated_at
		FROM users
		WHERE username = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *postgresUserRepo) scanUser(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	err := row.Scan(&user.ID, &user.Username, &user.FullName, &user.Email,
		&user.HashedPassword, &user.ProfileImg, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetFollowingIDs returns the ids of every user the given user follows
func (r *postgresUserRepo) GetFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT followee_id FROM follows WHERE follower_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query following: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan followee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating following: %w", err)
	}

	return ids, nil
}

// IsFollowing reports whether follower currently follows target
func (r *postgresUserRepo) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var following bool
	if err := r.db.QueryRowContext(ctx, query, followerID, targetID).Scan(&following); err != nil {
		return false, fmt.Errorf("failed to check follow state: %w", err)
	}
	return following, nil
}

// AddFollow records a follow edge. The primary key makes re-inserting an
// existing edge a no-op.
func (r *postgresUserRepo) AddFollow(ctx context.Context, followerID, targetID string) error {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, followerID, targetID); err != nil {
		return fmt.Errorf("failed to add follow: %w", err)
	}
	return nil
}

// RemoveFollow deletes a follow edge if present
func (r *postgresUserRepo) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	if _, err := r.db.ExecContext(ctx, query, followerID, targetID); err != nil {
		return fmt.Errorf("failed to remove follow: %w", err)
	}
	return nil
}

// GetFollowCounts returns (followers, following) counts for a user
func (r *postgresUserRepo) GetFollowCounts(ctx context.Context, userID string) (int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)`

	var followers, following int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&followers, &following); err != nil {
		return 0, 0, fmt.Errorf("failed to get follow counts: %w", err)
	}
	return followers, following, nil
}
