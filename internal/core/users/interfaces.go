package users

import "context"

// Repository defines the interface for user data persistence
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetFollowingIDs returns the ids of every user the given user follows
	GetFollowingIDs(ctx context.Context, userID string) ([]string, error)

	// IsFollowing reports whether follower currently follows target
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)

	// AddFollow records a follow edge; inserting an existing edge is a no-op
	AddFollow(ctx context.Context, followerID, targetID string) error

	// RemoveFollow deletes a follow edge if present
	RemoveFollow(ctx context.Context, followerID, targetID string) error

	// GetFollowCounts returns (followers, following) counts for a user
	GetFollowCounts(ctx context.Context, userID string) (int, int, error)
}

// Service defines the interface for user business logic
type Service interface {
	// Signup validates the request, hashes the password and creates the account
	Signup(ctx context.Context, req SignupRequest) (*User, error)

	// Login verifies credentials and returns the account
	Login(ctx context.Context, req LoginRequest) (*User, error)

	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetProfile returns the public profile with follow counts
	GetProfile(ctx context.Context, username string) (*Profile, error)

	// FollowUnfollow toggles the follow edge from follower to target.
	// A new follow notifies the target; an unfollow never does.
	FollowUnfollow(ctx context.Context, followerID, targetID string) (*FollowResult, error)
}
