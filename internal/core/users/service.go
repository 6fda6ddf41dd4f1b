package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"Chirp/internal/core/notifications"
)

// Usernames must start with a letter and contain only letters, digits and
// underscores
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Loose email shape check; deliverability is not our problem
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type userService struct {
	userRepo Repository
	notifier notifications.Service
	logger   *slog.Logger
}

// NewService creates a new user service
func NewService(userRepo Repository, notifier notifications.Service, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// Signup validates the request, hashes the password and creates the account
func (s *userService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if err := validateSignupRequest(&req); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:       req.Username,
		FullName:       strings.TrimSpace(req.FullName),
		Email:          req.Email,
		HashedPassword: string(hashed),
	}

	// Repository maps unique constraint violations to ErrUsernameTaken/ErrEmailTaken
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user", created.ID, "username", created.Username)
	return created, nil
}

// Login verifies credentials and returns the account
func (s *userService) Login(ctx context.Context, req LoginRequest) (*User, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same error for unknown user and bad password, so login
			// probes cannot enumerate accounts
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by id
func (s *userService) GetByID(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username
func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByUsername(ctx, username)
}

// GetProfile returns the public profile with follow counts
func (s *userService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.userRepo.GetFollowCounts(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get follow counts: %w", err)
	}

	return &Profile{
		ID:         user.ID,
		Username:   user.Username,
		FullName:   user.FullName,
		ProfileImg: user.ProfileImg,
		CreatedAt:  user.CreatedAt,
		Followers:  followers,
		Following:  following,
	}, nil
}

// FollowUnfollow toggles the follow edge from follower to target.
// Toggle behavior:
// - Not following → follow, notify the target
// - Already following → unfollow, no notification
func (s *userService) FollowUnfollow(ctx context.Context, followerID, targetID string) (*FollowResult, error) {
	if followerID == targetID {
		return nil, ErrSelfFollow
	}

	// Target must exist before we record an edge to it
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	following, err := s.userRepo.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow state: %w", err)
	}

	if following {
		if err := s.userRepo.RemoveFollow(ctx, followerID, targetID); err != nil {
			return nil, fmt.Errorf("failed to unfollow: %w", err)
		}
		s.logger.Info("user unfollowed", "follower", followerID, "target", targetID)
		return &FollowResult{TargetID: targetID, Following: false}, nil
	}

	if err := s.userRepo.AddFollow(ctx, followerID, targetID); err != nil {
		return nil, fmt.Errorf("failed to follow: %w", err)
	}

	if err := s.notifier.Notify(ctx, notifications.TypeFollow, followerID, targetID); err != nil {
		// The follow itself succeeded; a lost notification is not worth
		// failing the request over
		s.logger.Error("failed to create follow notification",
			"error", err,
			"follower", followerID,
			"target", targetID)
	}

	s.logger.Info("user followed", "follower", followerID, "target", targetID)
	return &FollowResult{TargetID: targetID, Following: true}, nil
}

func validateSignupRequest(req *SignupRequest) error {
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return NewValidationError("username", "username must be between 3 and 30 characters")
	}
	if !usernameRegex.MatchString(req.Username) {
		return NewValidationError("username", "username must start with a letter and contain only letters, digits and underscores")
	}

	if req.Email == "" {
		return NewValidationError("email", "email is required")
	}
	if !emailRegex.MatchString(req.Email) {
		return NewValidationError("email", "invalid email address")
	}

	if len(req.Password) < 8 {
		return NewValidationError("password", "password must be at least 8 characters")
	}

	return nil
}
