package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type notificationService struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new notification service instance
func NewService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		repo:   repo,
		logger: logger,
	}
}

// Notify records a notification for the recipient
func (s *notificationService) Notify(ctx context.Context, notifType, fromUserID, toUserID string) error {
	if notifType != TypeLike && notifType != TypeFollow {
		return ErrInvalidType
	}
	if fromUserID == "" || toUserID == "" {
		return ErrUserRequired
	}

	notification := &Notification{
		ID:         uuid.NewString(),
		Type:       notifType,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Info("notification created",
		"type", notifType,
		"from", fromUserID,
		"to", toUserID)

	return nil
}

// List returns the user's notifications and marks unread ones as read.
// The returned views reflect the read state at retrieval time, matching
// the frontend's expectation of seeing which ones were new.
func (s *notificationService) List(ctx context.Context, userID string) ([]*NotificationView, error) {
	views, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return views, nil
}

// DeleteAll removes all notifications addressed to the user
func (s *notificationService) DeleteAll(ctx context.Context, userID string) error {
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	s.logger.Info("notifications deleted", "user", userID)
	return nil
}
