package notifications

import "context"

// Repository defines the data access interface for notifications
type Repository interface {
	// Create inserts a new notification row
	Create(ctx context.Context, notification *Notification) error

	// ListForUser retrieves all notifications addressed to a user,
	// newest first, with sender identities resolved
	ListForUser(ctx context.Context, userID string) ([]*NotificationView, error)

	// MarkAllRead flags every unread notification for the user as read
	MarkAllRead(ctx context.Context, userID string) error

	// DeleteAllForUser removes every notification addressed to the user
	DeleteAllForUser(ctx context.Context, userID string) error
}

// Service defines the business logic interface for notifications
type Service interface {
	// Notify records a notification for the recipient.
	// Callers are responsible for suppressing self-notifications.
	Notify(ctx context.Context, notifType, fromUserID, toUserID string) error

	// List returns the user's notifications newest-first and marks
	// the unread ones as read after retrieval
	List(ctx context.Context, userID string) ([]*NotificationView, error)

	// DeleteAll removes all notifications addressed to the user
	DeleteAll(ctx context.Context, userID string) error
}
