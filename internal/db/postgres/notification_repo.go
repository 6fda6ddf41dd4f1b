package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Chirp/internal/core/notifications"
)

type postgresNotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepository creates a new PostgreSQL notification repository
func NewNotificationRepository(db *sql.DB) notifications.Repository {
	return &postgresNotificationRepo{db: db}
}

// Create inserts a new notification row
func (r *postgresNotificationRepo) Create(ctx context.Context, notification *notifications.Notification) error {
	query := `
		INSERT INTO notifications (id, type, from_user_id, to_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		notification.ID, notification.Type, notification.FromUserID, notification.ToUserID).
		Scan(&notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// ListForUser retrieves all notifications addressed to a user, newest first,
// with sender identities resolved
func (r *postgresNotificationRepo) ListForUser(ctx context.Context, userID string) ([]*notifications.NotificationView, error) {
	query := `
		SELECT
			n.id, n.type, n.read, n.created_at,
			u.id, u.username, u.profile_img
		FROM notifications n
		INNER JOIN users u ON n.from_user_id = u.id
		WHERE n.to_user_id = $1
		ORDER BY n.created_at DESC, n.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	views := []*notifications.NotificationView{}
	for rows.Next() {
		view := &notifications.NotificationView{From: &notifications.SenderView{}}
		if err := rows.Scan(
			&view.ID, &view.Type, &view.Read, &view.CreatedAt,
			&view.From.ID, &view.From.Username, &view.From.ProfileImg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return views, nil
}

// MarkAllRead flags every unread notification for the user as read
func (r *postgresNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE to_user_id = $1 AND read = FALSE`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every notification addressed to the user
func (r *postgresNotificationRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	query := `DELETE FROM notifications WHERE to_user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}
