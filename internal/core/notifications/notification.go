package notifications

import (
	"time"
)

// Notification types recognized by the API
const (
	TypeLike   = "like"
	TypeFollow = "follow"
)

// Notification represents a stored notification row.
// Created as a side effect of like and follow actions, never on the
// corresponding undo actions.
type Notification struct {
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	ID         string    `json:"id" db:"id"`
	Type       string    `json:"type" db:"type"`
	FromUserID string    `json:"from" db:"from_user_id"`
	ToUserID   string    `json:"to" db:"to_user_id"`
	Read       bool      `json:"read" db:"read"`
}

// SenderView is the resolved public identity of the notification sender
type SenderView struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfileImg string `json:"profileImg,omitempty"`
}

// NotificationView is a notification with its sender identity resolved
type NotificationView struct {
	CreatedAt time.Time   `json:"createdAt"`
	From      *SenderView `json:"from"`
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Read      bool        `json:"read"`
}
