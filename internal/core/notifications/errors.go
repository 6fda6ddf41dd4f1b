package notifications

import "errors"

// Sentinel errors for notification operations
var (
	// ErrInvalidType is returned when a notification carries an unknown type tag
	ErrInvalidType = errors.New("invalid notification type")

	// ErrUserRequired is returned when from/to user ids are missing
	ErrUserRequired = errors.New("notification requires from and to user ids")
)
