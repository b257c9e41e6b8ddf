package notification

import "context"

// Repository defines data access methods for notifications.
type Repository interface {
	// CreateBatch inserts a batch of notifications
	CreateBatch(ctx context.Context, notifications []*Notification) error

	// ListByRecipient returns the recipient's most recent notifications
	ListByRecipient(ctx context.Context, recipientEmail string, limit int) ([]Notification, error)

	// CountUnread returns the recipient's unread notification count
	CountUnread(ctx context.Context, recipientEmail string) (int64, error)

	// MarkRead marks the given notifications read for the recipient
	MarkRead(ctx context.Context, recipientEmail string, ids []string) error
}
