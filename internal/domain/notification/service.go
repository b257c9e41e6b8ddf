package notification

import "context"

// Service delivers notifications asynchronously. Queue sends must never
// block or propagate errors into the caller's operation.
type Service interface {
	// Queue enqueues an event for background persistence and SSE delivery.
	// Always returns quickly; a full queue drops the event with a log line.
	Queue(n Notify)

	// List returns the caller's recent notifications and unread count
	List(ctx context.Context, recipientEmail string, limit int) (ListResponse, error)

	// MarkRead marks the caller's notifications read
	MarkRead(ctx context.Context, recipientEmail string, ids []string) error

	// Stop flushes pending notifications and stops the workers
	Stop()
}
