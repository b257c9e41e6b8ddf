package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/notification"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type NotificationServiceImpl struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue  chan notification.Notify
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a notification service and starts its
// background workers.
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) *NotificationServiceImpl {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &NotificationServiceImpl{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.Notify, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		slog.Int("workers", cfg.WorkerCount),
		slog.Int("batch_size", cfg.BatchSize),
		slog.Duration("flush_interval", cfg.FlushInterval))

	return s
}

// worker drains the queue, persisting notifications in batches and pushing
// each persisted notification to SSE subscribers.
func (s *NotificationServiceImpl) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.Notify, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = &notification.Notification{
				ID:             uuid.Must(uuid.NewV7()).String(),
				RecipientEmail: req.RecipientEmail,
				Type:           req.Type,
				Title:          req.Title,
				Message:        req.Message,
				Data:           req.Data,
				IsRead:         false,
				CreatedAt:      time.Now(),
			}
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("failed to batch insert notifications",
				slog.Int("worker", id),
				slog.Int("count", len(notifications)),
				slog.Any("error", err))
		} else {
			for _, n := range notifications {
				s.hub.Publish(n.RecipientEmail, sse.Event{
					Recipient: n.RecipientEmail,
					Event:     "notification",
					Data:      s.toResponse(n),
				})
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever is already queued before the final flush
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Queue implements notification.Service. A full queue drops the event; shift
// and payroll operations must never stall on notification delivery.
func (s *NotificationServiceImpl) Queue(n notification.Notify) {
	select {
	case s.queue <- n:
	default:
		slog.Warn("notification queue full, dropping event",
			slog.String("recipient_email", n.RecipientEmail),
			slog.String("type", string(n.Type)))
	}
}

// List implements notification.Service.
func (s *NotificationServiceImpl) List(ctx context.Context, recipientEmail string, limit int) (notification.ListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, err := s.repo.ListByRecipient(ctx, recipientEmail, limit)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.repo.CountUnread(ctx, recipientEmail)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = s.toResponse(&notifications[i])
	}

	return notification.ListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

// MarkRead implements notification.Service.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, recipientEmail string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.repo.MarkRead(ctx, recipientEmail, ids)
}

// Subscribe opens an SSE subscription for a recipient. The returned cleanup
// must be called on disconnect.
func (s *NotificationServiceImpl) Subscribe(recipientEmail string) (chan sse.Event, func()) {
	return s.hub.Subscribe(recipientEmail)
}

func (s *NotificationServiceImpl) toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// Stop implements notification.Service. Pending events are flushed before
// the workers exit.
func (s *NotificationServiceImpl) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	slog.Info("notification service stopped")
}
