package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
)

// Port: a boundary for persisting outbound notification records.
type NotificationRepository interface {
	// Persist a new notification record.
	CreateNotification(ctx context.Context, n domain.Notification) error
	// Mark a notification as delivered to the sink.
	MarkNotificationSent(ctx context.Context, notificationID uuid.UUID, sentAt time.Time) error
	// Record a response on the most recently sent notification for a stop.
	// A stop with no sent notification is not an error; reports whether a
	// record was updated.
	MarkLatestResponded(ctx context.Context, stopID uuid.UUID, content string) (bool, error)
}
