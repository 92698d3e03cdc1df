package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// SQLNotificationRepository persists outbound notification records in
// Postgres.
type SQLNotificationRepository struct {
	DB *sql.DB
}

var _ ports.NotificationRepository = (*SQLNotificationRepository)(nil)

func NewSQLNotificationRepository(db *sql.DB) *SQLNotificationRepository {
	return &SQLNotificationRepository{DB: db}
}

func (r *SQLNotificationRepository) CreateNotification(ctx context.Context, n domain.Notification) error {
	if r.DB == nil {
		return errors.New("create notification: DB is nil")
	}

	_, err := r.DB.ExecContext(ctx, `
	INSERT INTO notifications (notification_id, notification_type, recipient_email, subject,
		message_body, stop_id, donation_id, is_sent, sent_at, response_received, response_content, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`, n.NotificationID, string(n.Type), n.RecipientEmail, n.Subject,
		n.MessageBody, n.StopID, n.DonationID, n.IsSent, n.SentAt, n.ResponseReceived, n.ResponseContent, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification %s: insert notifications: %w", n.NotificationID, err)
	}

	return nil
}

func (r *SQLNotificationRepository) MarkNotificationSent(ctx context.Context, notificationID uuid.UUID, sentAt time.Time) error {
	if r.DB == nil {
		return errors.New("mark notification sent: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `
	UPDATE notifications
	SET is_sent = TRUE, sent_at = $2
	WHERE notification_id = $1;
	`, notificationID, sentAt)
	if err != nil {
		return fmt.Errorf("mark notification sent %s: update notifications: %w", notificationID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification sent %s: rows affected: %w", notificationID, err)
	}
	if affected == 0 {
		return fmt.Errorf("mark notification sent %s: %w", notificationID, domain.ErrNotFound)
	}

	return nil
}

// MarkLatestResponded attaches a response to the most recently sent
// notification for a stop.
func (r *SQLNotificationRepository) MarkLatestResponded(ctx context.Context, stopID uuid.UUID, content string) (bool, error) {
	if r.DB == nil {
		return false, errors.New("mark latest responded: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `
	UPDATE notifications
	SET response_received = TRUE, response_content = $2
	WHERE notification_id = (
		SELECT notification_id
		FROM notifications
		WHERE stop_id = $1 AND is_sent
		ORDER BY sent_at DESC NULLS LAST, created_at DESC
		LIMIT 1
	);
	`, stopID, content)
	if err != nil {
		return false, fmt.Errorf("mark latest responded %s: update notifications: %w", stopID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark latest responded %s: rows affected: %w", stopID, err)
	}

	return affected > 0, nil
}
