package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifyPickupConfirmation   NotificationType = "pickup_confirmation"
	NotifyDeliveryConfirmation NotificationType = "delivery_confirmation"
	NotifyScheduleChange       NotificationType = "schedule_change"
)

// Notification is a persisted record of one outbound message and, later, the
// response it drew. The confirmation workflow creates these and updates the
// send/response fields; it never deletes them.
type Notification struct {
	NotificationID uuid.UUID
	Type           NotificationType
	RecipientEmail string
	Subject        string
	MessageBody    string

	StopID     *uuid.UUID
	DonationID *uuid.UUID

	IsSent           bool
	SentAt           *time.Time
	ResponseReceived bool
	ResponseContent  string

	CreatedAt time.Time
}
