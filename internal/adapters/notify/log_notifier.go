package notify

import (
	"context"
	"log"

	"food-rescue-service/internal/ports"
)

// LogNotifier writes outbound emails to the process log instead of a broker.
// Used when no AMQP URL is configured, typically local development.
type LogNotifier struct{}

var _ ports.Notifier = LogNotifier{}

func (LogNotifier) Send(_ context.Context, toAddress, subject, body string) error {
	log.Printf("event=email_out to=%q subject=%q bytes=%d", toAddress, subject, len(body))
	return nil
}
