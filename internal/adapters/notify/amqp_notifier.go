package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"food-rescue-service/internal/ports"
)

// outboundEmail is the message published for the mail worker to deliver.
type outboundEmail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AMQPNotifier publishes outbound emails to a durable RabbitMQ queue. A
// separate mail worker consumes the queue and talks SMTP; the service only
// guarantees the message reached the broker.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

var _ ports.Notifier = (*AMQPNotifier)(nil)

func NewAMQPNotifier(amqpURL, queue string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("amqp notifier: dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp notifier: open channel: %w", err)
	}

	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp notifier: declare queue %q: %w", queue, err)
	}

	return &AMQPNotifier{conn: conn, channel: ch, queue: queue}, nil
}

func (n *AMQPNotifier) Send(ctx context.Context, toAddress, subject, body string) error {
	if n.channel == nil {
		return errors.New("send notification: channel is nil")
	}

	payload, err := json.Marshal(outboundEmail{To: toAddress, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("send notification: encode payload: %w", err)
	}

	err = n.channel.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("send notification: publish to %q: %w", n.queue, err)
	}

	return nil
}

func (n *AMQPNotifier) Close() error {
	var errs []error
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
