package ports

import "context"

// Port: an outbound message sink with an at-least-once send contract.
// Implementations must respect ctx deadlines; a timed-out send is a failed
// send, never a crash.
type Notifier interface {
	Send(ctx context.Context, toAddress, subject, body string) error
}
