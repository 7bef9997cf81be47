package notification

import "context"

// Notifier delivers notification emails through an external transport.
// Implementations must be safe for concurrent use. Delivery failures are the
// caller's to log; they never invalidate the notification record itself.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
