package mail

import (
	"context"

	"go.uber.org/zap"
)

// NoopNotifier logs sends without delivering anything. Used when mail is
// disabled in configuration.
type NoopNotifier struct {
	logger *zap.Logger
}

// NewNoopNotifier creates a NoopNotifier
func NewNoopNotifier(logger *zap.Logger) *NoopNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopNotifier{logger: logger}
}

// Send records the attempted delivery and returns nil
func (n *NoopNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	n.logger.Debug("mail disabled, skipping send",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}
