package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// Repository defines persistence operations for notifications
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Notification, error)
	FindUnread(ctx context.Context) ([]Notification, error)
	Create(ctx context.Context, n *Notification) error
	MarkRead(ctx context.Context, id uuid.UUID) error
}
