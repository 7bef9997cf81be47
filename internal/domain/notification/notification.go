package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// Type classifies a derived notification event
type Type string

const (
	TypeLeaseExpiry      Type = "lease_expiry"
	TypePaymentOverdue   Type = "payment_overdue"
	TypePaymentCompleted Type = "payment_completed"
)

// IsValid checks if the notification type is a known value
func (t Type) IsValid() bool {
	switch t {
	case TypeLeaseExpiry, TypePaymentOverdue, TypePaymentCompleted:
		return true
	}
	return false
}

// Notification is an append-only record of a derived event. Notifications are
// created only by the engine (payment completion, expiry and overdue scans),
// never from direct user input. The only permitted mutation is marking read.
type Notification struct {
	shared.BaseEntity
	Type     Type       `json:"type"`
	Message  string     `json:"message"`
	TenantID *uuid.UUID `json:"tenant_id"`
	SentDate time.Time  `json:"sent_date"`
	IsRead   bool       `json:"is_read"`
}

// New creates a new notification record
func New(notificationType Type, message string, tenantID *uuid.UUID) (*Notification, error) {
	if !notificationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION_TYPE", "Notification type is not valid")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Notification message cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		Type:       notificationType,
		Message:    message,
		TenantID:   tenantID,
		SentDate:   time.Now(),
	}, nil
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	n.IsRead = true
	n.UpdatedAt = time.Now()
}
