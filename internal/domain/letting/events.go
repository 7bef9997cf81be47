package letting

import (
	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// TenantCreatedEvent is raised when a new tenant is registered
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
	Email      string    `json:"email"`
}

// EventType returns the event type name
func (e *TenantCreatedEvent) EventType() string {
	return "TenantCreated"
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(t *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TenantCreated", "Tenant", t.ID),
		TenantID:        t.ID,
		TenantName:      t.FullName(),
		Email:           t.Email,
	}
}
