package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LeaseCreatedEvent is raised when a new lease agreement is created
type LeaseCreatedEvent struct {
	shared.BaseDomainEvent
	LeaseID    uuid.UUID       `json:"lease_id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
}

// EventType returns the event type name
func (e *LeaseCreatedEvent) EventType() string {
	return "LeaseCreated"
}

// NewLeaseCreatedEvent creates a new LeaseCreatedEvent
func NewLeaseCreatedEvent(l *LeaseAgreement) *LeaseCreatedEvent {
	return &LeaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LeaseCreated", "LeaseAgreement", l.ID),
		LeaseID:         l.ID,
		TenantID:        l.TenantID,
		RentAmount:      l.RentAmount,
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
	}
}

// LeaseProvisionedEvent is raised when a lease is synthesized lazily from a
// tenant's informal rent terms rather than created explicitly
type LeaseProvisionedEvent struct {
	shared.BaseDomainEvent
	LeaseID  uuid.UUID `json:"lease_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	EndDate  time.Time `json:"end_date"`
}

// EventType returns the event type name
func (e *LeaseProvisionedEvent) EventType() string {
	return "LeaseProvisioned"
}

// NewLeaseProvisionedEvent creates a new LeaseProvisionedEvent
func NewLeaseProvisionedEvent(l *LeaseAgreement) *LeaseProvisionedEvent {
	return &LeaseProvisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LeaseProvisioned", "LeaseAgreement", l.ID),
		LeaseID:         l.ID,
		TenantID:        l.TenantID,
		EndDate:         l.EndDate,
	}
}

// LeasePaidEvent is raised when accumulated payments cover the rent amount
type LeasePaidEvent struct {
	shared.BaseDomainEvent
	LeaseID    uuid.UUID       `json:"lease_id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	RentAmount decimal.Decimal `json:"rent_amount"`
}

// EventType returns the event type name
func (e *LeasePaidEvent) EventType() string {
	return "LeasePaid"
}

// NewLeasePaidEvent creates a new LeasePaidEvent
func NewLeasePaidEvent(l *LeaseAgreement) *LeasePaidEvent {
	return &LeasePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LeasePaid", "LeaseAgreement", l.ID),
		LeaseID:         l.ID,
		TenantID:        l.TenantID,
		RentAmount:      l.RentAmount,
	}
}
