package leasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/notification"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LeaseRepository defines persistence operations for lease agreements
type LeaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LeaseAgreement, error)
	// FindActiveByTenant returns the tenant's active lease, or
	// shared.ErrNotFound when none exists.
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*LeaseAgreement, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]LeaseAgreement, error)
	// CreateActive inserts a new active lease. The store enforces the
	// at-most-one-active-lease-per-tenant invariant; when a concurrent caller
	// wins the race, shared.ErrConflict is returned and the caller should
	// re-read the surviving lease.
	CreateActive(ctx context.Context, lease *LeaseAgreement) error
	Save(ctx context.Context, lease *LeaseAgreement) error
	FindAll(ctx context.Context, filter shared.Filter) ([]LeaseAgreement, error)
	FindRecent(ctx context.Context, limit int) ([]LeaseAgreement, error)
	// FindExpiring returns active leases whose end date falls on or before the
	// deadline.
	FindExpiring(ctx context.Context, deadline time.Time) ([]LeaseAgreement, error)
	FindByStatus(ctx context.Context, status LeaseStatus) ([]LeaseAgreement, error)
	CountByStatus(ctx context.Context, status LeaseStatus) (int64, error)
}

// PaymentStats is the aggregate result of a payment statistics query
type PaymentStats struct {
	Total decimal.Decimal
	Count int64
}

// PaymentRepository defines persistence operations for the payment ledger.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByLease(ctx context.Context, leaseID uuid.UUID) ([]Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	FindRecent(ctx context.Context, limit int) ([]Payment, error)
	// SumByLease returns the total amount paid against a lease, zero when the
	// lease has no payments.
	SumByLease(ctx context.Context, leaseID uuid.UUID) (decimal.Decimal, error)
	SumAll(ctx context.Context) (decimal.Decimal, error)
	// StatsInRange aggregates payments whose payment date falls inside the
	// optional inclusive range.
	StatsInRange(ctx context.Context, start, end *time.Time) (PaymentStats, error)
	// RecordAtomic appends a payment and, in the same transaction, re-totals
	// the lease's ledger. When the total covers the rent and the lease row is
	// still active, the lease is marked paid and the completion notification
	// is inserted; a concurrent writer that already settled the lease leaves
	// note unwritten. Returns whether this call performed the transition. A
	// failure at any step rolls back all writes.
	RecordAtomic(ctx context.Context, payment *Payment, note *notification.Notification) (bool, error)
}
