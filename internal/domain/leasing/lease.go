package leasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LeaseStatus represents the persisted status of a lease agreement
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusExpired    LeaseStatus = "expired"
	LeaseStatusTerminated LeaseStatus = "terminated"
	LeaseStatusPaid       LeaseStatus = "paid"
)

// IsValid checks if the status is a valid LeaseStatus
func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusActive, LeaseStatusExpired, LeaseStatusTerminated, LeaseStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of LeaseStatus
func (s LeaseStatus) String() string {
	return string(s)
}

// CanAccruePayments returns true if payments can be recorded in this status.
// Only active leases accrue toward the rent amount.
func (s LeaseStatus) CanAccruePayments() bool {
	return s == LeaseStatusActive
}

// PaymentFrequency represents how often rent falls due under a lease
type PaymentFrequency string

const (
	FrequencyMonthly   PaymentFrequency = "monthly"
	FrequencyQuarterly PaymentFrequency = "quarterly"
	FrequencyBiAnnual  PaymentFrequency = "bi-annual"
	FrequencyAnnual    PaymentFrequency = "annual"
)

// IsValid checks if the frequency is a known value
func (f PaymentFrequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyBiAnnual, FrequencyAnnual:
		return true
	}
	return false
}

// DisplayStatus is the date-derived lease status shown to callers. It is
// computed from start/end dates relative to "now" and is distinct from the
// persisted LeaseStatus, which also carries paid/terminated.
type DisplayStatus string

const (
	DisplayNoLease DisplayStatus = "No Lease"
	DisplayPending DisplayStatus = "Pending"
	DisplayActive  DisplayStatus = "Active"
	DisplayExpired DisplayStatus = "Expired"
)

const (
	// DefaultDurationMonths is assumed when a tenant has rent terms but no
	// explicit duration.
	DefaultDurationMonths = 12

	// daysPerMonth approximates a month as 30 days when deriving a lease end
	// date from a duration in months. Kept for compatibility with historical
	// records; a 12-month lease starting 2024-01-01 therefore ends 2024-12-26.
	daysPerMonth = 30
)

// LeaseAgreement represents a lease aggregate root binding a tenant to rent
// terms over a date range.
type LeaseAgreement struct {
	shared.BaseAggregateRoot
	TenantID         uuid.UUID        `json:"tenant_id"`
	RentAmount       decimal.Decimal  `json:"rent_amount"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	Status           LeaseStatus      `json:"status"`
	SecurityDeposit  *decimal.Decimal `json:"security_deposit"`
	AdditionalTerms  string           `json:"additional_terms"`
}

// NewLeaseAgreement creates a new active lease after validating its terms
func NewLeaseAgreement(
	tenantID uuid.UUID,
	rentAmount decimal.Decimal,
	startDate, endDate time.Time,
	frequency PaymentFrequency,
) (*LeaseAgreement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if rentAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rent amount must be positive")
	}
	if frequency == "" {
		frequency = FrequencyMonthly
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", fmt.Sprintf("Unknown payment frequency %q", frequency))
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Lease end date must be after start date")
	}

	lease := &LeaseAgreement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		RentAmount:        rentAmount,
		PaymentFrequency:  frequency,
		StartDate:         startDate,
		EndDate:           endDate,
		Status:            LeaseStatusActive,
	}

	lease.AddDomainEvent(NewLeaseCreatedEvent(lease))

	return lease, nil
}

// ProvisionFromTerms synthesizes an active lease from a tenant's informal rent
// terms: monthly frequency, rent equal to the monthly rent, and an end date of
// start + 30 days per month of duration (DefaultDurationMonths when unset).
func ProvisionFromTerms(
	tenantID uuid.UUID,
	monthlyRent decimal.Decimal,
	startDate time.Time,
	durationMonths *int,
) (*LeaseAgreement, error) {
	months := DefaultDurationMonths
	if durationMonths != nil && *durationMonths > 0 {
		months = *durationMonths
	}
	endDate := EndDateFor(startDate, months)

	lease, err := NewLeaseAgreement(tenantID, monthlyRent, startDate, endDate, FrequencyMonthly)
	if err != nil {
		return nil, err
	}

	lease.AddDomainEvent(NewLeaseProvisionedEvent(lease))

	return lease, nil
}

// EndDateFor derives a lease end date from a start date and a duration in
// months, using the 30-day-month approximation.
func EndDateFor(startDate time.Time, months int) time.Time {
	return startDate.AddDate(0, 0, daysPerMonth*months)
}

// DisplayStatusAt derives the date-based status of a lease at the given
// instant. A nil lease yields DisplayNoLease. The derivation is independent of
// the persisted Status field and is the single source of truth for read paths.
func DisplayStatusAt(lease *LeaseAgreement, now time.Time) DisplayStatus {
	if lease == nil {
		return DisplayNoLease
	}
	switch {
	case lease.EndDate.Before(now):
		return DisplayExpired
	case !lease.StartDate.After(now):
		return DisplayActive
	default:
		return DisplayPending
	}
}

// SetSecurityDeposit sets the optional security deposit
func (l *LeaseAgreement) SetSecurityDeposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Security deposit cannot be negative")
	}
	l.SecurityDeposit = &amount
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// SetAdditionalTerms sets the free-form additional terms
func (l *LeaseAgreement) SetAdditionalTerms(terms string) {
	l.AdditionalTerms = terms
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// MarkPaid transitions the lease to paid once the rent amount is covered.
// The transition is one-directional: it only fires from active, so repeated
// payments after full coverage leave the status untouched. Returns true when
// the status actually changed.
func (l *LeaseAgreement) MarkPaid() bool {
	if l.Status != LeaseStatusActive {
		return false
	}
	l.Status = LeaseStatusPaid
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	l.AddDomainEvent(NewLeasePaidEvent(l))
	return true
}

// Terminate ends the lease early
func (l *LeaseAgreement) Terminate() error {
	if l.Status != LeaseStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot terminate lease in %s status", l.Status))
	}
	l.Status = LeaseStatusTerminated
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// OutstandingAgainst returns the unpaid portion of the rent amount given the
// total already paid, floored at zero.
func (l *LeaseAgreement) OutstandingAgainst(totalPaid decimal.Decimal) decimal.Decimal {
	outstanding := l.RentAmount.Sub(totalPaid)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// IsCoveredBy reports whether the given total paid covers the rent amount
func (l *LeaseAgreement) IsCoveredBy(totalPaid decimal.Decimal) bool {
	return totalPaid.GreaterThanOrEqual(l.RentAmount)
}

// ExpiresWithin reports whether an active lease ends on or before the given
// deadline. Non-active leases never qualify.
func (l *LeaseAgreement) ExpiresWithin(deadline time.Time) bool {
	return l.Status == LeaseStatusActive && !l.EndDate.After(deadline)
}
