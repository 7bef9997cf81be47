package letting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tenant represents a renter aggregate root. A tenant may carry rent terms
// (monthly rent, occupancy start, duration) before any formal lease agreement
// exists; the leasing context uses those terms to provision a lease lazily.
type Tenant struct {
	shared.BaseAggregateRoot
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	WorkPlace      string          `json:"work_place"`
	WorkAddress    string          `json:"work_address"`
	NextOfKinName  string          `json:"next_of_kin_name"`
	NextOfKinPhone string          `json:"next_of_kin_phone"`
	IDDocument     string          `json:"id_document"` // path to the uploaded identity document
	MonthlyRent    decimal.Decimal `json:"monthly_rent"`
	StartDate      *time.Time      `json:"start_date"`
	DurationMonths *int            `json:"duration_months"`
	PropertyID     *uuid.UUID      `json:"property_id"`
}

// NewTenant creates a new tenant after validating required fields
func NewTenant(firstName, lastName, email string) (*Tenant, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Last name cannot be empty")
	}
	if !isValidEmail(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	t := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		MonthlyRent:       decimal.Zero,
	}

	t.AddDomainEvent(NewTenantCreatedEvent(t))

	return t, nil
}

// SetRentTerms records the informal rent terms used for lazy lease provisioning
func (t *Tenant) SetRentTerms(monthlyRent decimal.Decimal, startDate *time.Time, durationMonths *int) error {
	if monthlyRent.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Monthly rent cannot be negative")
	}
	if durationMonths != nil && *durationMonths <= 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration must be a positive number of months")
	}

	t.MonthlyRent = monthlyRent
	t.StartDate = startDate
	t.DurationMonths = durationMonths
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetContactDetails updates the optional contact fields
func (t *Tenant) SetContactDetails(phone, address, workPlace, workAddress string) {
	t.Phone = phone
	t.Address = address
	t.WorkPlace = workPlace
	t.WorkAddress = workAddress
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetNextOfKin updates the next of kin details
func (t *Tenant) SetNextOfKin(name, phone string) {
	t.NextOfKinName = name
	t.NextOfKinPhone = phone
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetIDDocument records the stored path of the tenant's identity document
func (t *Tenant) SetIDDocument(path string) {
	t.IDDocument = path
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// AssignProperty links the tenant to a property
func (t *Tenant) AssignProperty(propertyID uuid.UUID) {
	t.PropertyID = &propertyID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// HasRentTerms reports whether the tenant carries enough informal terms to
// provision a lease: a positive monthly rent and an occupancy start date.
func (t *Tenant) HasRentTerms() bool {
	return t.MonthlyRent.GreaterThan(decimal.Zero) && t.StartDate != nil
}

// FullName returns the tenant's display name
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// isValidEmail performs a minimal structural check on an email address
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}
