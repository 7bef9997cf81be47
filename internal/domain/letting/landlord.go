package letting

import (
	"strings"
	"time"

	"github.com/rently/backend/internal/domain/shared"
)

// Landlord represents a property owner
type Landlord struct {
	shared.BaseAggregateRoot
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// NewLandlord creates a new landlord after validating required fields
func NewLandlord(firstName, lastName, email string) (*Landlord, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_LANDLORD_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_LANDLORD_NAME", "Last name cannot be empty")
	}
	if !isValidEmail(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	return &Landlord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
	}, nil
}

// SetContactDetails updates the optional contact fields
func (l *Landlord) SetContactDetails(phone, address string) {
	l.Phone = phone
	l.Address = address
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// FullName returns the landlord's display name
func (l *Landlord) FullName() string {
	return l.FirstName + " " + l.LastName
}
