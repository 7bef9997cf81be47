package letting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// PropertyType categorizes a rental property
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeDuplex    PropertyType = "duplex"
	PropertyTypeShop      PropertyType = "shop"
	PropertyTypeOffice    PropertyType = "office"
)

// IsValid checks if the property type is a known value. An empty type is
// allowed because the field is optional.
func (p PropertyType) IsValid() bool {
	switch p {
	case "", PropertyTypeApartment, PropertyTypeHouse, PropertyTypeDuplex, PropertyTypeShop, PropertyTypeOffice:
		return true
	}
	return false
}

// Property represents a rental unit owned by a landlord
type Property struct {
	shared.BaseAggregateRoot
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Type        PropertyType `json:"type"`
	Description string       `json:"description"`
	LandlordID  *uuid.UUID   `json:"landlord_id"`
}

// NewProperty creates a new property after validating required fields
func NewProperty(name, address string, propertyType PropertyType) (*Property, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ADDRESS", "Property address cannot be empty")
	}
	if !propertyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           strings.TrimSpace(address),
		Type:              propertyType,
	}, nil
}

// SetDescription sets the free-form description
func (p *Property) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AssignLandlord links the property to its owning landlord
func (p *Property) AssignLandlord(landlordID uuid.UUID) {
	p.LandlordID = &landlordID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
