package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	AggregateModel
	FirstName      string          `gorm:"type:varchar(100);not null"`
	LastName       string          `gorm:"type:varchar(100);not null"`
	Email          string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone          string          `gorm:"type:varchar(50)"`
	Address        string          `gorm:"type:text"`
	WorkPlace      string          `gorm:"type:varchar(200)"`
	WorkAddress    string          `gorm:"type:text"`
	NextOfKinName  string          `gorm:"type:varchar(200)"`
	NextOfKinPhone string          `gorm:"type:varchar(50)"`
	IDDocument     string          `gorm:"type:text"`
	MonthlyRent    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StartDate      *time.Time
	DurationMonths *int
	PropertyID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *letting.Tenant {
	t := &letting.Tenant{
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		WorkPlace:      m.WorkPlace,
		WorkAddress:    m.WorkAddress,
		NextOfKinName:  m.NextOfKinName,
		NextOfKinPhone: m.NextOfKinPhone,
		IDDocument:     m.IDDocument,
		MonthlyRent:    m.MonthlyRent,
		StartDate:      m.StartDate,
		DurationMonths: m.DurationMonths,
		PropertyID:     m.PropertyID,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *letting.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.FirstName = t.FirstName
	m.LastName = t.LastName
	m.Email = t.Email
	m.Phone = t.Phone
	m.Address = t.Address
	m.WorkPlace = t.WorkPlace
	m.WorkAddress = t.WorkAddress
	m.NextOfKinName = t.NextOfKinName
	m.NextOfKinPhone = t.NextOfKinPhone
	m.IDDocument = t.IDDocument
	m.MonthlyRent = t.MonthlyRent
	m.StartDate = t.StartDate
	m.DurationMonths = t.DurationMonths
	m.PropertyID = t.PropertyID
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *letting.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// PropertyModel is the persistence model for the Property domain entity.
type PropertyModel struct {
	AggregateModel
	Name        string               `gorm:"type:varchar(200);not null"`
	Address     string               `gorm:"type:text;not null"`
	Type        letting.PropertyType `gorm:"type:varchar(20)"`
	Description string               `gorm:"type:text"`
	LandlordID  *uuid.UUID           `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *letting.Property {
	p := &letting.Property{
		Name:        m.Name,
		Address:     m.Address,
		Type:        m.Type,
		Description: m.Description,
		LandlordID:  m.LandlordID,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *letting.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.Type = p.Type
	m.Description = p.Description
	m.LandlordID = p.LandlordID
}

// PropertyModelFromDomain creates a new persistence model from a domain Property entity.
func PropertyModelFromDomain(p *letting.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// LandlordModel is the persistence model for the Landlord domain entity.
type LandlordModel struct {
	AggregateModel
	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone     string `gorm:"type:varchar(50)"`
	Address   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LandlordModel) TableName() string {
	return "landlords"
}

// ToDomain converts the persistence model to a domain Landlord entity.
func (m *LandlordModel) ToDomain() *letting.Landlord {
	l := &letting.Landlord{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
	}
	m.PopulateAggregateRoot(&l.BaseAggregateRoot)
	return l
}

// FromDomain populates the persistence model from a domain Landlord entity.
func (m *LandlordModel) FromDomain(l *letting.Landlord) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.FirstName = l.FirstName
	m.LastName = l.LastName
	m.Email = l.Email
	m.Phone = l.Phone
	m.Address = l.Address
}

// LandlordModelFromDomain creates a new persistence model from a domain Landlord entity.
func LandlordModelFromDomain(l *letting.Landlord) *LandlordModel {
	m := &LandlordModel{}
	m.FromDomain(l)
	return m
}
