package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/shopspring/decimal"
)

// LeaseAgreementModel is the persistence model for the LeaseAgreement domain entity.
// The partial unique index enforces at most one active lease per tenant at the
// database level; concurrent provisioning races surface as unique violations.
type LeaseAgreementModel struct {
	AggregateModel
	TenantID         uuid.UUID                `gorm:"type:uuid;not null;index;uniqueIndex:idx_leases_active_tenant,where:status = 'active'"`
	RentAmount       decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PaymentFrequency leasing.PaymentFrequency `gorm:"type:varchar(20);not null;default:'monthly'"`
	StartDate        time.Time                `gorm:"not null"`
	EndDate          time.Time                `gorm:"not null;index"`
	Status           leasing.LeaseStatus      `gorm:"type:varchar(20);not null;default:'active';index"`
	SecurityDeposit  *decimal.Decimal         `gorm:"type:decimal(18,4)"`
	AdditionalTerms  string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LeaseAgreementModel) TableName() string {
	return "lease_agreements"
}

// ToDomain converts the persistence model to a domain LeaseAgreement entity.
func (m *LeaseAgreementModel) ToDomain() *leasing.LeaseAgreement {
	l := &leasing.LeaseAgreement{
		TenantID:         m.TenantID,
		RentAmount:       m.RentAmount,
		PaymentFrequency: m.PaymentFrequency,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Status:           m.Status,
		SecurityDeposit:  m.SecurityDeposit,
		AdditionalTerms:  m.AdditionalTerms,
	}
	m.PopulateAggregateRoot(&l.BaseAggregateRoot)
	return l
}

// FromDomain populates the persistence model from a domain LeaseAgreement entity.
func (m *LeaseAgreementModel) FromDomain(l *leasing.LeaseAgreement) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.TenantID = l.TenantID
	m.RentAmount = l.RentAmount
	m.PaymentFrequency = l.PaymentFrequency
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.Status = l.Status
	m.SecurityDeposit = l.SecurityDeposit
	m.AdditionalTerms = l.AdditionalTerms
}

// LeaseAgreementModelFromDomain creates a new persistence model from a domain LeaseAgreement entity.
func LeaseAgreementModelFromDomain(l *leasing.LeaseAgreement) *LeaseAgreementModel {
	m := &LeaseAgreementModel{}
	m.FromDomain(l)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
// Payments are append-only; the receipt sequence is assigned on insert and
// never reused.
type PaymentModel struct {
	BaseModel
	LeaseAgreementID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	PaymentDate      time.Time           `gorm:"not null;index"`
	Type             leasing.PaymentType `gorm:"type:varchar(20);not null;default:'cash'"`
	Reference        string              `gorm:"type:varchar(200)"`
	ReceiptSeq       int64               `gorm:"not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *leasing.Payment {
	return &leasing.Payment{
		BaseEntity:       m.BaseModel.ToDomain(),
		LeaseAgreementID: m.LeaseAgreementID,
		Amount:           m.Amount,
		PaymentDate:      m.PaymentDate,
		Type:             m.Type,
		Reference:        m.Reference,
		ReceiptSeq:       m.ReceiptSeq,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *leasing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.LeaseAgreementID = p.LeaseAgreementID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Type = p.Type
	m.Reference = p.Reference
	m.ReceiptSeq = p.ReceiptSeq
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *leasing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
