package leasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType represents how a payment was settled. Payments are manually
// entered records of already-settled cash or transfers, not processed
// transactions.
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeTransfer PaymentType = "bank_transfer"
	PaymentTypeCheque   PaymentType = "cheque"
	PaymentTypeCard     PaymentType = "card"
)

// IsValid checks if the payment type is a known value
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeTransfer, PaymentTypeCheque, PaymentTypeCard:
		return true
	}
	return false
}

// Payment is an immutable record of a settled payment against a lease. There
// is no update or delete path; corrections are new entries.
type Payment struct {
	shared.BaseEntity
	LeaseAgreementID uuid.UUID       `json:"lease_agreement_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentDate      time.Time       `json:"payment_date"`
	Type             PaymentType     `json:"payment_type"`
	Reference        string          `json:"reference"`
	// ReceiptSeq is a monotonically increasing sequence assigned by the store
	// on insert, used to format human-readable receipt numbers.
	ReceiptSeq int64 `json:"receipt_seq"`
}

// NewPayment creates a new payment record after validating its fields
func NewPayment(leaseID uuid.UUID, amount decimal.Decimal, paymentType PaymentType, reference string) (*Payment, error) {
	if leaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease agreement ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", fmt.Sprintf("Unknown payment type %q", paymentType))
	}

	return &Payment{
		BaseEntity:       shared.NewBaseEntity(),
		LeaseAgreementID: leaseID,
		Amount:           amount,
		PaymentDate:      time.Now(),
		Type:             paymentType,
		Reference:        reference,
	}, nil
}

// ReceiptNumber formats the deterministic receipt number for this payment
func (p *Payment) ReceiptNumber() string {
	return fmt.Sprintf("RCP-%06d", p.ReceiptSeq)
}

// Receipt is the rendered view of a payment, with names resolved through the
// owning lease and tenant chain.
type Receipt struct {
	ReceiptNumber string          `json:"receipt_number"`
	PaymentDate   time.Time       `json:"payment_date"`
	TenantName    string          `json:"tenant_name"`
	PropertyName  string          `json:"property_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentType   PaymentType     `json:"payment_type"`
	Reference     string          `json:"reference"`
}
