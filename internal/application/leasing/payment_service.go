package leasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/notification"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService maintains the append-only payment ledger for lease
// agreements and derives balances and receipts from it.
type PaymentService struct {
	paymentRepo  leasing.PaymentRepository
	leaseRepo    leasing.LeaseRepository
	tenantRepo   letting.TenantRepository
	propertyRepo letting.PropertyRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo leasing.PaymentRepository,
	leaseRepo leasing.LeaseRepository,
	tenantRepo letting.TenantRepository,
	propertyRepo letting.PropertyRepository,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo:  paymentRepo,
		leaseRepo:    leaseRepo,
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordPaymentInput carries the fields for a new ledger entry
type RecordPaymentInput struct {
	LeaseID   uuid.UUID
	Amount    decimal.Decimal
	Type      leasing.PaymentType
	Reference string
}

// RecordPayment appends a payment to the lease's ledger. When the cumulative
// total reaches the lease's rent amount the lease is marked paid and a
// completion notification is stored, all in the same transaction as the
// payment row. The ledger total and the paid transition are evaluated inside
// that transaction, so concurrent payments crossing the threshold together
// settle the lease exactly once. Further payments are still recorded against
// an already paid lease.
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*leasing.Payment, error) {
	lease, err := s.leaseRepo.FindByID(ctx, input.LeaseID)
	if err != nil {
		return nil, err
	}

	payment, err := leasing.NewPayment(lease.ID, input.Amount, input.Type, input.Reference)
	if err != nil {
		return nil, err
	}

	// Prepared up front; the repository only stores it when this payment
	// actually settles the lease.
	note, err := s.completionNotification(ctx, lease)
	if err != nil {
		return nil, err
	}

	leasePaid, err := s.paymentRepo.RecordAtomic(ctx, payment, note)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info("recorded payment",
		zap.String("lease_id", lease.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.Bool("lease_paid", leasePaid),
	)

	return payment, nil
}

func (s *PaymentService) completionNotification(ctx context.Context, lease *leasing.LeaseAgreement) (*notification.Notification, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant for paid lease: %w", err)
	}
	message := fmt.Sprintf("Full payment received for %s", tenant.FullName())
	return notification.New(notification.TypePaymentCompleted, message, &tenant.ID)
}

// OutstandingBalance returns the lease's rent amount minus the sum of its
// payments, clamped at zero when overpaid.
func (s *PaymentService) OutstandingBalance(ctx context.Context, leaseID uuid.UUID) (decimal.Decimal, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := s.paymentRepo.SumByLease(ctx, leaseID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total lease payments: %w", err)
	}
	return lease.OutstandingAgainst(paid), nil
}

// GenerateReceipt builds the printable receipt view for a payment, resolving
// the tenant and property names through the owning lease.
func (s *PaymentService) GenerateReceipt(ctx context.Context, paymentID uuid.UUID) (*leasing.Receipt, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	lease, err := s.leaseRepo.FindByID(ctx, payment.LeaseAgreementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lease for receipt: %w", err)
	}
	tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant for receipt: %w", err)
	}

	propertyName := "Not Assigned"
	if tenant.PropertyID != nil {
		property, err := s.propertyRepo.FindByID(ctx, *tenant.PropertyID)
		if err == nil {
			propertyName = property.Name
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to load property for receipt: %w", err)
		}
	}

	return &leasing.Receipt{
		ReceiptNumber: payment.ReceiptNumber(),
		PaymentDate:   payment.PaymentDate,
		TenantName:    tenant.FullName(),
		PropertyName:  propertyName,
		Amount:        payment.Amount,
		PaymentType:   payment.Type,
		Reference:     payment.Reference,
	}, nil
}

// ListPayments returns a page of ledger entries, newest first
func (s *PaymentService) ListPayments(ctx context.Context, filter shared.Filter) ([]leasing.Payment, error) {
	return s.paymentRepo.FindAll(ctx, filter)
}

// ListLeasePayments returns every ledger entry for a lease
func (s *PaymentService) ListLeasePayments(ctx context.Context, leaseID uuid.UUID) ([]leasing.Payment, error) {
	if _, err := s.leaseRepo.FindByID(ctx, leaseID); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByLease(ctx, leaseID)
}
