package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

const unassignedPropertyName = "Not Assigned"

// DocumentService produces printable PDF documents (tenancy agreements,
// receipts, notices) by resolving the business data and delegating to the
// template engine and PDF renderer.
type DocumentService struct {
	tenantRepo   letting.TenantRepository
	propertyRepo letting.PropertyRepository
	landlordRepo letting.LandlordRepository
	leaseRepo    leasing.LeaseRepository
	paymentRepo  leasing.PaymentRepository
	engine       *printing.TemplateEngine
	renderer     printing.PDFRenderer
	logger       *zap.Logger
	now          func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	tenantRepo letting.TenantRepository,
	propertyRepo letting.PropertyRepository,
	landlordRepo letting.LandlordRepository,
	leaseRepo leasing.LeaseRepository,
	paymentRepo leasing.PaymentRepository,
	engine *printing.TemplateEngine,
	renderer printing.PDFRenderer,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		landlordRepo: landlordRepo,
		leaseRepo:    leaseRepo,
		paymentRepo:  paymentRepo,
		engine:       engine,
		renderer:     renderer,
		logger:       logger,
		now:          time.Now,
	}
}

// TenancyAgreement renders the tenancy agreement PDF for a lease
func (s *DocumentService) TenancyAgreement(ctx context.Context, leaseID uuid.UUID) ([]byte, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}

	data := printing.TenancyAgreementData{
		TenantName:       tenant.FullName(),
		TenantAddress:    tenant.Address,
		PropertyName:     unassignedPropertyName,
		RentAmount:       lease.RentAmount,
		PaymentFrequency: string(lease.PaymentFrequency),
		StartDate:        lease.StartDate,
		EndDate:          lease.EndDate,
		SecurityDeposit:  lease.SecurityDeposit,
		AdditionalTerms:  lease.AdditionalTerms,
		IssuedOn:         s.now(),
	}

	if property := s.lookupProperty(ctx, tenant); property != nil {
		data.PropertyName = property.Name
		data.PropertyAddress = property.Address
		if property.LandlordID != nil {
			if landlord, err := s.landlordRepo.FindByID(ctx, *property.LandlordID); err == nil {
				data.LandlordName = landlord.FullName()
			}
		}
	}

	return s.render(ctx, printing.DocTypeTenancyAgreement, data, "Tenancy Agreement")
}

// PaymentReceipt renders the receipt PDF for a recorded payment
func (s *DocumentService) PaymentReceipt(ctx context.Context, paymentID uuid.UUID) ([]byte, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	lease, err := s.leaseRepo.FindByID(ctx, payment.LeaseAgreementID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}

	data := printing.PaymentReceiptData{
		ReceiptNumber: payment.ReceiptNumber(),
		TenantName:    tenant.FullName(),
		PropertyName:  unassignedPropertyName,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate,
		PaymentType:   string(payment.Type),
		Reference:     payment.Reference,
		IssuedOn:      s.now(),
	}
	if property := s.lookupProperty(ctx, tenant); property != nil {
		data.PropertyName = property.Name
	}

	return s.render(ctx, printing.DocTypePaymentReceipt, data, "Payment Receipt")
}

// PaymentNotice renders an overdue payment notice for a lease. The amount
// due is the outstanding balance at the time of generation.
func (s *DocumentService) PaymentNotice(ctx context.Context, leaseID uuid.UUID, dueDate time.Time) ([]byte, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.paymentRepo.SumByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	outstanding := lease.OutstandingAgainst(totalPaid)
	if outstanding.IsZero() {
		return nil, shared.NewDomainError("NOTHING_OUTSTANDING", "The lease has no outstanding balance")
	}

	data := printing.PaymentNoticeData{
		TenantName:   tenant.FullName(),
		PropertyName: unassignedPropertyName,
		AmountDue:    outstanding,
		DueDate:      dueDate,
		IssuedOn:     s.now(),
	}
	if property := s.lookupProperty(ctx, tenant); property != nil {
		data.PropertyName = property.Name
	}

	return s.render(ctx, printing.DocTypePaymentNotice, data, "Payment Notice")
}

// QuitNotice renders a notice to quit for a tenant
func (s *DocumentService) QuitNotice(ctx context.Context, tenantID uuid.UUID, reason string) ([]byte, error) {
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "A reason for the notice is required")
	}
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	data := printing.QuitNoticeData{
		TenantName:   tenant.FullName(),
		PropertyName: unassignedPropertyName,
		Reason:       reason,
		IssuedOn:     s.now(),
	}
	if property := s.lookupProperty(ctx, tenant); property != nil {
		data.PropertyName = property.Name
		data.PropertyAddress = property.Address
	}

	return s.render(ctx, printing.DocTypeQuitNotice, data, "Notice to Quit")
}

// lookupProperty resolves the tenant's assigned property, nil when the
// tenant is unassigned or the property row is gone.
func (s *DocumentService) lookupProperty(ctx context.Context, tenant *letting.Tenant) *letting.Property {
	if tenant.PropertyID == nil {
		return nil
	}
	property, err := s.propertyRepo.FindByID(ctx, *tenant.PropertyID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("failed to resolve property for document",
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(err))
		}
		return nil
	}
	return property
}

func (s *DocumentService) render(ctx context.Context, docType printing.DocType, data interface{}, title string) ([]byte, error) {
	html, err := s.engine.RenderDocument(docType, data)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{HTML: html, Title: title})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document rendered",
		zap.String("doc_type", string(docType)),
		zap.Duration("duration", result.RenderDuration))
	return result.PDFData, nil
}
