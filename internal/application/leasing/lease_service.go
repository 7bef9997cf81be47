package leasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LeaseService resolves a tenant's effective lease state, provisioning a
// lease lazily when the tenant carries rent terms but no formal agreement.
type LeaseService struct {
	tenantRepo letting.TenantRepository
	leaseRepo  leasing.LeaseRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(
	tenantRepo letting.TenantRepository,
	leaseRepo leasing.LeaseRepository,
	logger *zap.Logger,
) *LeaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaseService{
		tenantRepo: tenantRepo,
		leaseRepo:  leaseRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// ResolveActiveLease returns the tenant's active lease together with its
// date-derived display status. When the tenant has rent terms but no active
// lease, one is provisioned on the fly. The returned lease is nil only when
// no lease exists and none could be provisioned (status DisplayNoLease).
func (s *LeaseService) ResolveActiveLease(ctx context.Context, tenantID uuid.UUID) (*leasing.LeaseAgreement, leasing.DisplayStatus, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, leasing.DisplayNoLease, err
	}

	lease, err := s.EnsureLease(ctx, tenant)
	if err != nil {
		return nil, leasing.DisplayNoLease, err
	}

	return lease, leasing.DisplayStatusAt(lease, s.now()), nil
}

// EnsureLease returns the tenant's active lease, provisioning one from the
// tenant's rent terms when no active lease exists. Returns nil without error
// when the tenant has no active lease and no terms to provision from.
//
// Provisioning is idempotent per tenant: the store rejects a second active
// lease, and a caller losing that race simply re-reads the winner's row.
func (s *LeaseService) EnsureLease(ctx context.Context, tenant *letting.Tenant) (*leasing.LeaseAgreement, error) {
	lease, err := s.leaseRepo.FindActiveByTenant(ctx, tenant.ID)
	if err == nil {
		return lease, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up active lease: %w", err)
	}

	if !tenant.HasRentTerms() {
		return nil, nil
	}

	provisioned, err := leasing.ProvisionFromTerms(tenant.ID, tenant.MonthlyRent, *tenant.StartDate, tenant.DurationMonths)
	if err != nil {
		return nil, err
	}

	if err := s.leaseRepo.CreateActive(ctx, provisioned); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			// A concurrent caller provisioned first; their lease wins.
			return s.leaseRepo.FindActiveByTenant(ctx, tenant.ID)
		}
		return nil, fmt.Errorf("failed to provision lease: %w", err)
	}

	s.logger.Info("provisioned lease from tenant rent terms",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("lease_id", provisioned.ID.String()),
		zap.Time("end_date", provisioned.EndDate),
	)
	provisioned.ClearDomainEvents()

	return provisioned, nil
}

// EnsureLeaseByID is EnsureLease addressed by tenant ID
func (s *LeaseService) EnsureLeaseByID(ctx context.Context, tenantID uuid.UUID) (*leasing.LeaseAgreement, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.EnsureLease(ctx, tenant)
}

// CreateLeaseInput carries the validated fields for an explicit lease creation
type CreateLeaseInput struct {
	TenantID        uuid.UUID
	RentAmount      decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
	Frequency       leasing.PaymentFrequency
	SecurityDeposit *decimal.Decimal
	AdditionalTerms string
}

// CreateLease explicitly creates an active lease agreement for a tenant.
// Fails with shared.ErrNotFound when the tenant does not exist and with
// shared.ErrConflict when the tenant already has an active lease.
func (s *LeaseService) CreateLease(ctx context.Context, input CreateLeaseInput) (*leasing.LeaseAgreement, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	if _, err := s.leaseRepo.FindActiveByTenant(ctx, tenant.ID); err == nil {
		return nil, shared.NewDomainError("CONFLICT", "An active lease already exists for this tenant")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up active lease: %w", err)
	}

	lease, err := leasing.NewLeaseAgreement(tenant.ID, input.RentAmount, input.StartDate, input.EndDate, input.Frequency)
	if err != nil {
		return nil, err
	}
	if input.SecurityDeposit != nil {
		if err := lease.SetSecurityDeposit(*input.SecurityDeposit); err != nil {
			return nil, err
		}
	}
	if input.AdditionalTerms != "" {
		lease.SetAdditionalTerms(input.AdditionalTerms)
	}

	if err := s.leaseRepo.CreateActive(ctx, lease); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return nil, shared.NewDomainError("CONFLICT", "An active lease already exists for this tenant")
		}
		return nil, fmt.Errorf("failed to create lease: %w", err)
	}

	s.logger.Info("created lease agreement",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("lease_id", lease.ID.String()),
		zap.String("rent_amount", lease.RentAmount.String()),
	)
	lease.ClearDomainEvents()

	return lease, nil
}

// GetLease fetches a lease by ID
func (s *LeaseService) GetLease(ctx context.Context, leaseID uuid.UUID) (*leasing.LeaseAgreement, error) {
	return s.leaseRepo.FindByID(ctx, leaseID)
}

// TerminateLease ends a lease early
func (s *LeaseService) TerminateLease(ctx context.Context, leaseID uuid.UUID) (*leasing.LeaseAgreement, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if err := lease.Terminate(); err != nil {
		return nil, err
	}
	if err := s.leaseRepo.Save(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}

	s.logger.Info("terminated lease", zap.String("lease_id", lease.ID.String()))

	return lease, nil
}
