package letting

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

// TenantService manages tenant records. Listing is read-only: display
// statuses are derived from existing leases without provisioning anything.
type TenantService struct {
	tenantRepo   letting.TenantRepository
	propertyRepo letting.PropertyRepository
	leaseRepo    leasing.LeaseRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo letting.TenantRepository,
	propertyRepo letting.PropertyRepository,
	leaseRepo leasing.LeaseRepository,
	logger *zap.Logger,
) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		leaseRepo:    leaseRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateTenantInput carries the fields for a new tenant record
type CreateTenantInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Address        string
	WorkPlace      string
	WorkAddress    string
	NextOfKinName  string
	NextOfKinPhone string
	IDDocument     string
	MonthlyRent    *decimal.Decimal
	StartDate      *time.Time
	DurationMonths *int
	PropertyID     *uuid.UUID
}

// CreateTenant registers a new tenant. The email must be unique across all
// tenants; an existing record with the same email rejects the creation.
func (s *TenantService) CreateTenant(ctx context.Context, input CreateTenantInput) (*letting.Tenant, error) {
	tenant, err := letting.NewTenant(input.FirstName, input.LastName, input.Email)
	if err != nil {
		return nil, err
	}

	if _, err := s.tenantRepo.FindByEmail(ctx, tenant.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tenant with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tenant email: %w", err)
	}

	tenant.SetContactDetails(input.Phone, input.Address, input.WorkPlace, input.WorkAddress)
	tenant.SetNextOfKin(input.NextOfKinName, input.NextOfKinPhone)
	if input.IDDocument != "" {
		tenant.SetIDDocument(input.IDDocument)
	}
	if input.MonthlyRent != nil {
		if err := tenant.SetRentTerms(*input.MonthlyRent, input.StartDate, input.DurationMonths); err != nil {
			return nil, err
		}
	}
	if input.PropertyID != nil {
		if _, err := s.propertyRepo.FindByID(ctx, *input.PropertyID); err != nil {
			return nil, err
		}
		tenant.AssignProperty(*input.PropertyID)
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.logger.Info("created tenant",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("email", tenant.Email),
	)
	tenant.ClearDomainEvents()

	return tenant, nil
}

// TenantWithStatus pairs a tenant with the display status of their lease
type TenantWithStatus struct {
	Tenant        letting.Tenant        `json:"tenant"`
	LeaseStatus   leasing.DisplayStatus `json:"lease_status"`
	ActiveLeaseID *uuid.UUID            `json:"active_lease_id,omitempty"`
}

// ListTenants returns a page of tenants, each annotated with the display
// status of their current lease. The listing never creates leases; tenants
// with rent terms but no lease simply show as having none until a resolving
// read provisions one.
func (s *TenantService) ListTenants(ctx context.Context, filter shared.Filter) ([]TenantWithStatus, error) {
	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]TenantWithStatus, 0, len(tenants))
	for i := range tenants {
		entry := TenantWithStatus{Tenant: tenants[i]}
		lease, err := s.leaseRepo.FindActiveByTenant(ctx, tenants[i].ID)
		switch {
		case err == nil:
			entry.LeaseStatus = leasing.DisplayStatusAt(lease, now)
			entry.ActiveLeaseID = &lease.ID
		case errors.Is(err, shared.ErrNotFound):
			entry.LeaseStatus = leasing.DisplayNoLease
		default:
			return nil, fmt.Errorf("failed to look up lease for tenant %s: %w", tenants[i].ID, err)
		}
		result = append(result, entry)
	}

	return result, nil
}

// GetTenant fetches a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*letting.Tenant, error) {
	return s.tenantRepo.FindByID(ctx, id)
}

// UpdateTenantInput carries the updatable tenant fields. Nil pointers leave
// the corresponding field unchanged.
type UpdateTenantInput struct {
	Phone          *string
	Address        *string
	WorkPlace      *string
	WorkAddress    *string
	NextOfKinName  *string
	NextOfKinPhone *string
	IDDocument     *string
	MonthlyRent    *decimal.Decimal
	StartDate      *time.Time
	DurationMonths *int
	PropertyID     *uuid.UUID
}

// UpdateTenant applies partial updates to a tenant record
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*letting.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	phone, address := tenant.Phone, tenant.Address
	workPlace, workAddress := tenant.WorkPlace, tenant.WorkAddress
	if input.Phone != nil {
		phone = *input.Phone
	}
	if input.Address != nil {
		address = *input.Address
	}
	if input.WorkPlace != nil {
		workPlace = *input.WorkPlace
	}
	if input.WorkAddress != nil {
		workAddress = *input.WorkAddress
	}
	tenant.SetContactDetails(phone, address, workPlace, workAddress)

	kinName, kinPhone := tenant.NextOfKinName, tenant.NextOfKinPhone
	if input.NextOfKinName != nil {
		kinName = *input.NextOfKinName
	}
	if input.NextOfKinPhone != nil {
		kinPhone = *input.NextOfKinPhone
	}
	tenant.SetNextOfKin(kinName, kinPhone)

	if input.IDDocument != nil {
		tenant.SetIDDocument(*input.IDDocument)
	}
	if input.MonthlyRent != nil {
		startDate := tenant.StartDate
		if input.StartDate != nil {
			startDate = input.StartDate
		}
		duration := tenant.DurationMonths
		if input.DurationMonths != nil {
			duration = input.DurationMonths
		}
		if err := tenant.SetRentTerms(*input.MonthlyRent, startDate, duration); err != nil {
			return nil, err
		}
	}
	if input.PropertyID != nil {
		if _, err := s.propertyRepo.FindByID(ctx, *input.PropertyID); err != nil {
			return nil, err
		}
		tenant.AssignProperty(*input.PropertyID)
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	return tenant, nil
}

// DeleteTenant removes a tenant record
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tenantRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	s.logger.Info("deleted tenant", zap.String("tenant_id", id.String()))
	return nil
}
