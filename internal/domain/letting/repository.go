package letting

import (
	"context"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// TenantRepository defines persistence operations for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByEmail(ctx context.Context, email string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]Tenant, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PropertyRepository defines persistence operations for properties
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, error)
	FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Property, error)
	Count(ctx context.Context) (int64, error)
	CountOccupied(ctx context.Context) (int64, error)
	TenantCount(ctx context.Context, propertyID uuid.UUID) (int64, error)
	Save(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LandlordRepository defines persistence operations for landlords
type LandlordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Landlord, error)
	FindByEmail(ctx context.Context, email string) (*Landlord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Landlord, error)
	Save(ctx context.Context, landlord *Landlord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
