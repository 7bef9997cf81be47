package letting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PropertyService manages rental property records
type PropertyService struct {
	propertyRepo letting.PropertyRepository
	landlordRepo letting.LandlordRepository
	tenantRepo   letting.TenantRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo letting.PropertyRepository,
	landlordRepo letting.LandlordRepository,
	tenantRepo letting.TenantRepository,
	logger *zap.Logger,
) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{
		propertyRepo: propertyRepo,
		landlordRepo: landlordRepo,
		tenantRepo:   tenantRepo,
		logger:       logger,
	}
}

// CreatePropertyInput carries the fields for a new property record
type CreatePropertyInput struct {
	Name        string
	Address     string
	Type        letting.PropertyType
	Description string
	LandlordID  *uuid.UUID
}

// CreateProperty registers a new rental property
func (s *PropertyService) CreateProperty(ctx context.Context, input CreatePropertyInput) (*letting.Property, error) {
	property, err := letting.NewProperty(input.Name, input.Address, input.Type)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		property.SetDescription(input.Description)
	}
	if input.LandlordID != nil {
		if _, err := s.landlordRepo.FindByID(ctx, *input.LandlordID); err != nil {
			return nil, err
		}
		property.AssignLandlord(*input.LandlordID)
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}

	s.logger.Info("created property",
		zap.String("property_id", property.ID.String()),
		zap.String("name", property.Name),
	)

	return property, nil
}

// GetProperty fetches a property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*letting.Property, error) {
	return s.propertyRepo.FindByID(ctx, id)
}

// PropertyWithOccupancy pairs a property with its current tenant count
type PropertyWithOccupancy struct {
	Property    letting.Property `json:"property"`
	TenantCount int64            `json:"tenant_count"`
	Occupied    bool             `json:"occupied"`
}

// ListProperties returns a page of properties, each annotated with its
// tenant count. A property is occupied when at least one tenant is assigned.
func (s *PropertyService) ListProperties(ctx context.Context, filter shared.Filter) ([]PropertyWithOccupancy, error) {
	properties, err := s.propertyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]PropertyWithOccupancy, 0, len(properties))
	for i := range properties {
		count, err := s.propertyRepo.TenantCount(ctx, properties[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count tenants for property %s: %w", properties[i].ID, err)
		}
		result = append(result, PropertyWithOccupancy{
			Property:    properties[i],
			TenantCount: count,
			Occupied:    count > 0,
		})
	}
	return result, nil
}

// ListPropertyTenants returns the tenants assigned to a property
func (s *PropertyService) ListPropertyTenants(ctx context.Context, propertyID uuid.UUID) ([]letting.Tenant, error) {
	if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.tenantRepo.FindByProperty(ctx, propertyID)
}

// DeleteProperty removes a property. Properties with assigned tenants
// cannot be deleted.
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if _, err := s.propertyRepo.FindByID(ctx, id); err != nil {
		return err
	}
	occupants, err := s.propertyRepo.TenantCount(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count property tenants: %w", err)
	}
	if occupants > 0 {
		return shared.NewDomainError("INVALID_STATE", "Property still has assigned tenants")
	}
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	s.logger.Info("deleted property", zap.String("property_id", id.String()))
	return nil
}
