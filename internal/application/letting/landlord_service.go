package letting

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LandlordService manages landlord records
type LandlordService struct {
	landlordRepo letting.LandlordRepository
	propertyRepo letting.PropertyRepository
	logger       *zap.Logger
}

// NewLandlordService creates a new LandlordService
func NewLandlordService(
	landlordRepo letting.LandlordRepository,
	propertyRepo letting.PropertyRepository,
	logger *zap.Logger,
) *LandlordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LandlordService{
		landlordRepo: landlordRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// CreateLandlordInput carries the fields for a new landlord record
type CreateLandlordInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// CreateLandlord registers a new landlord. Emails are unique across landlords.
func (s *LandlordService) CreateLandlord(ctx context.Context, input CreateLandlordInput) (*letting.Landlord, error) {
	landlord, err := letting.NewLandlord(input.FirstName, input.LastName, input.Email)
	if err != nil {
		return nil, err
	}

	if _, err := s.landlordRepo.FindByEmail(ctx, landlord.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A landlord with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check landlord email: %w", err)
	}

	landlord.SetContactDetails(input.Phone, input.Address)

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		return nil, fmt.Errorf("failed to save landlord: %w", err)
	}

	s.logger.Info("created landlord",
		zap.String("landlord_id", landlord.ID.String()),
		zap.String("email", landlord.Email),
	)

	return landlord, nil
}

// GetLandlord fetches a landlord by ID
func (s *LandlordService) GetLandlord(ctx context.Context, id uuid.UUID) (*letting.Landlord, error) {
	return s.landlordRepo.FindByID(ctx, id)
}

// LandlordWithHoldings pairs a landlord with the size of their portfolio
type LandlordWithHoldings struct {
	Landlord      letting.Landlord `json:"landlord"`
	PropertyCount int              `json:"property_count"`
}

// ListLandlords returns a page of landlords annotated with how many
// properties each one owns
func (s *LandlordService) ListLandlords(ctx context.Context, filter shared.Filter) ([]LandlordWithHoldings, error) {
	landlords, err := s.landlordRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]LandlordWithHoldings, 0, len(landlords))
	for i := range landlords {
		properties, err := s.propertyRepo.FindByLandlord(ctx, landlords[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load properties for landlord %s: %w", landlords[i].ID, err)
		}
		result = append(result, LandlordWithHoldings{
			Landlord:      landlords[i],
			PropertyCount: len(properties),
		})
	}
	return result, nil
}

// ListLandlordProperties returns the properties owned by a landlord
func (s *LandlordService) ListLandlordProperties(ctx context.Context, landlordID uuid.UUID) ([]letting.Property, error) {
	if _, err := s.landlordRepo.FindByID(ctx, landlordID); err != nil {
		return nil, err
	}
	return s.propertyRepo.FindByLandlord(ctx, landlordID)
}

// DeleteLandlord removes a landlord record
func (s *LandlordService) DeleteLandlord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.landlordRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.landlordRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete landlord: %w", err)
	}
	s.logger.Info("deleted landlord", zap.String("landlord_id", id.String()))
	return nil
}
