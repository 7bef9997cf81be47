package letting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPropertyService(propertyRepo *MockPropertyRepository, landlordRepo *MockLandlordRepository, tenantRepo *MockTenantRepository) *PropertyService {
	return NewPropertyService(propertyRepo, landlordRepo, tenantRepo, nil)
}

func mustProperty(t *testing.T, name string) *letting.Property {
	t.Helper()
	property, err := letting.NewProperty(name, "12 Marina Road", letting.PropertyTypeApartment)
	require.NoError(t, err)
	return property
}

func TestPropertyService_CreateProperty_Success(t *testing.T) {
	mockPropertyRepo := new(MockPropertyRepository)
	mockLandlordRepo := new(MockLandlordRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := newPropertyService(mockPropertyRepo, mockLandlordRepo, mockTenantRepo)

	ctx := context.Background()
	mockPropertyRepo.On("Save", ctx, mock.AnythingOfType("*letting.Property")).Return(nil)

	result, err := service.CreateProperty(ctx, CreatePropertyInput{
		Name:    "Marina Heights",
		Address: "12 Marina Road",
		Type:    letting.PropertyTypeApartment,
	})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Marina Heights", result.Name)
	mockPropertyRepo.AssertExpectations(t)
}

func TestPropertyService_CreateProperty_UnknownLandlord(t *testing.T) {
	mockPropertyRepo := new(MockPropertyRepository)
	mockLandlordRepo := new(MockLandlordRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := newPropertyService(mockPropertyRepo, mockLandlordRepo, mockTenantRepo)

	ctx := context.Background()
	landlordID := uuid.New()
	mockLandlordRepo.On("FindByID", ctx, landlordID).Return(nil, shared.ErrNotFound)

	result, err := service.CreateProperty(ctx, CreatePropertyInput{
		Name:       "Marina Heights",
		Address:    "12 Marina Road",
		Type:       letting.PropertyTypeApartment,
		LandlordID: &landlordID,
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, result)
	mockPropertyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPropertyService_ListProperties_AnnotatesOccupancy(t *testing.T) {
	mockPropertyRepo := new(MockPropertyRepository)
	mockLandlordRepo := new(MockLandlordRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := newPropertyService(mockPropertyRepo, mockLandlordRepo, mockTenantRepo)

	ctx := context.Background()
	occupied := mustProperty(t, "Marina Heights")
	vacant := mustProperty(t, "Palm Court")
	filter := shared.DefaultFilter()

	mockPropertyRepo.On("FindAll", ctx, filter).Return([]letting.Property{*occupied, *vacant}, nil)
	mockPropertyRepo.On("TenantCount", ctx, occupied.ID).Return(int64(3), nil)
	mockPropertyRepo.On("TenantCount", ctx, vacant.ID).Return(int64(0), nil)

	result, err := service.ListProperties(ctx, filter)

	assert.NoError(t, err)
	require.Len(t, result, 2)
	assert.True(t, result[0].Occupied)
	assert.Equal(t, int64(3), result[0].TenantCount)
	assert.False(t, result[1].Occupied)
	mockPropertyRepo.AssertExpectations(t)
}

func TestPropertyService_DeleteProperty_RefusesWhileOccupied(t *testing.T) {
	mockPropertyRepo := new(MockPropertyRepository)
	mockLandlordRepo := new(MockLandlordRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := newPropertyService(mockPropertyRepo, mockLandlordRepo, mockTenantRepo)

	ctx := context.Background()
	property := mustProperty(t, "Marina Heights")

	mockPropertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	mockPropertyRepo.On("TenantCount", ctx, property.ID).Return(int64(1), nil)

	err := service.DeleteProperty(ctx, property.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockPropertyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPropertyService_DeleteProperty_Success(t *testing.T) {
	mockPropertyRepo := new(MockPropertyRepository)
	mockLandlordRepo := new(MockLandlordRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := newPropertyService(mockPropertyRepo, mockLandlordRepo, mockTenantRepo)

	ctx := context.Background()
	property := mustProperty(t, "Palm Court")

	mockPropertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	mockPropertyRepo.On("TenantCount", ctx, property.ID).Return(int64(0), nil)
	mockPropertyRepo.On("Delete", ctx, property.ID).Return(nil)

	err := service.DeleteProperty(ctx, property.ID)

	assert.NoError(t, err)
	mockPropertyRepo.AssertExpectations(t)
}
