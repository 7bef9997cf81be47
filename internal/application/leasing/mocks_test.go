package leasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/notification"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTenantRepository is a mock implementation of letting.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*letting.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByEmail(ctx context.Context, email string) (*letting.Tenant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]letting.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]letting.Tenant, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *letting.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPropertyRepository is a mock implementation of letting.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*letting.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]letting.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]letting.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]letting.Property, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]letting.Property), args.Error(1)
}

func (m *MockPropertyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) CountOccupied(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) TenantCount(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *letting.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLeaseRepository is a mock implementation of leasing.LeaseRepository
type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.LeaseAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*leasing.LeaseAgreement, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) CreateActive(ctx context.Context, lease *leasing.LeaseAgreement) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Save(ctx context.Context, lease *leasing.LeaseAgreement) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindRecent(ctx context.Context, limit int) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindExpiring(ctx context.Context, deadline time.Time) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindByStatus(ctx context.Context, status leasing.LeaseStatus) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) CountByStatus(ctx context.Context, status leasing.LeaseStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of leasing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByLease(ctx context.Context, leaseID uuid.UUID) ([]leasing.Payment, error) {
	args := m.Called(ctx, leaseID)
	return args.Get(0).([]leasing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leasing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindRecent(ctx context.Context, limit int) ([]leasing.Payment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]leasing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumByLease(ctx context.Context, leaseID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, leaseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) StatsInRange(ctx context.Context, start, end *time.Time) (leasing.PaymentStats, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(leasing.PaymentStats), args.Error(1)
}

func (m *MockPaymentRepository) RecordAtomic(ctx context.Context, payment *leasing.Payment, note *notification.Notification) (bool, error) {
	args := m.Called(ctx, payment, note)
	return args.Bool(0), args.Error(1)
}
