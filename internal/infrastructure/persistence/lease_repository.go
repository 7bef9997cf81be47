package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeaseRepository implements leasing.LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease agreement by its ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.LeaseAgreement, error) {
	var model models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByTenant finds the tenant's active lease.
// Returns shared.ErrNotFound when the tenant has no active lease.
func (r *GormLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*leasing.LeaseAgreement, error) {
	var model models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, leasing.LeaseStatusActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant finds all lease agreements for a tenant, newest first
func (r *GormLeaseRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("start_date DESC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// CreateActive inserts a new active lease. The partial unique index on
// (tenant_id) for active rows makes the losing side of a concurrent
// provisioning race fail with a unique violation, which is translated
// to shared.ErrConflict so callers can re-read the surviving lease.
func (r *GormLeaseRepository) CreateActive(ctx context.Context, lease *leasing.LeaseAgreement) error {
	model := models.LeaseAgreementModelFromDomain(lease)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Save updates an existing lease agreement
func (r *GormLeaseRepository) Save(ctx context.Context, lease *leasing.LeaseAgreement) error {
	model := models.LeaseAgreementModelFromDomain(lease)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindAll finds all lease agreements matching the filter
func (r *GormLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeaseAgreementModel{}), filter)

	if err := query.Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// FindRecent finds the most recently created lease agreements
func (r *GormLeaseRepository) FindRecent(ctx context.Context, limit int) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// FindExpiring finds active leases whose end date falls on or before the deadline
func (r *GormLeaseRepository) FindExpiring(ctx context.Context, deadline time.Time) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", leasing.LeaseStatusActive, deadline).
		Order("end_date ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// FindByStatus finds all lease agreements with the given status
func (r *GormLeaseRepository) FindByStatus(ctx context.Context, status leasing.LeaseStatus) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date DESC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// CountByStatus counts lease agreements with the given status
func (r *GormLeaseRepository) CountByStatus(ctx context.Context, status leasing.LeaseStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LeaseAgreementModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLeaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LeaseSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func toDomainLeases(leaseModels []models.LeaseAgreementModel) []leasing.LeaseAgreement {
	leases := make([]leasing.LeaseAgreement, len(leaseModels))
	for i, model := range leaseModels {
		leases[i] = *model.ToDomain()
	}
	return leases
}
