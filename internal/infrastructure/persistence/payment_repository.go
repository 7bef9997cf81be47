package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/notification"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements leasing.PaymentRepository using GORM.
// The ledger is append-only; rows are never updated or deleted.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLease finds all payments recorded against a lease, newest first
func (r *GormPaymentRepository) FindByLease(ctx context.Context, leaseID uuid.UUID) ([]leasing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("lease_agreement_id = ?", leaseID).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindRecent finds the most recently recorded payments
func (r *GormPaymentRepository) FindRecent(ctx context.Context, limit int) ([]leasing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Order("payment_date DESC").
		Limit(limit).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// SumByLease returns the total amount paid against a lease
func (r *GormPaymentRepository) SumByLease(ctx context.Context, leaseID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("lease_agreement_id = ?", leaseID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumAll returns the total amount across the whole ledger
func (r *GormPaymentRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// StatsInRange aggregates payments whose payment date falls inside the
// optional inclusive range
func (r *GormPaymentRepository) StatsInRange(ctx context.Context, start, end *time.Time) (leasing.PaymentStats, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if start != nil {
		query = query.Where("payment_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("payment_date <= ?", *end)
	}

	var result struct {
		Total decimal.Decimal
		Count int64
	}
	if err := query.
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Scan(&result).Error; err != nil {
		return leasing.PaymentStats{}, err
	}
	return leasing.PaymentStats{Total: result.Total, Count: result.Count}, nil
}

// RecordAtomic appends a payment, re-totals the lease's ledger inside the
// same transaction, and marks the lease paid once the rent is covered. The
// receipt sequence is assigned inside the transaction; the unique index on
// receipt_seq guards against concurrent writers handing out the same number.
// The paid transition is a status-guarded update, so when two writers cross
// the rent threshold together only one of them flips the lease and inserts
// the completion notification.
func (r *GormPaymentRepository) RecordAtomic(ctx context.Context, payment *leasing.Payment, note *notification.Notification) (bool, error) {
	leasePaid := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lastSeq int64
		if err := tx.Model(&models.PaymentModel{}).
			Select("COALESCE(MAX(receipt_seq), 0)").
			Scan(&lastSeq).Error; err != nil {
			return err
		}
		payment.ReceiptSeq = lastSeq + 1

		if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
			return err
		}

		var leaseModel models.LeaseAgreementModel
		if err := tx.First(&leaseModel, "id = ?", payment.LeaseAgreementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No lease row, no settlement check.
				return nil
			}
			return err
		}
		if leaseModel.Status != leasing.LeaseStatusActive {
			return nil
		}

		var total decimal.Decimal
		if err := tx.Model(&models.PaymentModel{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("lease_agreement_id = ?", payment.LeaseAgreementID).
			Scan(&total).Error; err != nil {
			return err
		}
		if !leaseModel.ToDomain().IsCoveredBy(total) {
			return nil
		}

		res := tx.Model(&models.LeaseAgreementModel{}).
			Where("id = ? AND status = ?", payment.LeaseAgreementID, leasing.LeaseStatusActive).
			Updates(map[string]interface{}{
				"status":     leasing.LeaseStatusPaid,
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent writer settled the lease first.
			return nil
		}

		if note != nil {
			if err := tx.Create(models.NotificationModelFromDomain(note)).Error; err != nil {
				return err
			}
		}
		leasePaid = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return leasePaid, nil
}

// applyFilter applies filter options to the query
func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "lease_agreement_id":
			query = query.Where("lease_agreement_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "payment_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func toDomainPayments(paymentModels []models.PaymentModel) []leasing.Payment {
	payments := make([]leasing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}
