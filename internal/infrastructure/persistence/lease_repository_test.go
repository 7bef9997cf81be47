package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupLeasingTestDB opens an in-memory SQLite database with the leasing
// tables migrated. SQLite supports the partial unique index that enforces
// the single-active-lease invariant, so the real models can be used.
func setupLeasingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.LeaseAgreementModel{},
		&models.PaymentModel{},
		&models.NotificationModel{},
	)
	require.NoError(t, err)

	return db
}

func newStoredLease(t *testing.T, tenantID uuid.UUID, start time.Time, months int) *leasing.LeaseAgreement {
	t.Helper()
	end := leasing.EndDateFor(start, months)
	lease, err := leasing.NewLeaseAgreement(tenantID, decimal.NewFromInt(50000), start, end, leasing.FrequencyMonthly)
	require.NoError(t, err)
	return lease
}

func TestGormLeaseRepository_CreateActive(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	t.Run("creates and reads back an active lease", func(t *testing.T) {
		tenantID := uuid.New()
		lease := newStoredLease(t, tenantID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)

		err := repo.CreateActive(ctx, lease)
		require.NoError(t, err)

		found, err := repo.FindActiveByTenant(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, lease.ID, found.ID)
		assert.Equal(t, leasing.LeaseStatusActive, found.Status)
		assert.True(t, found.RentAmount.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("rejects a second active lease for the same tenant", func(t *testing.T) {
		tenantID := uuid.New()
		first := newStoredLease(t, tenantID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
		second := newStoredLease(t, tenantID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 6)

		require.NoError(t, repo.CreateActive(ctx, first))

		err := repo.CreateActive(ctx, second)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("allows a new active lease once the previous one is terminated", func(t *testing.T) {
		tenantID := uuid.New()
		first := newStoredLease(t, tenantID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
		require.NoError(t, repo.CreateActive(ctx, first))

		require.NoError(t, first.Terminate())
		require.NoError(t, repo.Save(ctx, first))

		second := newStoredLease(t, tenantID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 6)
		err := repo.CreateActive(ctx, second)
		require.NoError(t, err)

		found, err := repo.FindActiveByTenant(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, found.ID)
	})

	t.Run("permits active leases for different tenants", func(t *testing.T) {
		leaseA := newStoredLease(t, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
		leaseB := newStoredLease(t, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)

		require.NoError(t, repo.CreateActive(ctx, leaseA))
		require.NoError(t, repo.CreateActive(ctx, leaseB))
	})
}

func TestGormLeaseRepository_FindActiveByTenant(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	t.Run("returns not found when the tenant has no active lease", func(t *testing.T) {
		_, err := repo.FindActiveByTenant(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("ignores terminated leases", func(t *testing.T) {
		tenantID := uuid.New()
		lease := newStoredLease(t, tenantID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
		require.NoError(t, repo.CreateActive(ctx, lease))
		require.NoError(t, lease.Terminate())
		require.NoError(t, repo.Save(ctx, lease))

		_, err := repo.FindActiveByTenant(ctx, tenantID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLeaseRepository_FindExpiring(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	// Ends 2024-12-26, inside a 90-day window from October 1st.
	expiring := newStoredLease(t, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
	require.NoError(t, repo.CreateActive(ctx, expiring))

	// Ends roughly a year out, beyond the window.
	distant := newStoredLease(t, uuid.New(), time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), 12)
	require.NoError(t, repo.CreateActive(ctx, distant))

	// Terminated leases are excluded even when their end date qualifies.
	terminated := newStoredLease(t, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
	require.NoError(t, repo.CreateActive(ctx, terminated))
	require.NoError(t, terminated.Terminate())
	require.NoError(t, repo.Save(ctx, terminated))

	leases, err := repo.FindExpiring(ctx, now.AddDate(0, 0, 90))
	require.NoError(t, err)
	require.Len(t, leases, 1)
	assert.Equal(t, expiring.ID, leases[0].ID)
}

func TestGormLeaseRepository_CountByStatus(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		lease := newStoredLease(t, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
		require.NoError(t, repo.CreateActive(ctx, lease))
	}

	paid := newStoredLease(t, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
	require.NoError(t, repo.CreateActive(ctx, paid))
	require.True(t, paid.MarkPaid())
	require.NoError(t, repo.Save(ctx, paid))

	active, err := repo.CountByStatus(ctx, leasing.LeaseStatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(3), active)

	paidCount, err := repo.CountByStatus(ctx, leasing.LeaseStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), paidCount)
}

func TestGormLeaseRepository_FindByTenant(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	old := newStoredLease(t, tenantID, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 12)
	require.NoError(t, repo.CreateActive(ctx, old))
	require.NoError(t, old.Terminate())
	require.NoError(t, repo.Save(ctx, old))

	current := newStoredLease(t, tenantID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12)
	require.NoError(t, repo.CreateActive(ctx, current))

	leases, err := repo.FindByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, current.ID, leases[0].ID)
	assert.Equal(t, old.ID, leases[1].ID)
}
