package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	expiryWindowDays = 90
	recentFeedLimit  = 10
)

// DashboardService aggregates portfolio-wide figures for reporting views.
// All queries are read-only and tolerate an empty store.
type DashboardService struct {
	tenantRepo   letting.TenantRepository
	propertyRepo letting.PropertyRepository
	landlordRepo letting.LandlordRepository
	leaseRepo    leasing.LeaseRepository
	paymentRepo  leasing.PaymentRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	tenantRepo letting.TenantRepository,
	propertyRepo letting.PropertyRepository,
	landlordRepo letting.LandlordRepository,
	leaseRepo leasing.LeaseRepository,
	paymentRepo leasing.PaymentRepository,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		landlordRepo: landlordRepo,
		leaseRepo:    leaseRepo,
		paymentRepo:  paymentRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// DashboardStats is the headline figure set for the portfolio dashboard
type DashboardStats struct {
	TotalTenants       int64           `json:"total_tenants"`
	TotalProperties    int64           `json:"total_properties"`
	ActiveLeases       int64           `json:"active_leases"`
	ExpiringLeases     int64           `json:"expiring_leases"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	TotalOutstanding   decimal.Decimal `json:"total_outstanding"`
	TenantsOutstanding int64           `json:"tenants_outstanding"`
	OccupancyRate      decimal.Decimal `json:"occupancy_rate"`
}

// Stats computes the portfolio headline figures. Outstanding totals are
// summed over active leases only; settled and terminated leases carry no
// balance. An empty store yields all-zero figures.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		OccupancyRate:    decimal.Zero,
	}

	var err error
	if stats.TotalTenants, err = s.tenantRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count tenants: %w", err)
	}
	if stats.TotalProperties, err = s.propertyRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	if stats.ActiveLeases, err = s.leaseRepo.CountByStatus(ctx, leasing.LeaseStatusActive); err != nil {
		return nil, fmt.Errorf("failed to count active leases: %w", err)
	}

	now := s.now()
	deadline := now.AddDate(0, 0, expiryWindowDays)
	expiring, err := s.leaseRepo.FindExpiring(ctx, deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to load expiring leases: %w", err)
	}
	stats.ExpiringLeases = int64(len(expiring))

	if stats.TotalCollected, err = s.paymentRepo.SumAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to total payments: %w", err)
	}

	active, err := s.leaseRepo.FindByStatus(ctx, leasing.LeaseStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load active leases: %w", err)
	}
	for i := range active {
		paid, err := s.paymentRepo.SumByLease(ctx, active[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to total payments for lease %s: %w", active[i].ID, err)
		}
		owed := active[i].OutstandingAgainst(paid)
		if owed.IsPositive() {
			stats.TenantsOutstanding++
		}
		stats.TotalOutstanding = stats.TotalOutstanding.Add(owed)
	}

	if stats.TotalProperties > 0 {
		occupied, err := s.propertyRepo.CountOccupied(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count occupied properties: %w", err)
		}
		stats.OccupancyRate = decimal.NewFromInt(occupied).
			Div(decimal.NewFromInt(stats.TotalProperties)).
			Mul(decimal.NewFromInt(100)).Round(2)
	}

	return stats, nil
}

// ActivityKind distinguishes the entry types of the recent activity feed
type ActivityKind string

const (
	ActivityPayment ActivityKind = "payment"
	ActivityLease   ActivityKind = "lease"
)

// ActivityEntry is one row of the recent activity feed
type ActivityEntry struct {
	Kind        ActivityKind     `json:"kind"`
	OccurredAt  time.Time        `json:"occurred_at"`
	TenantName  string           `json:"tenant_name"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	LeaseID     uuid.UUID        `json:"lease_id"`
}

// RecentActivity merges the latest payments and the latest lease creations
// into a single feed, newest first, capped at limit entries. A limit of
// zero or less falls back to ten.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = recentFeedLimit
	}
	payments, err := s.paymentRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent payments: %w", err)
	}
	leases, err := s.leaseRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent leases: %w", err)
	}

	entries := make([]ActivityEntry, 0, len(payments)+len(leases))
	tenantNames := map[uuid.UUID]string{}

	nameFor := func(tenantID uuid.UUID) string {
		if name, ok := tenantNames[tenantID]; ok {
			return name
		}
		name := "Unknown"
		tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
		if err == nil {
			name = tenant.FullName()
		} else if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("failed to resolve tenant for activity feed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
		tenantNames[tenantID] = name
		return name
	}

	for i := range payments {
		lease, err := s.leaseRepo.FindByID(ctx, payments[i].LeaseAgreementID)
		if err != nil {
			return nil, fmt.Errorf("failed to load lease for payment %s: %w", payments[i].ID, err)
		}
		amount := payments[i].Amount
		entries = append(entries, ActivityEntry{
			Kind:        ActivityPayment,
			OccurredAt:  payments[i].PaymentDate,
			TenantName:  nameFor(lease.TenantID),
			Description: fmt.Sprintf("Payment of %s received", amount.StringFixed(2)),
			Status:      "completed",
			Amount:      &amount,
			LeaseID:     lease.ID,
		})
	}
	for i := range leases {
		entries = append(entries, ActivityEntry{
			Kind:        ActivityLease,
			OccurredAt:  leases[i].CreatedAt,
			TenantName:  nameFor(leases[i].TenantID),
			Description: "New lease agreement created",
			Status:      string(leases[i].Status),
			LeaseID:     leases[i].ID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// LandlordRevenue is the collected-rent rollup for one landlord
type LandlordRevenue struct {
	LandlordID   uuid.UUID       `json:"landlord_id"`
	LandlordName string          `json:"landlord_name"`
	Properties   int             `json:"properties"`
	Collected    decimal.Decimal `json:"collected"`
}

// RevenueByLandlord totals collected payments per landlord by walking each
// landlord's properties, their tenants, and each tenant's leases.
func (s *DashboardService) RevenueByLandlord(ctx context.Context) ([]LandlordRevenue, error) {
	landlords, err := s.landlordRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to load landlords: %w", err)
	}

	result := make([]LandlordRevenue, 0, len(landlords))
	for i := range landlords {
		entry := LandlordRevenue{
			LandlordID:   landlords[i].ID,
			LandlordName: landlords[i].FullName(),
			Collected:    decimal.Zero,
		}
		properties, err := s.propertyRepo.FindByLandlord(ctx, landlords[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load properties for landlord %s: %w", landlords[i].ID, err)
		}
		entry.Properties = len(properties)
		for j := range properties {
			tenants, err := s.tenantRepo.FindByProperty(ctx, properties[j].ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load tenants for property %s: %w", properties[j].ID, err)
			}
			for k := range tenants {
				leases, err := s.leaseRepo.FindByTenant(ctx, tenants[k].ID)
				if err != nil {
					return nil, fmt.Errorf("failed to load leases for tenant %s: %w", tenants[k].ID, err)
				}
				for l := range leases {
					paid, err := s.paymentRepo.SumByLease(ctx, leases[l].ID)
					if err != nil {
						return nil, fmt.Errorf("failed to total payments for lease %s: %w", leases[l].ID, err)
					}
					entry.Collected = entry.Collected.Add(paid)
				}
			}
		}
		result = append(result, entry)
	}

	return result, nil
}

// PeriodStats summarizes the ledger over an optional inclusive date range
type PeriodStats struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
	Mean  decimal.Decimal `json:"mean"`
}

// PaymentStatsInPeriod computes sum, count, and mean of payments whose
// payment date falls inside the optional inclusive range. Nil bounds leave
// that side of the range open.
func (s *DashboardService) PaymentStatsInPeriod(ctx context.Context, start, end *time.Time) (*PeriodStats, error) {
	stats, err := s.paymentRepo.StatsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	result := &PeriodStats{
		Total: stats.Total,
		Count: stats.Count,
		Mean:  decimal.Zero,
	}
	if stats.Count > 0 {
		result.Mean = stats.Total.DivRound(decimal.NewFromInt(stats.Count), 4)
	}
	return result, nil
}

// PaymentOverview is the aggregate payment statistics view
type PaymentOverview struct {
	TotalCollected    decimal.Decimal `json:"total_collected"`
	CollectedThisYear decimal.Decimal `json:"collected_this_year"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	PaidTenants       int64           `json:"paid_tenants"`
	UnpaidTenants     int64           `json:"unpaid_tenants"`
}

// PaymentStatistics aggregates ledger-wide figures: all-time and
// year-to-date collections, the outstanding total over active leases, and
// how many leases are settled versus still owing.
func (s *DashboardService) PaymentStatistics(ctx context.Context) (*PaymentOverview, error) {
	overview := &PaymentOverview{
		TotalCollected:    decimal.Zero,
		CollectedThisYear: decimal.Zero,
		TotalOutstanding:  decimal.Zero,
	}

	var err error
	if overview.TotalCollected, err = s.paymentRepo.SumAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to total payments: %w", err)
	}

	now := s.now()
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	yearly, err := s.paymentRepo.StatsInRange(ctx, &yearStart, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to total payments for the year: %w", err)
	}
	overview.CollectedThisYear = yearly.Total

	active, err := s.leaseRepo.FindByStatus(ctx, leasing.LeaseStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load active leases: %w", err)
	}
	for i := range active {
		paid, err := s.paymentRepo.SumByLease(ctx, active[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to total payments for lease %s: %w", active[i].ID, err)
		}
		overview.TotalOutstanding = overview.TotalOutstanding.Add(active[i].OutstandingAgainst(paid))
		overview.UnpaidTenants++
	}

	if overview.PaidTenants, err = s.leaseRepo.CountByStatus(ctx, leasing.LeaseStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to count paid leases: %w", err)
	}

	return overview, nil
}
