package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/domain/notification"
	"github.com/rently/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	expiryWindowDays = 90
	expiryDateFormat = "02 January, 2006"

	expirySubject  = "Lease Expiration Notice"
	overdueSubject = "Payment Overdue Notice"
)

// TriggerService runs the periodic notification scans. Each run re-examines
// the current state and emits fresh notifications; runs are not deduplicated
// against earlier ones.
type TriggerService struct {
	notificationRepo notification.Repository
	leaseRepo        leasing.LeaseRepository
	paymentRepo      leasing.PaymentRepository
	tenantRepo       letting.TenantRepository
	propertyRepo     letting.PropertyRepository
	notifier         notification.Notifier
	logger           *zap.Logger
	now              func() time.Time
}

// NewTriggerService creates a new TriggerService
func NewTriggerService(
	notificationRepo notification.Repository,
	leaseRepo leasing.LeaseRepository,
	paymentRepo leasing.PaymentRepository,
	tenantRepo letting.TenantRepository,
	propertyRepo letting.PropertyRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) *TriggerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TriggerService{
		notificationRepo: notificationRepo,
		leaseRepo:        leaseRepo,
		paymentRepo:      paymentRepo,
		tenantRepo:       tenantRepo,
		propertyRepo:     propertyRepo,
		notifier:         notifier,
		logger:           logger,
		now:              time.Now,
	}
}

// CheckLeaseExpirations scans for active leases ending within the next
// ninety days and records an expiry notification for each, emailing the
// tenant. A failed email is logged and does not fail the scan; the stored
// notification is the system of record.
func (s *TriggerService) CheckLeaseExpirations(ctx context.Context) (int, error) {
	deadline := s.now().AddDate(0, 0, expiryWindowDays)
	expiring, err := s.leaseRepo.FindExpiring(ctx, deadline)
	if err != nil {
		return 0, fmt.Errorf("failed to load expiring leases: %w", err)
	}

	created := 0
	for i := range expiring {
		lease := &expiring[i]
		tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("skipping expiring lease with missing tenant",
					zap.String("lease_id", lease.ID.String()),
				)
				continue
			}
			return created, fmt.Errorf("failed to load tenant for lease %s: %w", lease.ID, err)
		}

		message := fmt.Sprintf("Lease for %s at %s expires on %s",
			tenant.FullName(),
			s.propertyName(ctx, tenant),
			lease.EndDate.Format(expiryDateFormat),
		)

		if err := s.record(ctx, notification.TypeLeaseExpiry, message, tenant); err != nil {
			return created, err
		}
		created++
		s.email(ctx, tenant, expirySubject, message)
	}

	s.logger.Info("lease expiration scan complete",
		zap.Int("expiring", len(expiring)),
		zap.Int("notified", created),
	)

	return created, nil
}

// CheckOverduePayments scans active leases whose ledger total has not yet
// covered the rent amount and records an overdue notification for each.
func (s *TriggerService) CheckOverduePayments(ctx context.Context) (int, error) {
	active, err := s.leaseRepo.FindByStatus(ctx, leasing.LeaseStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to load active leases: %w", err)
	}

	created := 0
	for i := range active {
		lease := &active[i]
		paid, err := s.paymentRepo.SumByLease(ctx, lease.ID)
		if err != nil {
			return created, fmt.Errorf("failed to total payments for lease %s: %w", lease.ID, err)
		}
		due := lease.OutstandingAgainst(paid)
		if due.IsZero() {
			continue
		}

		tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("skipping overdue lease with missing tenant",
					zap.String("lease_id", lease.ID.String()),
				)
				continue
			}
			return created, fmt.Errorf("failed to load tenant for lease %s: %w", lease.ID, err)
		}

		message := fmt.Sprintf("Overdue payment for %s. Amount due: %s", tenant.FullName(), due)

		if err := s.record(ctx, notification.TypePaymentOverdue, message, tenant); err != nil {
			return created, err
		}
		created++
		s.email(ctx, tenant, overdueSubject, message)
	}

	s.logger.Info("overdue payment scan complete",
		zap.Int("active", len(active)),
		zap.Int("notified", created),
	)

	return created, nil
}

// RunAll executes both scans back to back
func (s *TriggerService) RunAll(ctx context.Context) error {
	if _, err := s.CheckLeaseExpirations(ctx); err != nil {
		return err
	}
	if _, err := s.CheckOverduePayments(ctx); err != nil {
		return err
	}
	return nil
}

// ListNotifications returns a page of stored notifications, newest first
func (s *TriggerService) ListNotifications(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	return s.notificationRepo.FindAll(ctx, filter)
}

// ListUnread returns the notifications not yet marked read
func (s *TriggerService) ListUnread(ctx context.Context) ([]notification.Notification, error) {
	return s.notificationRepo.FindUnread(ctx)
}

// MarkRead flags a notification as read
func (s *TriggerService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if _, err := s.notificationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *TriggerService) record(ctx context.Context, kind notification.Type, message string, tenant *letting.Tenant) error {
	note, err := notification.New(kind, message, &tenant.ID)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func (s *TriggerService) email(ctx context.Context, tenant *letting.Tenant, subject, message string) {
	if s.notifier == nil || tenant.Email == "" {
		return
	}
	body := fmt.Sprintf("Dear %s,\n\n%s", tenant.FirstName, message)
	if err := s.notifier.Send(ctx, tenant.Email, subject, body); err != nil {
		s.logger.Error("failed to send notification email",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func (s *TriggerService) propertyName(ctx context.Context, tenant *letting.Tenant) string {
	if tenant.PropertyID == nil {
		return "Not Assigned"
	}
	property, err := s.propertyRepo.FindByID(ctx, *tenant.PropertyID)
	if err != nil {
		return "Not Assigned"
	}
	return property.Name
}
