package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wastecollect/internal/domain"
	"wastecollect/internal/redis"
	"wastecollect/internal/repository"
)

// NotificationService persists in-app notifications and sends email receipts.
// Email delivery is best effort everywhere; the persisted row is what counts.
type NotificationService struct {
	repo       repository.NotificationRepository
	cache      redis.CacheStoreInterface
	mailer     Mailer
	adminEmail string
}

// NewNotificationService creates a new NotificationService. cache may be nil.
func NewNotificationService(repo repository.NotificationRepository, cache redis.CacheStoreInterface, mailer Mailer, adminEmail string) *NotificationService {
	return &NotificationService{
		repo:       repo,
		cache:      cache,
		mailer:     mailer,
		adminEmail: adminEmail,
	}
}

// Notify stores a notification for a registered user.
func (s *NotificationService) Notify(ctx context.Context, userID, title, message string, severity domain.NotificationSeverity, link string) error {
	notification := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Severity:  severity,
		Link:      link,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateUnreadCount(ctx, userID)
	}

	return nil
}

// ListForUser returns a user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UnreadCount returns the user's unread count, served from cache when warm.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	if s.cache != nil {
		if count, ok, err := s.cache.GetUnreadCount(ctx, userID); err == nil && ok {
			return count, nil
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		_ = s.cache.SetUnreadCount(ctx, userID, count)
	}

	return count, nil
}

// NotifyUserPaymentRecorded stores an in-app payment confirmation for a
// registered user whose request just settled.
func (s *NotificationService) NotifyUserPaymentRecorded(ctx context.Context, userID string, amount float64, transactionID string) error {
	message := fmt.Sprintf("Your payment of EUR %.2f was received. Transaction ID: %s.", amount, transactionID)
	return s.Notify(ctx, userID, "Payment received", message, domain.NotificationSuccess, "/notifications")
}

// NotifyPaymentReceived emails a payment confirmation to the payer.
func (s *NotificationService) NotifyPaymentReceived(ctx context.Context, email string, amount float64, transactionID string) error {
	body := fmt.Sprintf(
		"Your payment of EUR %.2f for transaction %s was successful. Thank you for using WasteCollect.",
		amount, transactionID,
	)
	return s.mailer.Send(ctx, email, "Payment Confirmation - WasteCollect", body)
}

// NotifyAdminPaymentReceived emails the operational mailbox about a payment.
func (s *NotificationService) NotifyAdminPaymentReceived(ctx context.Context, amount float64, transactionID, payerEmail string) error {
	if payerEmail == "" {
		payerEmail = "not provided"
	}
	body := fmt.Sprintf(
		"A payment of EUR %.2f has been received. Transaction ID: %s. Payer email: %s.",
		amount, transactionID, payerEmail,
	)
	return s.mailer.Send(ctx, s.adminEmail, "New Payment Received - WasteCollect", body)
}
