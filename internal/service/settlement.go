package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"wastecollect/internal/domain"
	"wastecollect/internal/redis"
	"wastecollect/internal/repository"
)

// settlementLockTTL bounds how long a crashed settlement can shadow retries.
const settlementLockTTL = 30 * time.Second

// PaymentNotifier delivers settlement receipts: email to the payer and the
// operational mailbox, an in-app row for registered users. Every call is
// best effort from the settlement's perspective.
type PaymentNotifier interface {
	NotifyPaymentReceived(ctx context.Context, email string, amount float64, transactionID string) error
	NotifyAdminPaymentReceived(ctx context.Context, amount float64, transactionID, payerEmail string) error
	NotifyUserPaymentRecorded(ctx context.Context, userID string, amount float64, transactionID string) error
}

// Settler applies a successful charge to pending requests.
type Settler interface {
	Settle(ctx context.Context, req SettleRequest) error
}

// SettlementService reconciles a successful charge against the pending
// requests named in the checkout. It is safe to invoke repeatedly and
// concurrently for the same charge: the conditional payment insert guarantees
// at most one paid record per request per settlement window.
type SettlementService struct {
	store       repository.SettlementStore
	locks       redis.LockStoreInterface
	notifier    PaymentNotifier
	dedupWindow time.Duration
}

// NewSettlementService creates a new SettlementService. locks may be nil;
// it is a duplicate-work optimization, not a correctness dependency.
func NewSettlementService(store repository.SettlementStore, locks redis.LockStoreInterface, notifier PaymentNotifier, dedupWindow time.Duration) *SettlementService {
	return &SettlementService{
		store:       store,
		locks:       locks,
		notifier:    notifier,
		dedupWindow: dedupWindow,
	}
}

// SettleRequest contains the parameters of one settlement.
type SettleRequest struct {
	ItemIDs       []string
	TransactionID string
	TotalAmount   float64
	PayerEmail    string
}

// Settle resolves the item ids to pending requests, splits the charged
// amount evenly across them, marks each paid with exactly one payment
// record, and removes them from cart associations. Ids that don't resolve
// are ignored; an empty resolution is a no-op. Notifications run after
// commit and never fail the settlement.
func (s *SettlementService) Settle(ctx context.Context, req SettleRequest) error {
	ids := dedupeIDs(req.ItemIDs)
	if len(ids) == 0 {
		return nil
	}

	if s.locks != nil {
		ok, err := s.locks.AcquireSettlementLock(ctx, req.TransactionID, settlementLockTTL)
		if err != nil {
			// Redis down: proceed, the conditional insert still protects us.
			log.Printf("settlement lock unavailable for %s: %v", req.TransactionID, err)
		} else if !ok {
			// Another poll observer is settling this charge right now.
			return nil
		} else {
			defer func() {
				_ = s.locks.ReleaseSettlementLock(ctx, req.TransactionID)
			}()
		}
	}

	var settledIDs []string
	var settledUserIDs []string
	err := s.store.RunInTx(ctx, func(tx repository.SettlementTx) error {
		requests, err := tx.FindPendingRequestsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("resolve pending requests: %w", err)
		}

		if len(requests) == 0 {
			return nil
		}

		amountPerItem := req.TotalAmount / float64(len(requests))
		paidAt := time.Now()
		resolvedIDs := make([]string, 0, len(requests))

		for _, request := range requests {
			resolvedIDs = append(resolvedIDs, request.ID)

			record := &domain.PaymentRecord{
				ID:            uuid.New().String(),
				RequestID:     request.ID,
				Amount:        amountPerItem,
				Status:        domain.PaymentStatusPaid,
				TransactionID: req.TransactionID,
				PaidAt:        paidAt,
			}

			created, err := tx.CreatePaymentUnlessRecentlyPaid(ctx, record, s.dedupWindow)
			if err != nil {
				return fmt.Errorf("create payment record for %s: %w", request.ID, err)
			}

			if !created {
				// A recent settlement already covered this request.
				continue
			}

			if err := tx.MarkRequestPaid(ctx, request.ID); err != nil {
				return fmt.Errorf("mark request %s paid: %w", request.ID, err)
			}

			settledIDs = append(settledIDs, request.ID)
			if request.UserID != "" {
				settledUserIDs = append(settledUserIDs, request.UserID)
			}
		}

		// Settled purchases disappear from the cart view.
		return tx.RemoveCartItems(ctx, resolvedIDs)
	})
	if err != nil {
		return err
	}

	if len(settledIDs) == 0 || s.notifier == nil {
		return nil
	}

	if req.PayerEmail != "" {
		if err := s.notifier.NotifyPaymentReceived(ctx, req.PayerEmail, req.TotalAmount, req.TransactionID); err != nil {
			log.Printf("payer receipt for %s failed: %v", req.TransactionID, err)
		}
	}

	if err := s.notifier.NotifyAdminPaymentReceived(ctx, req.TotalAmount, req.TransactionID, req.PayerEmail); err != nil {
		log.Printf("admin receipt for %s failed: %v", req.TransactionID, err)
	}

	for _, userID := range dedupeIDs(settledUserIDs) {
		if err := s.notifier.NotifyUserPaymentRecorded(ctx, userID, req.TotalAmount, req.TransactionID); err != nil {
			log.Printf("in-app receipt for %s failed: %v", req.TransactionID, err)
		}
	}

	return nil
}

// dedupeIDs drops empty and repeated ids, preserving order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
