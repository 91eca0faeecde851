package repository

import (
	"context"
	"time"

	"wastecollect/internal/domain"
)

// SettlementTx exposes the request, payment and cart operations a settlement
// needs, scoped to one transaction.
type SettlementTx interface {
	FindPendingRequestsByIDs(ctx context.Context, ids []string) ([]*domain.WasteRequest, error)
	MarkRequestPaid(ctx context.Context, id string) error
	CreatePaymentUnlessRecentlyPaid(ctx context.Context, record *domain.PaymentRecord, window time.Duration) (bool, error)
	RemoveCartItems(ctx context.Context, requestIDs []string) error
}

// SettlementStore runs settlement work transactionally: fn either commits as
// a whole or rolls back as a whole.
type SettlementStore interface {
	RunInTx(ctx context.Context, fn func(tx SettlementTx) error) error
}
