package postgres

import (
	"context"
	"database/sql"
	"time"

	"wastecollect/internal/domain"
	"wastecollect/internal/repository"
)

// SettlementStore runs settlement work in a single database transaction.
type SettlementStore struct {
	db *sql.DB
}

// NewSettlementStore creates a new SettlementStore.
func NewSettlementStore(db *sql.DB) *SettlementStore {
	return &SettlementStore{db: db}
}

// RunInTx begins a transaction, exposes transaction-scoped repositories to
// fn, and commits if fn returns nil.
func (s *SettlementStore) RunInTx(ctx context.Context, fn func(tx repository.SettlementTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stx := &settlementTx{
		requests: NewRequestRepositoryWithTx(tx),
		payments: NewPaymentRepositoryWithTx(tx),
		carts:    NewCartRepositoryWithTx(tx),
	}

	if err := fn(stx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// settlementTx adapts transaction-scoped repositories to repository.SettlementTx.
type settlementTx struct {
	requests *RequestRepository
	payments *PaymentRepository
	carts    *CartRepository
}

func (t *settlementTx) FindPendingRequestsByIDs(ctx context.Context, ids []string) ([]*domain.WasteRequest, error) {
	return t.requests.FindPendingByIDs(ctx, ids)
}

func (t *settlementTx) MarkRequestPaid(ctx context.Context, id string) error {
	return t.requests.MarkPaid(ctx, id)
}

func (t *settlementTx) CreatePaymentUnlessRecentlyPaid(ctx context.Context, record *domain.PaymentRecord, window time.Duration) (bool, error) {
	return t.payments.CreateUnlessRecentlyPaid(ctx, record, window)
}

func (t *settlementTx) RemoveCartItems(ctx context.Context, requestIDs []string) error {
	return t.carts.RemoveItems(ctx, requestIDs)
}
