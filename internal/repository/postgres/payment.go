package postgres

import (
	"context"
	"database/sql"
	"time"

	"wastecollect/internal/domain"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// CreateUnlessRecentlyPaid inserts a payment record only if the request has
// no paid record newer than the window. The guard and insert are one
// statement. The ON CONFLICT clause targets the payments_request_txn_key
// unique index on (request_id, transaction_id): a concurrent settlement for
// the same correlation id that raced past the window check resolves to zero
// rows affected instead of a unique violation, which inside the settlement
// transaction would abort every statement after it.
func (r *PaymentRepository) CreateUnlessRecentlyPaid(ctx context.Context, record *domain.PaymentRecord, window time.Duration) (bool, error) {
	query := `
		INSERT INTO payments (id, request_id, amount, status, transaction_id, paid_at)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (
			SELECT 1 FROM payments
			WHERE request_id = $2 AND status = $4 AND paid_at > $7
		)
		ON CONFLICT (request_id, transaction_id) DO NOTHING
	`

	result, err := r.q.ExecContext(ctx, query,
		record.ID,
		record.RequestID,
		record.Amount,
		record.Status,
		record.TransactionID,
		record.PaidAt,
		record.PaidAt.Add(-window),
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// ListByRequestID returns all payment records for a request, newest first.
func (r *PaymentRepository) ListByRequestID(ctx context.Context, requestID string) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT id, request_id, amount, status, transaction_id, paid_at
		FROM payments WHERE request_id = $1
		ORDER BY paid_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.PaymentRecord
	for rows.Next() {
		var record domain.PaymentRecord
		err := rows.Scan(
			&record.ID,
			&record.RequestID,
			&record.Amount,
			&record.Status,
			&record.TransactionID,
			&record.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}
