package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"wastecollect/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// CartRepository is a PostgreSQL implementation of repository.CartRepository.
type CartRepository struct {
	q Querier
}

// NewCartRepository creates a new PostgreSQL cart repository.
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{q: db}
}

// NewCartRepositoryWithTx creates a cart repository using a transaction.
func NewCartRepositoryWithTx(tx *sql.Tx) *CartRepository {
	return &CartRepository{q: tx}
}

// AddItem links a request into the session's cart, creating the cart row on
// first use.
func (r *CartRepository) AddItem(ctx context.Context, sessionID, requestID string) error {
	cartID, err := r.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cart_items (id, cart_id, request_id, added_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = r.q.ExecContext(ctx, query, uuid.New().String(), cartID, requestID, time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}

	return nil
}

// ListRequestIDs returns the request ids in the session's cart.
func (r *CartRepository) ListRequestIDs(ctx context.Context, sessionID string) ([]string, error) {
	query := `
		SELECT ci.request_id
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE c.session_id = $1
		ORDER BY ci.added_at
	`

	rows, err := r.q.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// RemoveItems removes cart items referencing the given request ids across
// all carts.
func (r *CartRepository) RemoveItems(ctx context.Context, requestIDs []string) error {
	if len(requestIDs) == 0 {
		return nil
	}

	query := `DELETE FROM cart_items WHERE request_id = ANY($1)`

	_, err := r.q.ExecContext(ctx, query, pq.Array(requestIDs))
	return err
}

// getOrCreateCart returns the cart id for a session, inserting on first use.
// The carts_session_key unique index makes concurrent first adds converge on
// one cart.
func (r *CartRepository) getOrCreateCart(ctx context.Context, sessionID string) (string, error) {
	query := `
		INSERT INTO carts (id, session_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
		RETURNING id
	`

	var cartID string
	err := r.q.QueryRowContext(ctx, query, uuid.New().String(), sessionID, time.Now()).Scan(&cartID)
	if err != nil {
		return "", err
	}

	return cartID, nil
}
