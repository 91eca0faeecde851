package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"wastecollect/internal/domain"
	"wastecollect/internal/repository"
)

// RequestRepository is a PostgreSQL implementation of repository.RequestRepository.
type RequestRepository struct {
	q Querier
}

// NewRequestRepository creates a new PostgreSQL request repository.
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{q: db}
}

// NewRequestRepositoryWithTx creates a request repository using a transaction.
func NewRequestRepositoryWithTx(tx *sql.Tx) *RequestRepository {
	return &RequestRepository{q: tx}
}

const requestColumns = `id, user_id, guest_name, guest_phone, location, waste_type, status, notes, requested_at, preferred_at`

// Create persists a new waste request.
func (r *RequestRepository) Create(ctx context.Context, request *domain.WasteRequest) error {
	query := `
		INSERT INTO waste_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		request.ID,
		request.UserID,
		request.GuestName,
		request.GuestPhone,
		request.Location,
		request.WasteType,
		request.Status,
		request.Notes,
		request.RequestedAt,
		request.PreferredAt,
	)

	return err
}

// GetByID retrieves a request by ID.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.WasteRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM waste_requests WHERE id = $1`

	request, err := scanRequest(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return request, nil
}

// FindPendingByIDs resolves ids to requests still in Pending status.
// Unknown or non-pending ids are silently dropped.
func (r *RequestRepository) FindPendingByIDs(ctx context.Context, ids []string) ([]*domain.WasteRequest, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + requestColumns + `
		FROM waste_requests
		WHERE id = ANY($1) AND status = $2
	`

	rows, err := r.q.QueryContext(ctx, query, pq.Array(ids), domain.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

// FindPendingByUser lists a registered user's pending requests, newest first.
func (r *RequestRepository) FindPendingByUser(ctx context.Context, userID string) ([]*domain.WasteRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM waste_requests
		WHERE user_id = $1 AND status = $2
		ORDER BY requested_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID, domain.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

// MarkPaid transitions a request to Paid status.
func (r *RequestRepository) MarkPaid(ctx context.Context, id string) error {
	query := `UPDATE waste_requests SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, domain.RequestStatusPaid, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.WasteRequest, error) {
	var request domain.WasteRequest
	err := row.Scan(
		&request.ID,
		&request.UserID,
		&request.GuestName,
		&request.GuestPhone,
		&request.Location,
		&request.WasteType,
		&request.Status,
		&request.Notes,
		&request.RequestedAt,
		&request.PreferredAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func collectRequests(rows *sql.Rows) ([]*domain.WasteRequest, error) {
	var requests []*domain.WasteRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
