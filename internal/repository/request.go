package repository

import (
	"context"

	"wastecollect/internal/domain"
)

// RequestRepository defines the persistence operations for waste requests.
type RequestRepository interface {
	// Create persists a new waste request.
	Create(ctx context.Context, request *domain.WasteRequest) error

	// GetByID retrieves a request by ID.
	GetByID(ctx context.Context, id string) (*domain.WasteRequest, error)

	// FindPendingByIDs resolves the given ids to requests still in Pending
	// status. Unknown or non-pending ids are silently dropped.
	FindPendingByIDs(ctx context.Context, ids []string) ([]*domain.WasteRequest, error)

	// FindPendingByUser lists a registered user's pending requests, newest first.
	FindPendingByUser(ctx context.Context, userID string) ([]*domain.WasteRequest, error)

	// MarkPaid transitions a request to Paid status.
	MarkPaid(ctx context.Context, id string) error
}
