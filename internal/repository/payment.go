package repository

import (
	"context"
	"time"

	"wastecollect/internal/domain"
)

// PaymentRepository defines the persistence operations for payment records.
type PaymentRepository interface {
	// CreateUnlessRecentlyPaid inserts the record only if the request has no
	// paid record newer than the window. The check and insert execute as one
	// statement, so two concurrent settlements of the same request cannot
	// both insert. Returns whether the record was created.
	CreateUnlessRecentlyPaid(ctx context.Context, record *domain.PaymentRecord, window time.Duration) (bool, error)

	// ListByRequestID returns all payment records for a request, newest first.
	ListByRequestID(ctx context.Context, requestID string) ([]*domain.PaymentRecord, error)
}
