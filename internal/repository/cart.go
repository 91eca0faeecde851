package repository

import "context"

// CartRepository defines the persistence operations for guest carts.
// Items resolve to WasteRequests; the cart itself is keyed by session id.
type CartRepository interface {
	// AddItem links a request into the cart for the given session, creating
	// the cart on first use. Returns ErrDuplicate if already present.
	AddItem(ctx context.Context, sessionID, requestID string) error

	// ListRequestIDs returns the request ids in the session's cart.
	ListRequestIDs(ctx context.Context, sessionID string) ([]string, error)

	// RemoveItems removes any cart items referencing the given request ids,
	// across all carts. Used when those requests settle.
	RemoveItems(ctx context.Context, requestIDs []string) error
}
