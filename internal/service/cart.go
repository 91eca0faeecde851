package service

import (
	"context"

	"wastecollect/internal/domain"
	"wastecollect/internal/repository"
)

// CartService manages checkout carts. Guests get a session-keyed cart row;
// a registered user's pending requests are their cart.
type CartService struct {
	carts    repository.CartRepository
	requests repository.RequestRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repository.CartRepository, requests repository.RequestRepository) *CartService {
	return &CartService{carts: carts, requests: requests}
}

// AddToCart links a pending request into the guest session's cart.
func (s *CartService) AddToCart(ctx context.Context, sessionID, requestID string) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}

	if requestID == "" {
		return ErrInvalidRequestID
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.Status != domain.RequestStatusPending {
		return ErrRequestNotPending
	}

	return s.carts.AddItem(ctx, sessionID, requestID)
}

// GetCartItems returns the pending requests in a cart. Exactly one of userID
// or sessionID should be set.
func (s *CartService) GetCartItems(ctx context.Context, userID, sessionID string) ([]*domain.WasteRequest, error) {
	if userID != "" {
		return s.requests.FindPendingByUser(ctx, userID)
	}

	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}

	ids, err := s.carts.ListRequestIDs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Items whose request has since been paid or removed drop out here.
	return s.requests.FindPendingByIDs(ctx, ids)
}
