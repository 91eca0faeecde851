package domain

import "time"

// Cart groups pending waste requests for a guest session ahead of checkout.
// Registered users have no cart row; their pending requests are the cart.
type Cart struct {
	ID         string
	SessionID  string
	GuestPhone string
	CreatedAt  time.Time
}

// CartItem links one waste request into a guest cart.
type CartItem struct {
	ID        string
	CartID    string
	RequestID string
	AddedAt   time.Time
}
