package service

import (
	"context"
	"regexp"

	"wastecollect/internal/momo"
)

// Gateway is the interface for the mobile-money collection gateway.
type Gateway interface {
	// RequestToPay starts a charge and returns its correlation id. The
	// outcome is not known at return time.
	RequestToPay(ctx context.Context, payer string, amount float64) (string, error)

	// GetStatus fetches the current status of a charge.
	GetStatus(ctx context.Context, correlationID string) (momo.TransactionResult, error)
}

var phonePattern = regexp.MustCompile(`^[0-9]{8,15}$`)

// PaymentService starts charges against the gateway.
type PaymentService struct {
	gateway Gateway
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(gateway Gateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// InitiatePaymentRequest contains the parameters for starting a charge.
type InitiatePaymentRequest struct {
	Phone  string
	Amount float64
}

// Initiate validates the payer details and starts a charge, returning the
// transaction id used to poll status. Gateway failures propagate to the
// caller unchanged: no charge was started and a retry must use a fresh
// initiation, never a recycled transaction id.
func (s *PaymentService) Initiate(ctx context.Context, req InitiatePaymentRequest) (string, error) {
	if req.Amount <= 0 {
		return "", ErrInvalidAmount
	}

	if !phonePattern.MatchString(req.Phone) {
		return "", ErrInvalidPhone
	}

	return s.gateway.RequestToPay(ctx, req.Phone, req.Amount)
}
