package service

import "errors"

var (
	// ErrInvalidAmount is returned when a charge amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidPhone is returned when a payer phone is not 8-15 digits.
	ErrInvalidPhone = errors.New("phone number must be 8-15 digits")

	// ErrInvalidTransactionID is returned when a transaction id is empty.
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrAmbiguousOutcome is returned when polling stops before a terminal
	// status was observed. The charge may still complete gateway-side; it is
	// explicitly not a failure.
	ErrAmbiguousOutcome = errors.New("payment outcome still unknown after polling bound")

	// ErrInvalidSessionID is returned when a cart session id is empty.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrInvalidRequestID is returned when a waste request id is empty.
	ErrInvalidRequestID = errors.New("invalid request id")

	// ErrRequestNotPending is returned when adding a non-pending request to a cart.
	ErrRequestNotPending = errors.New("request is not pending")
)
