package domain

import "time"

// TransactionStatus is the gateway-reported status of a charge.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	// TransactionStatusUnknown is the safe default when the gateway response
	// cannot be interpreted. It is never terminal.
	TransactionStatusUnknown TransactionStatus = "UNKNOWN"
)

// ParseTransactionStatus maps a raw gateway status string to a
// TransactionStatus, degrading to UNKNOWN for anything unrecognized.
func ParseTransactionStatus(s string) TransactionStatus {
	switch TransactionStatus(s) {
	case TransactionStatusPending, TransactionStatusSuccessful, TransactionStatusFailed:
		return TransactionStatus(s)
	default:
		return TransactionStatusUnknown
	}
}

// IsTerminal reports whether no further status change is expected.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusSuccessful || s == TransactionStatusFailed
}

// PaymentStatus represents the status of a payment record.
type PaymentStatus string

const (
	PaymentStatusPaid PaymentStatus = "Paid"
)

// PaymentRecord is the permanent audit row created when a successful charge
// is applied to a waste request. Exactly one is created per (request,
// successful charge) pair.
type PaymentRecord struct {
	ID            string
	RequestID     string
	Amount        float64
	Status        PaymentStatus
	TransactionID string
	PaidAt        time.Time
}
