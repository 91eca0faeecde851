package momo

import (
	"errors"
	"fmt"
)

// ErrAuth is returned when the gateway rejects the configured credentials or
// a bearer token. Callers holding a cached token invalidate it and retry once.
var ErrAuth = errors.New("gateway rejected credentials")

// GatewayError is returned for any non-2xx gateway response that is not an
// authentication failure, and for transport-level failures. No payment state
// has changed when it is returned from RequestToPay.
type GatewayError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("momo %s: transport failure: %s", e.Operation, e.Body)
	}
	return fmt.Sprintf("momo %s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
}
