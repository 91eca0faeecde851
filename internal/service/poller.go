package service

import (
	"context"
	"log"
	"time"

	"wastecollect/internal/domain"
)

// StatusPoller drives outcome discovery for an initiated charge. The gateway
// offers no callbacks, so the client owns the cadence: CheckStatus is one
// tick (the check-status API), Poll runs a bounded loop of ticks for callers
// that want the loop run server-side.
type StatusPoller struct {
	gateway     Gateway
	settlement  Settler
	interval    time.Duration
	maxAttempts int
}

// NewStatusPoller creates a new StatusPoller.
func NewStatusPoller(gateway Gateway, settlement Settler, interval time.Duration, maxAttempts int) *StatusPoller {
	return &StatusPoller{
		gateway:     gateway,
		settlement:  settlement,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// CheckStatusRequest contains the parameters for a status check.
type CheckStatusRequest struct {
	TransactionID string
	ItemIDs       []string
	PayerEmail    string
}

// CheckStatus performs one status tick. On the first observed SUCCESSFUL
// status it settles the named items before returning; FAILED and non-terminal
// statuses are returned as-is with no settlement.
func (p *StatusPoller) CheckStatus(ctx context.Context, req CheckStatusRequest) (domain.TransactionStatus, error) {
	if req.TransactionID == "" {
		return domain.TransactionStatusUnknown, ErrInvalidTransactionID
	}

	result, err := p.gateway.GetStatus(ctx, req.TransactionID)
	if err != nil {
		return domain.TransactionStatusUnknown, err
	}

	if result.Status == domain.TransactionStatusSuccessful && len(req.ItemIDs) > 0 {
		err := p.settlement.Settle(ctx, SettleRequest{
			ItemIDs:       req.ItemIDs,
			TransactionID: req.TransactionID,
			TotalAmount:   result.Amount,
			PayerEmail:    req.PayerEmail,
		})
		if err != nil {
			// Surface so the caller retries the (idempotent) status check.
			return result.Status, err
		}
	}

	return result.Status, nil
}

// Poll runs status ticks until a terminal status, the attempt bound, or
// context cancellation. A transport error on one tick is logged and does not
// terminate the loop. An exhausted bound yields ErrAmbiguousOutcome: the
// charge may still complete gateway-side and must not be reported as failed.
func (p *StatusPoller) Poll(ctx context.Context, req CheckStatusRequest) (domain.TransactionStatus, error) {
	if req.TransactionID == "" {
		return domain.TransactionStatusUnknown, ErrInvalidTransactionID
	}

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.TransactionStatusUnknown, ctx.Err()
			case <-time.After(p.interval):
			}
		}

		result, err := p.gateway.GetStatus(ctx, req.TransactionID)
		if err != nil {
			log.Printf("status tick %d for %s failed: %v", attempt+1, req.TransactionID, err)
			continue
		}

		switch result.Status {
		case domain.TransactionStatusFailed:
			return result.Status, nil

		case domain.TransactionStatusSuccessful:
			if len(req.ItemIDs) > 0 {
				err := p.settlement.Settle(ctx, SettleRequest{
					ItemIDs:       req.ItemIDs,
					TransactionID: req.TransactionID,
					TotalAmount:   result.Amount,
					PayerEmail:    req.PayerEmail,
				})
				if err != nil {
					return result.Status, err
				}
			}
			return result.Status, nil
		}
		// PENDING or UNKNOWN: keep polling.
	}

	return domain.TransactionStatusUnknown, ErrAmbiguousOutcome
}
