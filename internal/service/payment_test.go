package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"wastecollect/internal/momo"
)

func TestInitiate_ValidRequestReturnsTransactionID(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	gateway.TransactionID = "txn-abc"

	svc := NewPaymentService(gateway)

	txnID, err := svc.Initiate(context.Background(), InitiatePaymentRequest{
		Phone:  "233540000000",
		Amount: 10.00,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txnID != "txn-abc" {
		t.Errorf("expected txn-abc, got %s", txnID)
	}
	if atomic.LoadInt32(&gateway.RequestToPayCallCount) != 1 {
		t.Error("expected one gateway call")
	}
}

func TestInitiate_PhoneValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phone   string
		wantErr error
	}{
		{name: "minimum length accepted", phone: "12345678", wantErr: nil},
		{name: "maximum length accepted", phone: "123456789012345", wantErr: nil},
		{name: "too short rejected", phone: "1234567", wantErr: ErrInvalidPhone},
		{name: "too long rejected", phone: "1234567890123456", wantErr: ErrInvalidPhone},
		{name: "empty rejected", phone: "", wantErr: ErrInvalidPhone},
		{name: "plus prefix rejected", phone: "+233540000000", wantErr: ErrInvalidPhone},
		{name: "letters rejected", phone: "23354000000a", wantErr: ErrInvalidPhone},
		{name: "spaces rejected", phone: "2335 4000 000", wantErr: ErrInvalidPhone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewPaymentService(NewMockGateway())
			_, err := svc.Initiate(context.Background(), InitiatePaymentRequest{
				Phone:  tt.phone,
				Amount: 10.00,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("phone %q: expected error %v, got %v", tt.phone, tt.wantErr, err)
			}
		})
	}
}

func TestInitiate_AmountValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  float64
		wantErr error
	}{
		{name: "positive accepted", amount: 0.01, wantErr: nil},
		{name: "zero rejected", amount: 0, wantErr: ErrInvalidAmount},
		{name: "negative rejected", amount: -5.00, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gateway := NewMockGateway()
			svc := NewPaymentService(gateway)
			_, err := svc.Initiate(context.Background(), InitiatePaymentRequest{
				Phone:  "233540000000",
				Amount: tt.amount,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("amount %.2f: expected error %v, got %v", tt.amount, tt.wantErr, err)
			}

			if tt.wantErr != nil && atomic.LoadInt32(&gateway.RequestToPayCallCount) != 0 {
				t.Error("expected no gateway call for invalid amount")
			}
		})
	}
}

func TestInitiate_GatewayErrorPropagates(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	gateway.RequestToPayError = &momo.GatewayError{Operation: "requesttopay", StatusCode: 500, Body: "internal error"}

	svc := NewPaymentService(gateway)

	txnID, err := svc.Initiate(context.Background(), InitiatePaymentRequest{
		Phone:  "233540000000",
		Amount: 10.00,
	})

	var gatewayErr *momo.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if txnID != "" {
		t.Errorf("expected no transaction id on failure, got %s", txnID)
	}
}
