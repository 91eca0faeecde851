package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"wastecollect/internal/service"
	"wastecollect/internal/validation"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
	poller         *service.StatusPoller
	validate       *validatorv10.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService, poller *service.StatusPoller, validate *validatorv10.Validate) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		poller:         poller,
		validate:       validate,
	}
}

// InitiatePaymentRequest is the HTTP request body for starting a charge.
type InitiatePaymentRequest struct {
	Phone   string   `json:"phone" validate:"required,msisdn"`
	Amount  float64  `json:"amount" validate:"required,gt=0"`
	ItemIDs []string `json:"item_ids,omitempty"`
	Email   string   `json:"email,omitempty" validate:"omitempty,email"`
}

// InitiatePaymentResponse is the HTTP response for a started charge.
type InitiatePaymentResponse struct {
	TransactionID string   `json:"transaction_id"`
	ItemIDs       []string `json:"item_ids,omitempty"`
}

// StatusResponse is the HTTP response for status checks.
type StatusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// InitiatePayment handles POST /v1/payments
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	transactionID, err := h.paymentService.Initiate(c.Request.Context(), service.InitiatePaymentRequest{
		Phone:  req.Phone,
		Amount: req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, InitiatePaymentResponse{
		TransactionID: transactionID,
		ItemIDs:       req.ItemIDs,
	})
}

// CheckStatus handles GET /v1/payments/:id/status
// One poll tick, client-driven; settles as a side effect when the gateway
// reports SUCCESSFUL and item ids were supplied.
func (h *PaymentHandler) CheckStatus(c *gin.Context) {
	status, err := h.poller.CheckStatus(c.Request.Context(), service.CheckStatusRequest{
		TransactionID: c.Param("id"),
		ItemIDs:       splitIDs(c.Query("item_ids")),
		PayerEmail:    c.Query("email"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StatusResponse{Status: string(status)})
}

// WaitRequest is the HTTP request body for a server-side poll loop.
type WaitRequest struct {
	ItemIDs []string `json:"item_ids,omitempty"`
	Email   string   `json:"email,omitempty" validate:"omitempty,email"`
}

// WaitForOutcome handles POST /v1/payments/:id/wait
// Runs a bounded poll loop. An exhausted bound is reported as UNKNOWN with
// an advisory detail; it is not a failure.
func (h *PaymentHandler) WaitForOutcome(c *gin.Context) {
	var req WaitRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	status, err := h.poller.Poll(c.Request.Context(), service.CheckStatusRequest{
		TransactionID: c.Param("id"),
		ItemIDs:       req.ItemIDs,
		PayerEmail:    req.Email,
	})
	if err != nil {
		if errors.Is(err, service.ErrAmbiguousOutcome) {
			respondJSON(c, http.StatusOK, StatusResponse{
				Status: string(status),
				Detail: "status unknown, check again later",
			})
			return
		}
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StatusResponse{Status: string(status)})
}

// splitIDs parses a comma-separated id list, dropping empty segments.
func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
