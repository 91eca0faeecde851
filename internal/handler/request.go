package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"wastecollect/internal/domain"
	"wastecollect/internal/repository"
	"wastecollect/internal/validation"
)

// RequestHandler handles HTTP requests for waste-collection requests.
type RequestHandler struct {
	requests repository.RequestRepository
	payments repository.PaymentRepository
	validate *validatorv10.Validate
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requests repository.RequestRepository, payments repository.PaymentRepository, validate *validatorv10.Validate) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		payments: payments,
		validate: validate,
	}
}

// CreateRequestBody is the HTTP request body for creating a waste request.
type CreateRequestBody struct {
	UserID      string     `json:"user_id,omitempty"`
	GuestName   string     `json:"guest_name,omitempty"`
	GuestPhone  string     `json:"guest_phone,omitempty" validate:"omitempty,msisdn"`
	Location    string     `json:"location" validate:"required"`
	WasteType   string     `json:"waste_type" validate:"required"`
	Notes       string     `json:"notes,omitempty"`
	PreferredAt *time.Time `json:"preferred_at,omitempty"`
}

// RequestResponse is the HTTP representation of a waste request.
type RequestResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id,omitempty"`
	GuestName   string     `json:"guest_name,omitempty"`
	Location    string     `json:"location"`
	WasteType   string     `json:"waste_type"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	PreferredAt *time.Time `json:"preferred_at,omitempty"`
}

// PaymentRecordResponse is the HTTP representation of a payment record.
type PaymentRecordResponse struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"request_id"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}

// Create handles POST /v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := validation.BindAndValidate(c, &body, h.validate); err != nil {
		return
	}

	request := &domain.WasteRequest{
		ID:          uuid.New().String(),
		UserID:      body.UserID,
		GuestName:   body.GuestName,
		GuestPhone:  body.GuestPhone,
		Location:    body.Location,
		WasteType:   body.WasteType,
		Status:      domain.RequestStatusPending,
		Notes:       body.Notes,
		RequestedAt: time.Now(),
		PreferredAt: body.PreferredAt,
	}

	if err := h.requests.Create(c.Request.Context(), request); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRequestResponse(request))
}

// ListPending handles GET /v1/requests?user_id=
func (h *RequestHandler) ListPending(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
		return
	}

	requests, err := h.requests.FindPendingByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]RequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, toRequestResponse(request))
	}

	respondJSON(c, http.StatusOK, out)
}

// ListPayments handles GET /v1/requests/:id/payments
func (h *RequestHandler) ListPayments(c *gin.Context) {
	requestID := c.Param("id")

	// 404 for unknown requests rather than an empty payment list.
	if _, err := h.requests.GetByID(c.Request.Context(), requestID); err != nil {
		respondError(c, err)
		return
	}

	records, err := h.payments.ListByRequestID(c.Request.Context(), requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PaymentRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, PaymentRecordResponse{
			ID:            record.ID,
			RequestID:     record.RequestID,
			Amount:        record.Amount,
			Status:        string(record.Status),
			TransactionID: record.TransactionID,
			PaidAt:        record.PaidAt,
		})
	}

	respondJSON(c, http.StatusOK, out)
}

func toRequestResponse(request *domain.WasteRequest) RequestResponse {
	return RequestResponse{
		ID:          request.ID,
		UserID:      request.UserID,
		GuestName:   request.GuestName,
		Location:    request.Location,
		WasteType:   request.WasteType,
		Status:      string(request.Status),
		Notes:       request.Notes,
		RequestedAt: request.RequestedAt,
		PreferredAt: request.PreferredAt,
	}
}
