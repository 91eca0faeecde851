package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"wastecollect/internal/service"
	"wastecollect/internal/validation"
)

// CartHandler handles HTTP requests for checkout carts.
type CartHandler struct {
	cartService *service.CartService
	validate    *validatorv10.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *service.CartService, validate *validatorv10.Validate) *CartHandler {
	return &CartHandler{cartService: cartService, validate: validate}
}

// AddItemRequest is the HTTP request body for adding a request to a cart.
type AddItemRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	RequestID string `json:"request_id" validate:"required"`
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	err := h.cartService.AddToCart(c.Request.Context(), req.SessionID, req.RequestID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCart handles GET /v1/cart?session_id= or ?user_id=
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.Query("user_id")
	sessionID := c.Query("session_id")

	items, err := h.cartService.GetCartItems(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]RequestResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toRequestResponse(item))
	}

	respondJSON(c, http.StatusOK, out)
}
