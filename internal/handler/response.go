package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wastecollect/internal/momo"
	"wastecollect/internal/repository"
	"wastecollect/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/gateway errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var gatewayErr *momo.GatewayError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidTransactionID),
		errors.Is(err, service.ErrInvalidSessionID),
		errors.Is(err, service.ErrInvalidRequestID):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrRequestNotPending),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Gateway failures: nothing changed on our side, the upstream misbehaved.
	case errors.Is(err, momo.ErrAuth), errors.As(err, &gatewayErr):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
