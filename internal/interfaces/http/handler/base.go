package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldenhour/backend/internal/domain/billing"
	"github.com/goldenhour/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with collection meta.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total))
}

// Created sends a 201 created response.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response, deriving the status code from the error code.
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, getRequestID(c)))
}

// BadRequest sends a 400 validation error response.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeValidation, message)
}

// HandleBillingError maps the provider error taxonomy to HTTP responses.
// Error messages are preserved verbatim; they carry the provider's own
// descriptions of what was rejected or missing.
func (h *BaseHandler) HandleBillingError(c *gin.Context, err error) {
	var code string
	switch {
	case errors.Is(err, billing.ErrInvalidInput):
		code = dto.ErrCodeValidation
	case errors.Is(err, billing.ErrUnauthorized):
		code = dto.ErrCodeUnauthorized
	case errors.Is(err, billing.ErrBusinessNotFound), errors.Is(err, billing.ErrAccountNotFound):
		code = dto.ErrCodeNotFound
	case errors.Is(err, billing.ErrNotInitialized):
		code = dto.ErrCodeNotInitialized
	case errors.Is(err, billing.ErrRateLimited):
		code = dto.ErrCodeRateLimited
	case errors.Is(err, billing.ErrProviderRejected):
		code = dto.ErrCodeUpstreamRejected
	case errors.Is(err, billing.ErrInvalidResponse):
		code = dto.ErrCodeUpstreamContract
	case errors.Is(err, billing.ErrProviderUnavailable):
		code = dto.ErrCodeUpstreamUnavailable
	default:
		code = dto.ErrCodeInternal
	}
	h.Error(c, code, err.Error())
}
