package dto

import "net/http"

// Error code constants returned in the error envelope.
const (
	ErrCodeInternal            = "ERR_INTERNAL"
	ErrCodeValidation          = "ERR_VALIDATION"
	ErrCodeUnauthorized        = "ERR_UNAUTHORIZED"
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeNotInitialized      = "ERR_NOT_INITIALIZED"
	ErrCodeRateLimited         = "ERR_RATE_LIMITED"
	ErrCodeUpstreamRejected    = "ERR_UPSTREAM_REJECTED"
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamContract    = "ERR_UPSTREAM_CONTRACT"
)

// httpStatusByCode maps error codes to HTTP status codes.
var httpStatusByCode = map[string]int{
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeNotInitialized:      http.StatusConflict,
	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeUpstreamRejected:    http.StatusUnprocessableEntity,
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
	ErrCodeUpstreamContract:    http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500.
func GetHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
