package dto

import (
	"net/http"
	"strings"
)

// Error codes shared between the domain layer and the HTTP contract.
// Domain errors carry these codes verbatim; the tables below are the only
// place they become HTTP statuses.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeUnavailable        = "UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Input validation -> 400
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	"BAD_REQUEST":       http.StatusBadRequest,

	// Authentication -> 401
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	"TOKEN_EXPIRED":           http.StatusUnauthorized,
	"TOKEN_INVALID":           http.StatusUnauthorized,
	"TOKEN_REVOKED":           http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":       http.StatusUnauthorized,

	// Authorization -> 403
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"ACCOUNT_PENDING":     http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	// Missing resources -> 404
	ErrCodeNotFound:   http.StatusNotFound,
	"OUT_OF_COVERAGE": http.StatusNotFound,
	"NO_TARIFF":       http.StatusNotFound,

	// Conflicting state with existing data -> 409
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConflict:           http.StatusConflict,
	"CONCURRENCY_CONFLICT":    http.StatusConflict,
	"CIRCULAR_REFERENCE":      http.StatusConflict,
	"HAS_CHILDREN":            http.StatusConflict,
	"IN_USE":                  http.StatusConflict,
	"ROLE_IN_USE":             http.StatusConflict,
	"SYSTEM_ROLE":             http.StatusConflict,
	"ALREADY_CHECKED_IN":      http.StatusConflict,
	"NOT_CHECKED_IN":          http.StatusConflict,
	"EMPLOYEE_ALREADY_LINKED": http.StatusConflict,

	// Business rule violations -> 422
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE": http.StatusUnprocessableEntity,
	"UNPROCESSABLE":        http.StatusUnprocessableEntity,
	"INVALID_HIERARCHY":    http.StatusUnprocessableEntity,
	"MAX_DEPTH_EXCEEDED":   http.StatusUnprocessableEntity,
	"HEADCOUNT_EXCEEDED":   http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":   http.StatusUnprocessableEntity,

	// Throttling -> 429
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Downstream dependencies -> 503
	"RENDER_FAILED":    http.StatusServiceUnavailable,
	ErrCodeUnavailable: http.StatusServiceUnavailable,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus resolves the HTTP status for an error code. Codes not in
// the table fall back to a classification by naming convention, so that
// fine-grained domain codes (INVALID_GRADE, DIVISION_NOT_FOUND, ...) land
// on the right status class without enumerating each one.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_EXISTS"), strings.HasPrefix(code, "ALREADY_"),
		strings.HasPrefix(code, "HAS_"), strings.HasPrefix(code, "DUPLICATE_"):
		return http.StatusConflict
	case strings.HasPrefix(code, "TOKEN_"):
		return http.StatusUnauthorized
	case strings.HasPrefix(code, "CANNOT_"), strings.HasPrefix(code, "EXCEEDS_"):
		return http.StatusUnprocessableEntity
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
