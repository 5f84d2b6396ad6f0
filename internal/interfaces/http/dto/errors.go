package dto

import (
	"net/http"
	"strings"
)

// Handler-level error codes. Domain errors carry their own codes; these
// cover failures that happen before a request reaches the domain.
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when the request body cannot be parsed
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes
// absent from the map fall back by prefix in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeInternal:    http.StatusInternalServerError,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule errors
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"CIRCULAR_REFERENCE": http.StatusUnprocessableEntity,
	"SELF_REFERENCE":     http.StatusUnprocessableEntity,
	"SUPPLY_IN_USE":      http.StatusConflict,
	"ACCOUNT_CLOSED":     http.StatusUnprocessableEntity,
	"ALREADY_ATTACHED":   http.StatusConflict,
	"EMPTY_ORDER":        http.StatusBadRequest,
	"EMPTY_RECIPE":       http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Validation-style codes map to 400; anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
