package dto

import "net/http"

// Error codes returned in ErrorInfo.Code.
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Request error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Stock and order rule error codes
const (
	// ErrCodeInvalidState is used when an operation is not allowed in the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeEmptyOrder is used when an order without line items is validated
	ErrCodeEmptyOrder = "ERR_EMPTY_ORDER"
	// ErrCodeInsufficientStock is used when a change would leave on-hand below zero or below reserved
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	// Stock shortfalls and empty orders are 400, state conflicts 422
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeEmptyOrder:        http.StatusBadRequest,
	ErrCodeInsufficientStock: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodes maps domain error codes to API error codes
var DomainErrorCodes = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeAlreadyExists,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_STATE":      ErrCodeInvalidState,
	"EMPTY_ORDER":        ErrCodeEmptyOrder,
	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,
	"VALIDATION_ERROR":   ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to its API form.
// Codes that are already in API form, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodes[code]; ok {
		return apiCode
	}
	return code
}
