package utils

import "errors"

// Common application errors used across stores and services.
var (
	ErrLoginRequired    = errors.New("LOGIN_REQUIRED")
	ErrSessionExpired   = errors.New("SESSION_EXPIRED")
	ErrInvalidRequest   = errors.New("INVALID_REQUEST")
	ErrValidationFailed = errors.New("VALIDATION_FAILED")
	ErrProductNotFound  = errors.New("PRODUCT_NOT_FOUND")
	ErrCartEmpty        = errors.New("CART_EMPTY")
	ErrSlotUnavailable  = errors.New("SLOT_UNAVAILABLE")
	ErrStepIncomplete   = errors.New("STEP_INCOMPLETE")
	ErrBackendRejected  = errors.New("BACKEND_REJECTED")
	ErrBackendDown      = errors.New("BACKEND_UNAVAILABLE")
)
