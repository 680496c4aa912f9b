package models

import "fmt"

// User-facing messages for client-side rejections.
const (
	ErrMsgQuantityPositive   = "quantity must be greater than zero"
	ErrMsgInsufficientStock  = "insufficient stock: only %d units available"
	ErrMsgMergedExceedsStock = "total quantity exceeds available stock: only %d units available"
	ErrMsgProductNotLoaded   = "product %d is not in the loaded catalog"
	ErrMsgNameRequired       = "name is required"
	ErrMsgBrandRequired      = "brand is required"
	ErrMsgBrandNeedsLetter   = "brand must contain at least one letter"
	ErrMsgInvalidCategory    = "invalid category"
	ErrMsgPriceNegative      = "price cannot be negative"
	ErrMsgQuantityNegative   = "quantity cannot be negative"
	ErrMsgExpiryAndWarranty  = "a product has either an expiration date or a warranty, not both"
	ErrMsgWarrantyPositive   = "warranty must be at least one month"
)

// ValidationError is a client-side rejection: the operation never reaches the backend.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func NewValidationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
