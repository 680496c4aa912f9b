package services

import (
	"errors"
	"estoque-console/models"
	"estoque-console/repositories"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindTransport
	KindRejected
	KindMalformed
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

const (
	MsgSaleFailed         = "failed to complete sale"
	MsgBackendUnavailable = "inventory service unavailable"
	MsgBackendMalformed   = "unexpected response from inventory service"
	MsgOperationInFlight  = "an operation on this product is already in progress"
	MsgSubmitInProgress   = "sale submission already in progress"
	MsgEmptyCart          = "add at least one item before completing the sale"
	MsgDraftNotFound      = "sale draft not found"
	MsgOrderNotFound      = "order not found"
)

// Error is what services hand to controllers: a kind, the message shown to the
// operator, and the underlying cause.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status the console answers with for this error.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindRejected:
		if e.Status >= 400 && e.Status < 600 {
			return e.Status
		}
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

var (
	ErrEmptyCart            = &Error{Kind: KindValidation, Message: MsgEmptyCart}
	ErrSubmissionInProgress = &Error{Kind: KindConflict, Message: MsgSubmitInProgress}
	ErrDraftNotFound        = &Error{Kind: KindNotFound, Message: MsgDraftNotFound}
	ErrOrderNotFound        = &Error{Kind: KindNotFound, Message: MsgOrderNotFound}
	ErrOperationInFlight    = &Error{Kind: KindConflict, Message: MsgOperationInFlight}
)

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// classify maps a model or repository error onto the taxonomy. fallback is the
// message shown when the inventory API rejected without one of its own.
func classify(err error, fallback string) *Error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return &Error{Kind: KindValidation, Message: validation.Message, Err: err}
	}

	var apiErr *repositories.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		if apiErr.StatusCode >= 500 {
			return &Error{Kind: KindTransport, Status: apiErr.StatusCode, Message: message, Err: err}
		}
		if apiErr.StatusCode == http.StatusNotFound {
			return &Error{Kind: KindNotFound, Status: apiErr.StatusCode, Message: message, Err: err}
		}
		return &Error{Kind: KindRejected, Status: apiErr.StatusCode, Message: message, Err: err}
	}

	if errors.Is(err, repositories.ErrMalformedResponse) {
		return &Error{Kind: KindMalformed, Message: fallback, Err: err}
	}
	return &Error{Kind: KindTransport, Message: fallback, Err: err}
}
