// Package apperr defines the domain error taxonomy shared by the services
// and its mapping to HTTP statuses and the structured error response body.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	// NotFound signals a referenced entity (customer, account, branch) is absent.
	NotFound Kind = iota
	// Conflict signals a uniqueness or business-rule clash.
	Conflict
	// InsufficientBalance signals a debit exceeding the available funds.
	InsufficientBalance
	// InvalidValue signals a missing or non-positive monetary amount.
	InvalidValue
	// InvalidType signals an unrecognised account type.
	InvalidType
	// Repository wraps an unexpected persistence failure, preserving its cause.
	Repository
)

// Error is a classified domain error. Repository errors carry the underlying
// persistence failure as Cause; domain rule violations carry none.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a domain error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an unexpected persistence failure, keeping cause for diagnostics.
func Wrap(message string, cause error) *Error {
	return &Error{Kind: Repository, Message: message, Cause: cause}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps a domain error to its response status. Anything that is not
// a classified domain error is treated as an internal failure.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case InsufficientBalance, InvalidValue, InvalidType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Response is the error body returned by every endpoint.
type Response struct {
	Status  int     `json:"status"`
	Message string  `json:"message"`
	Cause   *string `json:"cause"`
}

// ToResponse builds the structured error body for err.
func ToResponse(err error) Response {
	status := HTTPStatus(err)
	var e *Error
	if !errors.As(err, &e) {
		return Response{Status: status, Message: err.Error()}
	}
	resp := Response{Status: status, Message: e.Message}
	if e.Cause != nil {
		cause := e.Cause.Error()
		resp.Cause = &cause
	}
	return resp
}
