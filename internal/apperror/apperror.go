// Package apperror defines the failure kinds the admin API reports and how
// each maps onto an HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindPersistence  Kind = "persistence"
	KindRateLimited  Kind = "rate_limited"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

var statusByKind = map[Kind]int{
	KindUnauthorized: http.StatusUnauthorized,
	KindNotFound:     http.StatusNotFound,
	KindValidation:   http.StatusUnprocessableEntity,
	KindPersistence:  http.StatusInternalServerError,
	KindRateLimited:  http.StatusTooManyRequests,
	KindUnavailable:  http.StatusServiceUnavailable,
	KindInternal:     http.StatusInternalServerError,
}

// FieldError is a single field-level violation.
type FieldError struct {
	Field        string `json:"field"`
	ErrorMessage string `json:"errorMessage"`
}

type Error struct {
	kind    Kind
	message string
	fields  []FieldError
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{kind: kind, message: message, cause: err}
}

func Unauthorized() *Error {
	return New(KindUnauthorized, "Not Authorized")
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Persistence(err error, message string) *Error {
	return Wrap(KindPersistence, err, message)
}

func Validation(fields ...FieldError) *Error {
	return &Error{kind: KindValidation, message: "Validation Error", fields: fields}
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindInternal
	}
	return e.kind
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Fields() []FieldError {
	if e == nil {
		return nil
	}
	return e.fields
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// HTTPStatus returns the status code the kind is reported with.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind()]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// As returns the *Error in err's chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	typed := As(err)
	return typed != nil && typed.kind == kind
}
