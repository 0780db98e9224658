package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindUnauthorized      Kind = "unauthorized"
	KindRequestFailed     Kind = "request_failed"
	KindDecodeFailure     Kind = "decode_failure"
	KindDuplicateCartLine Kind = "duplicate_cart_line"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the sentinels
// below work with errors.Is regardless of message or status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(kind Kind, status int, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// Sentinels for errors.Is checks. Never mutate them; build new values with the
// constructors instead.
var (
	ErrMissingCredential = New(KindMissingCredential, 0, "Missing token in auth response", nil)
	ErrUnauthorized      = New(KindUnauthorized, http.StatusUnauthorized, "Unauthorized", nil)
	ErrRequestFailed     = New(KindRequestFailed, 0, "Request failed", nil)
	ErrDecodeFailure     = New(KindDecodeFailure, 0, "Decode failure", nil)
	ErrDuplicateCartLine = New(KindDuplicateCartLine, 0, "Already in cart", nil)
	ErrInvalidInput      = New(KindInvalidInput, 0, "Invalid input", nil)
	ErrNotFound          = New(KindNotFound, 0, "Not found", nil)
)

func MissingCredential() *Error {
	return New(KindMissingCredential, 0, ErrMissingCredential.Message, nil)
}

func Unauthorized() *Error {
	return New(KindUnauthorized, http.StatusUnauthorized, ErrUnauthorized.Message, nil)
}

// RequestFailed builds the error returned for a non-2xx response. status is 0
// when no response was received at all.
func RequestFailed(status int, message string, err error) *Error {
	return New(KindRequestFailed, status, message, err)
}

func DecodeFailure(what string, err error) *Error {
	return New(KindDecodeFailure, 0, "failed to decode "+what, err)
}

func DuplicateCartLine(productID string) *Error {
	return New(KindDuplicateCartLine, 0, fmt.Sprintf("product %s is already in the cart", productID), nil)
}

func InvalidInput(message string) *Error {
	return New(KindInvalidInput, 0, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, 0, message, nil)
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus maps an error to the status the local host answers with.
func HTTPStatus(err error) int {
	var e *Error
	if !As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindMissingCredential, KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateCartLine:
		return http.StatusConflict
	case KindRequestFailed:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
