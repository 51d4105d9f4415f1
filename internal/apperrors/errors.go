package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing, expired or invalid session token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrNetwork indicates the backend could not be reached or the response could not be read.
var ErrNetwork = errors.New("network error")

// ErrRejected indicates the backend refused the request on a business rule.
var ErrRejected = errors.New("request rejected")

var (
	ErrInsufficientFunds   = fmt.Errorf("%w: insufficient balance", ErrRejected)
	ErrContributionsClosed = fmt.Errorf("%w: contributions are closed", ErrRejected)
	ErrAlreadyDisbursed    = fmt.Errorf("%w: funds already disbursed", ErrRejected)
	ErrNoFunds             = fmt.Errorf("%w: no funds available for disbursement", ErrRejected)
	ErrMissingBeneficiary  = fmt.Errorf("%w: no beneficiary assigned", ErrValidation)
	ErrInvalidState        = fmt.Errorf("%w: not allowed in the current state", ErrValidation)
)

// Re-authentication outcomes.
var (
	ErrChallengeCancelled = errors.New("challenge cancelled")
	ErrChallengeFailed    = errors.New("challenge failed")
	ErrReauthDeclined     = errors.New("re-authentication declined")
)

// ErrStale marks a result dropped because a newer action replaced the state it would update.
var ErrStale = fmt.Errorf("%w: superseded by a newer action", context.Canceled)

// ServerError carries the status and message returned by the backend.
type ServerError struct {
	Status  int
	Message string
	Cause   error
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d: %v", e.Status, e.Cause)
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

func (e *ServerError) Unwrap() error {
	return e.Cause
}

// NewServerError classifies an HTTP status into one of the sentinel errors.
func NewServerError(status int, message string) *ServerError {
	var cause error
	switch {
	case status == http.StatusUnauthorized:
		cause = ErrUnauthorized
	case status == http.StatusForbidden:
		cause = ErrForbidden
	case status == http.StatusNotFound:
		cause = ErrNotFound
	case status == http.StatusConflict:
		cause = ErrDuplicate
	case status >= 400 && status < 500:
		cause = ErrRejected
	default:
		cause = ErrNetwork
	}
	return &ServerError{Status: status, Message: message, Cause: cause}
}

// MessageOf returns the backend-supplied message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return fallback
}

// DetailedError pairs a sentinel with a message the backend may return to clients.
type DetailedError struct {
	Cause  error
	Detail string
}

func (e *DetailedError) Error() string {
	return e.Detail
}

func (e *DetailedError) Unwrap() error {
	return e.Cause
}

// WithDetail wraps cause with a client-facing message.
func WithDetail(cause error, detail string) error {
	return &DetailedError{Cause: cause, Detail: detail}
}

// DetailOf returns the client-facing message carried by err, if any.
func DetailOf(err error) (string, bool) {
	var detailed *DetailedError
	if errors.As(err, &detailed) {
		return detailed.Detail, true
	}
	return "", false
}
