package apperrors

import (
	"context"
	"errors"
)

// Kind is the outcome class of a client-side operation.
type Kind int

const (
	KindSuccess Kind = iota
	KindValidation
	KindNetwork
	KindUnauthorized
	KindRejected
	KindNotFound
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindRejected:
		return "rejected"
	case KindNotFound:
		return "not_found"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// KindOf classifies err. Unknown errors are treated as network failures.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindSuccess
	case errors.Is(err, ErrChallengeCancelled), errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrRejected), errors.Is(err, ErrForbidden), errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrChallengeFailed), errors.Is(err, ErrReauthDeclined):
		return KindRejected
	default:
		return KindNetwork
	}
}
