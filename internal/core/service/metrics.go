package service

import (
	"errors"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// outcome labels a result for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrAlreadyVerified):
		return "already_verified"
	case errors.Is(err, domain.ErrInvalidCode):
		return "invalid"
	case errors.Is(err, domain.ErrCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrTokenMismatch):
		return "invalid"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "rejected"
	default:
		return "error"
	}
}
