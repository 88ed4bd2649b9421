package ports

import (
	"context"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// OtpRepository persists verification codes. Lookups return
// domain.ErrOtpNotFound when no record matches.
type OtpRepository interface {
	Create(ctx context.Context, record *domain.OtpRecord) error
	// FindByUserAndCode matches both fields exactly.
	FindByUserAndCode(ctx context.Context, userID, code string) (*domain.OtpRecord, error)
	// Delete removes a record and reports whether it was still present.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteByUser removes every record of the user and returns how many
	// were removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
