package ports

import (
	"context"
	"time"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Each update method
// touches a single field group so concurrent edits to unrelated settings do
// not overwrite each other.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists on a taken email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)

	// SetSession stores the current session token (empty clears it) and,
	// when lastLogin is non-zero, the login time.
	SetSession(ctx context.Context, id, token string, lastLogin time.Time) error

	// MarkVerified flips settings.verified from false to true. It reports
	// false when the user was already verified.
	MarkVerified(ctx context.Context, id string) (bool, error)

	// SetResetToken replaces the canonical password reset token.
	SetResetToken(ctx context.Context, id, token string) error

	// ConsumeResetToken writes passwordHash and clears the reset token only
	// if the stored token still equals token. It reports whether it matched.
	ConsumeResetToken(ctx context.Context, id, token, passwordHash string) (bool, error)

	// UpdateEmail changes the email and marks the account unverified.
	UpdateEmail(ctx context.Context, id, email string) error
	UpdatePhone(ctx context.Context, id, phone string) error
	UpdateAddress(ctx context.Context, id string, address domain.Address) error
	UpdateProfile(ctx context.Context, id, firstName, middleName, lastName string) error
	UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) error
	UpdateLanguage(ctx context.Context, id, language string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
