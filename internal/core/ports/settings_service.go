package ports

import (
	"context"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// ProfileInput holds the editable name fields.
type ProfileInput struct {
	FirstName  string
	MiddleName string
	LastName   string
}

// SettingsService edits account settings for the authenticated user.
type SettingsService interface {
	Get(ctx context.Context, userID string) (*domain.Settings, error)
	ChangeEmail(ctx context.Context, userID, currentEmail, newEmail string) error
	ChangePhone(ctx context.Context, userID, phone string) error
	ChangeAddress(ctx context.Context, userID string, address domain.Address) error
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) error
	UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ChangeLanguage(ctx context.Context, userID, language string) error
}
