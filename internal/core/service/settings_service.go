package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type settingsService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	sink   ports.NotificationSink
	log    zerolog.Logger
}

// NewSettingsService returns a SettingsService. Every change goes through a
// field-group update so unrelated settings are never overwritten.
func NewSettingsService(repo ports.UserRepository, hasher ports.PasswordHasher, sink ports.NotificationSink, log zerolog.Logger) ports.SettingsService {
	return &settingsService{repo: repo, hasher: hasher, sink: sink, log: log}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings := user.Settings
	return &settings, nil
}

// ChangeEmail moves the account to newEmail and marks it unverified.
func (s *settingsService) ChangeEmail(ctx context.Context, userID, currentEmail, newEmail string) error {
	currentEmail = strings.ToLower(strings.TrimSpace(currentEmail))
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Email != currentEmail {
		return domain.ErrInvalidCredentials
	}
	if newEmail == currentEmail {
		return domain.ErrSameEmail
	}
	if _, err := s.repo.FindByEmail(ctx, newEmail); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("change email: %w", err)
	}

	if err := s.repo.UpdateEmail(ctx, userID, newEmail); err != nil {
		return fmt.Errorf("change email: %w", err)
	}

	s.notify(user, newEmail, "Email Changed",
		fmt.Sprintf("Your account email was changed from %s to %s. Please verify your new address.", currentEmail, newEmail))
	s.log.Info().Str("user_id", userID).Msg("email changed")
	return nil
}

func (s *settingsService) ChangePhone(ctx context.Context, userID, phone string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePhone(ctx, userID, phone); err != nil {
		return fmt.Errorf("change phone: %w", err)
	}
	s.notify(user, user.Email, "Phone Number Changed", "The phone number on your account has been updated.")
	return nil
}

func (s *settingsService) ChangeAddress(ctx context.Context, userID string, address domain.Address) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateAddress(ctx, userID, address); err != nil {
		return fmt.Errorf("change address: %w", err)
	}
	s.notify(user, user.Email, "Address Changed", "The address on your account has been updated.")
	return nil
}

func (s *settingsService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileInput) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.UpdateProfile(ctx, userID, in.FirstName, in.MiddleName, in.LastName); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *settingsService) UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.UpdatePreferences(ctx, userID, prefs); err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}

// ChangePassword requires the current password.
func (s *settingsService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if s.hasher.Compare(user.PasswordHash, currentPassword) != nil {
		return domain.ErrInvalidCredentials
	}
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.notify(user, user.Email, "Password Changed",
		"Your password has been changed successfully. If you did not make this change, contact support immediately.")
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *settingsService) ChangeLanguage(ctx context.Context, userID, language string) error {
	if !domain.SupportsLanguage(language) {
		return domain.ErrUnsupportedLang
	}
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.UpdateLanguage(ctx, userID, language); err != nil {
		return fmt.Errorf("change language: %w", err)
	}
	return nil
}

// notify sends a change notice when the user opted into email notifications.
func (s *settingsService) notify(user *domain.User, to, subject, body string) {
	if !user.Settings.NotificationsEmail {
		return
	}
	s.sink.Notify(ports.Notification{From: ports.AliasSupport, To: to, Subject: subject, Body: body})
}
