package service

import (
	"context"
	"errors"
	"testing"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

func newSettingsFixture(users ...*domain.User) (ports.SettingsService, *stubUserRepo, *recordingSink) {
	repo := newStubUserRepo(users...)
	sink := &recordingSink{}
	return NewSettingsService(repo, plainHasher{}, sink, discardLogger), repo, sink
}

func TestSettingsService_ChangeEmail(t *testing.T) {
	u := newCustomer("u1", "ada@example.com")
	u.Settings.Verified = true
	svc, repo, sink := newSettingsFixture(u, newCustomer("u2", "taken@example.com"))

	if err := svc.ChangeEmail(context.Background(), "u1", "ada@example.com", "ada@example.com"); !errors.Is(err, domain.ErrSameEmail) {
		t.Fatalf("expected ErrSameEmail, got %v", err)
	}
	if err := svc.ChangeEmail(context.Background(), "u1", "ada@example.com", "taken@example.com"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if err := svc.ChangeEmail(context.Background(), "u1", "wrong@example.com", "new@example.com"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangeEmail(context.Background(), "u1", "ada@example.com", "New@Example.com"); err != nil {
		t.Fatalf("ChangeEmail: %v", err)
	}
	got := repo.users["u1"]
	if got.Email != "new@example.com" || got.Settings.Verified {
		t.Errorf("expected new unverified email, got %+v", got)
	}
	if len(sink.sent) != 1 || sink.sent[0].To != "new@example.com" {
		t.Errorf("expected notice to the new address, got %+v", sink.sent)
	}
}

func TestSettingsService_ChangePassword(t *testing.T) {
	svc, repo, sink := newSettingsFixture(newCustomer("u1", "ada@example.com"))

	if err := svc.ChangePassword(context.Background(), "u1", "wrong", "next"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), "u1", "secret", "next"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if repo.users["u1"].PasswordHash != "hashed:next" {
		t.Errorf("expected password updated")
	}
	if len(sink.sent) != 1 || sink.sent[0].Subject != "Password Changed" {
		t.Errorf("expected change notice, got %+v", sink.sent)
	}
}

func TestSettingsService_NoticesRespectPreference(t *testing.T) {
	u := newCustomer("u1", "ada@example.com")
	u.Settings.NotificationsEmail = false
	svc, repo, sink := newSettingsFixture(u)

	if err := svc.ChangePhone(context.Background(), "u1", "+15550001"); err != nil {
		t.Fatalf("ChangePhone: %v", err)
	}
	if err := svc.ChangeAddress(context.Background(), "u1", domain.Address{City: "Lagos"}); err != nil {
		t.Fatalf("ChangeAddress: %v", err)
	}
	if len(sink.sent) != 0 {
		t.Errorf("expected no notices, got %d", len(sink.sent))
	}
	if repo.users["u1"].Phone != "+15550001" || repo.users["u1"].Address.City != "Lagos" {
		t.Errorf("expected phone and address stored")
	}
}

func TestSettingsService_FieldGroupsAreIndependent(t *testing.T) {
	svc, repo, _ := newSettingsFixture(newCustomer("u1", "ada@example.com"))

	if err := svc.ChangeLanguage(context.Background(), "u1", "fr"); err != nil {
		t.Fatalf("ChangeLanguage: %v", err)
	}
	if err := svc.UpdatePreferences(context.Background(), "u1", domain.Preferences{NotificationsSms: true}); err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	if err := svc.UpdateProfile(context.Background(), "u1", ports.ProfileInput{FirstName: "Augusta", LastName: "King"}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	settings, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if settings.Language != "fr" || !settings.NotificationsSms || settings.NotificationsEmail {
		t.Errorf("unexpected settings: %+v", settings)
	}
	if repo.users["u1"].FirstName != "Augusta" {
		t.Errorf("expected profile updated")
	}
}

func TestSettingsService_ChangeLanguage_Unsupported(t *testing.T) {
	svc, _, _ := newSettingsFixture(newCustomer("u1", "ada@example.com"))
	if err := svc.ChangeLanguage(context.Background(), "u1", "de"); !errors.Is(err, domain.ErrUnsupportedLang) {
		t.Fatalf("expected ErrUnsupportedLang, got %v", err)
	}
}

func TestSettingsService_UserNotFound(t *testing.T) {
	svc, _, _ := newSettingsFixture()
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
