package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type resetFixture struct {
	users *stubUserRepo
	sink  *recordingSink
	clock *fakeClock
	svc   *resetService
}

func newResetFixture(users ...*domain.User) *resetFixture {
	f := &resetFixture{
		users: newStubUserRepo(users...),
		sink:  &recordingSink{},
		clock: &fakeClock{now: baseTime},
	}
	codec := &stubCodec{now: f.clock.Now}
	f.svc = NewResetService(f.users, codec, plainHasher{}, f.sink, &stubLocker{}, f.clock,
		ResetOptions{TTL: 10 * time.Minute, AppURL: "https://app.example.com/"}, discardLogger).(*resetService)
	return f
}

func TestResetService_RequestReset_StoresCanonicalToken(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))

	if err := f.svc.RequestReset(context.Background(), "ada@example.com"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}

	stored := f.users.users["u1"].ResetPasswordToken
	if stored == "" {
		t.Fatalf("expected canonical token stored")
	}
	if len(f.sink.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.sink.sent))
	}
	n := f.sink.sent[0]
	if n.Subject != "Password Reset Request" || !n.HTML {
		t.Errorf("unexpected notification: %+v", n)
	}
	if !strings.Contains(n.Body, "https://app.example.com/auth/reset-password?token="+stored) {
		t.Errorf("expected reset link in body, got %q", n.Body)
	}
}

func TestResetService_RequestReset_UnknownEmail(t *testing.T) {
	f := newResetFixture()
	if err := f.svc.RequestReset(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(f.sink.sent) != 0 {
		t.Errorf("expected no notification")
	}
}

func TestResetService_VerifyToken(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	token := f.users.users["u1"].ResetPasswordToken

	user, err := f.svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected u1, got %s", user.ID)
	}
}

func TestResetService_VerifyToken_Supersession(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))

	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	first := f.users.users["u1"].ResetPasswordToken
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	second := f.users.users["u1"].ResetPasswordToken

	if first == second {
		t.Fatalf("expected distinct tokens")
	}
	if _, err := f.svc.VerifyToken(context.Background(), first); !errors.Is(err, domain.ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch for superseded token, got %v", err)
	}
	if _, err := f.svc.VerifyToken(context.Background(), second); err != nil {
		t.Fatalf("expected latest token valid, got %v", err)
	}
}

func TestResetService_VerifyToken_Expired(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	token := f.users.users["u1"].ResetPasswordToken

	f.clock.Advance(11 * time.Minute)

	if _, err := f.svc.VerifyToken(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResetService_VerifyToken_Malformed(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))
	if _, err := f.svc.VerifyToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResetService_VerifyToken_UserGone(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	token := f.users.users["u1"].ResetPasswordToken
	delete(f.users.users, "u1")

	if _, err := f.svc.VerifyToken(context.Background(), token); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResetService_ResetPassword_SingleUse(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	token := f.users.users["u1"].ResetPasswordToken

	if err := f.svc.ResetPassword(context.Background(), token, "n3w-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	u := f.users.users["u1"]
	if u.PasswordHash != "hashed:n3w-pass" {
		t.Errorf("expected password updated, got %q", u.PasswordHash)
	}
	if u.ResetPasswordToken != "" {
		t.Errorf("expected canonical token cleared")
	}

	if err := f.svc.ResetPassword(context.Background(), token, "again"); !errors.Is(err, domain.ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch on reuse, got %v", err)
	}
	if f.users.users["u1"].PasswordHash != "hashed:n3w-pass" {
		t.Errorf("reuse must not change the password")
	}
}

func TestResetService_ResetPassword_NotifiesWhenEnabled(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	token := f.users.users["u1"].ResetPasswordToken

	if err := f.svc.ResetPassword(context.Background(), token, "n3w-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if len(f.sink.sent) != 2 || f.sink.sent[1].Subject != "Password Changed" {
		t.Fatalf("expected change notice, got %+v", f.sink.sent)
	}
}

func TestResetService_ResetPassword_SilentWhenDisabled(t *testing.T) {
	u := newCustomer("u1", "ada@example.com")
	u.Settings.NotificationsEmail = false
	f := newResetFixture(u)
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	token := f.users.users["u1"].ResetPasswordToken

	if err := f.svc.ResetPassword(context.Background(), token, "n3w-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if len(f.sink.sent) != 1 {
		t.Fatalf("expected only the reset mail, got %d", len(f.sink.sent))
	}
}

func TestResetService_ResetPassword_LostRace(t *testing.T) {
	f := newResetFixture(newCustomer("u1", "ada@example.com"))
	_ = f.svc.RequestReset(context.Background(), "ada@example.com")
	token := f.users.users["u1"].ResetPasswordToken

	f.svc.users = &consumingUserRepo{stubUserRepo: f.users}

	if err := f.svc.ResetPassword(context.Background(), token, "n3w-pass"); !errors.Is(err, domain.ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch, got %v", err)
	}
	if f.users.users["u1"].PasswordHash != "hashed:winner" {
		t.Errorf("expected the winning write to stand")
	}
}

// consumingUserRepo lets a concurrent request consume the token right
// before the conditional write.
type consumingUserRepo struct {
	*stubUserRepo
}

func (r *consumingUserRepo) ConsumeResetToken(ctx context.Context, id, token, hash string) (bool, error) {
	if ok, err := r.stubUserRepo.ConsumeResetToken(ctx, id, token, "hashed:winner"); err != nil || !ok {
		return ok, err
	}
	return r.stubUserRepo.ConsumeResetToken(ctx, id, token, hash)
}

var _ ports.UserRepository = (*consumingUserRepo)(nil)
