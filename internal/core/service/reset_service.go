package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
	"github.com/oladokun-o/engine/internal/pkg/metrics"
)

const defaultResetTTL = 10 * time.Minute

// ResetOptions holds the reset token policy.
type ResetOptions struct {
	TTL    time.Duration
	AppURL string
}

type resetService struct {
	users  ports.UserRepository
	codec  ports.ResetTokenCodec
	hasher ports.PasswordHasher
	sink   ports.NotificationSink
	locker ports.Locker
	clock  Clock
	opts   ResetOptions
	log    zerolog.Logger
}

// NewResetService returns a ResetService.
func NewResetService(
	users ports.UserRepository,
	codec ports.ResetTokenCodec,
	hasher ports.PasswordHasher,
	sink ports.NotificationSink,
	locker ports.Locker,
	clock Clock,
	opts ResetOptions,
	log zerolog.Logger,
) ports.ResetService {
	if clock == nil {
		clock = SystemClock{}
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultResetTTL
	}
	opts.AppURL = strings.TrimRight(opts.AppURL, "/")
	return &resetService{
		users:  users,
		codec:  codec,
		hasher: hasher,
		sink:   sink,
		locker: locker,
		clock:  clock,
		opts:   opts,
		log:    log,
	}
}

// RequestReset issues a new canonical token for the account behind email
// and mails the reset link. Any earlier token stops being valid.
func (s *resetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("request reset: %w", err)
	}

	release, err := s.locker.Acquire(ctx, "user:"+user.ID)
	if err != nil {
		return err
	}
	defer release()

	token, err := s.codec.Sign(ports.ResetClaims{
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: s.clock.Now().Add(s.opts.TTL),
	})
	if err != nil {
		metrics.ResetTokens.WithLabelValues("issued", "error").Inc()
		return fmt.Errorf("request reset: sign: %w", err)
	}

	if err := s.users.SetResetToken(ctx, user.ID, token); err != nil {
		metrics.ResetTokens.WithLabelValues("issued", "error").Inc()
		return fmt.Errorf("request reset: store: %w", err)
	}
	metrics.ResetTokens.WithLabelValues("issued", "success").Inc()

	link := s.opts.AppURL + "/auth/reset-password?token=" + token
	s.sink.Notify(ports.Notification{
		From:    ports.AliasSupport,
		To:      user.Email,
		Subject: "Password Reset Request",
		Body: fmt.Sprintf(
			`<p>You requested a password reset. Click the link below to reset your password:</p><p><a href="%s">Reset Password</a></p><p>This link expires in %s.</p>`,
			link, s.opts.TTL,
		),
		HTML: true,
	})

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

// VerifyToken checks the signature and expiry first and only then compares
// the token with the user's canonical copy.
func (s *resetService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("verify reset token: %w", err)
	}

	if user.ResetPasswordToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.ResetPasswordToken), []byte(token)) != 1 {
		return nil, domain.ErrTokenMismatch
	}
	return user, nil
}

// ResetPassword replaces the password and clears the canonical token in a
// single conditional write. A token that lost the race reports
// ErrTokenMismatch.
func (s *resetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	err := s.resetPassword(ctx, token, newPassword)
	metrics.ResetTokens.WithLabelValues("consumed", outcome(err)).Inc()
	return err
}

func (s *resetService) resetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return err
	}

	release, err := s.locker.Acquire(ctx, "user:"+claims.UserID)
	if err != nil {
		return err
	}
	defer release()

	user, err := s.VerifyToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}

	matched, err := s.users.ConsumeResetToken(ctx, user.ID, token, hash)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if !matched {
		return domain.ErrTokenMismatch
	}

	if user.Settings.NotificationsEmail {
		s.sink.Notify(ports.Notification{
			From:    ports.AliasSupport,
			To:      user.Email,
			Subject: "Password Changed",
			Body:    "Your password has been changed successfully. If you did not make this change, contact support immediately.",
		})
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}
