package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
	"github.com/oladokun-o/engine/internal/pkg/metrics"
)

type otpService struct {
	users  ports.UserRepository
	otps   ports.OtpRepository
	sink   ports.NotificationSink
	locker ports.Locker
	clock  Clock
	codes  CodeGenerator
	log    zerolog.Logger
}

// NewOtpService returns an OtpService. A nil clock or code generator falls
// back to the system clock and crypto/rand.
func NewOtpService(
	users ports.UserRepository,
	otps ports.OtpRepository,
	sink ports.NotificationSink,
	locker ports.Locker,
	clock Clock,
	codes CodeGenerator,
	log zerolog.Logger,
) ports.OtpService {
	if clock == nil {
		clock = SystemClock{}
	}
	if codes == nil {
		codes = RandomCode{}
	}
	return &otpService{
		users:  users,
		otps:   otps,
		sink:   sink,
		locker: locker,
		clock:  clock,
		codes:  codes,
		log:    log,
	}
}

// Issue stores a fresh code for the user and mails it. Existing codes are
// left alone and remain usable until they expire.
func (s *otpService) Issue(ctx context.Context, userID string) (*ports.OtpIssued, error) {
	release, err := s.locker.Acquire(ctx, "otp:"+userID)
	if err != nil {
		return nil, err
	}
	defer release()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}
	return s.issue(ctx, user)
}

// Reissue removes all of the user's codes before issuing a new one, so
// exactly one live code exists afterwards.
func (s *otpService) Reissue(ctx context.Context, userID string) (*ports.OtpIssued, error) {
	release, err := s.locker.Acquire(ctx, "otp:"+userID)
	if err != nil {
		return nil, err
	}
	defer release()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reissue otp: %w", err)
	}

	if _, err := s.otps.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("reissue otp: delete previous: %w", err)
	}

	return s.issue(ctx, user)
}

func (s *otpService) issue(ctx context.Context, user *domain.User) (*ports.OtpIssued, error) {
	code, err := s.codes.Code()
	if err != nil {
		return nil, err
	}

	record := domain.NewOtpRecord(user.ID, code, s.clock.Now())
	if err := s.otps.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("issue otp: store: %w", err)
	}

	s.sink.Notify(ports.Notification{
		From:    ports.AliasSupport,
		To:      user.Email,
		Subject: "Verification Code",
		Body:    fmt.Sprintf("Your verification code is %s. \nThis code expires in 5 minutes.", code),
	})
	metrics.OtpIssued.Inc()

	s.log.Info().Str("user_id", user.ID).Time("expires_at", record.ExpiresAt).Msg("otp issued")

	return &ports.OtpIssued{UserID: user.ID, ExpiresAt: record.ExpiresAt}, nil
}

// Verify consumes a matching, unexpired code and marks the user verified.
// The record is deleted last so a retry after a partial failure observes
// the verified flag and reports ErrAlreadyVerified.
func (s *otpService) Verify(ctx context.Context, userID, code string) error {
	release, err := s.locker.Acquire(ctx, "otp:"+userID)
	if err != nil {
		return err
	}
	defer release()

	err = s.verify(ctx, userID, code)
	metrics.OtpVerifications.WithLabelValues(outcome(err)).Inc()
	return err
}

func (s *otpService) verify(ctx context.Context, userID, code string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	if user.Settings.Verified {
		return domain.ErrAlreadyVerified
	}

	record, err := s.otps.FindByUserAndCode(ctx, userID, code)
	if errors.Is(err, domain.ErrOtpNotFound) {
		return domain.ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	if record.Expired(s.clock.Now()) {
		return domain.ErrCodeExpired
	}

	flipped, err := s.users.MarkVerified(ctx, userID)
	if err != nil {
		return fmt.Errorf("verify otp: mark verified: %w", err)
	}
	if !flipped {
		return domain.ErrAlreadyVerified
	}

	if _, err := s.otps.Delete(ctx, record.ID); err != nil {
		// The user is verified; a leftover record can no longer be used.
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to delete consumed otp")
	}

	s.log.Info().Str("user_id", userID).Msg("otp verified")
	return nil
}
