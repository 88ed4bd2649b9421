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

type userService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	otp    ports.OtpService
	sink   ports.NotificationSink
	clock  Clock
	log    zerolog.Logger
}

// NewUserService returns a UserService. Registration issues the first
// verification code through otp.
func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	otp ports.OtpService,
	sink ports.NotificationSink,
	log zerolog.Logger,
) ports.UserService {
	return &userService{repo: repo, hasher: hasher, otp: otp, sink: sink, clock: SystemClock{}, log: log}
}

func (s *userService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash: %w", err)
	}

	now := s.clock.Now()
	user, err := s.repo.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		MiddleName:   in.MiddleName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         in.Role,
		Settings:     domain.DefaultSettings(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.sink.Notify(ports.Notification{
		From:    ports.AliasTeam,
		To:      user.Email,
		Subject: "Welcome",
		Body:    fmt.Sprintf("Hi %s, welcome aboard! Use the verification code we are sending you to activate your account.", user.FirstName),
	})

	// The account exists either way; a failed code can be resent.
	if _, err := s.otp.Issue(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to issue initial otp")
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
