package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// AuthService implements login and session management. The signed session
// token is also stored on the user so logout can revoke it.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	clock     Clock
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		clock:     SystemClock{},
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string, role domain.Role) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return s.login(ctx, user, password, role)
}

func (s *AuthService) LoginWithPhone(ctx context.Context, phone, password string, role domain.Role) (*ports.LoginResult, error) {
	if phone == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return s.login(ctx, user, password, role)
}

func (s *AuthService) login(ctx context.Context, user *domain.User, password string, role domain.Role) (*ports.LoginResult, error) {
	if user.Role != role {
		return nil, domain.ErrWrongRole
	}
	if s.hasher.Compare(user.PasswordHash, password) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	token, err := s.generateToken(user, now)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetSession(ctx, user.ID, token, now); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	user.Token = token
	user.LastLogin = &now

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// ValidateToken accepts a token only while it is the user's stored session.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*ports.SessionClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if user.Token == "" || subtle.ConstantTimeCompare([]byte(user.Token), []byte(token)) != 1 {
		return nil, domain.ErrInvalidToken
	}

	return &ports.SessionClaims{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// Logout revokes the user's current session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.SetSession(ctx, userID, "", time.Time{}); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

func (s *AuthService) generateToken(user *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
