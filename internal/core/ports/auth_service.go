package ports

import (
	"context"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// SessionClaims identifies the caller behind a session token.
type SessionClaims struct {
	UserID string
	Email  string
	Role   domain.Role
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	LoginWithEmail(ctx context.Context, email, password string, role domain.Role) (*LoginResult, error)
	LoginWithPhone(ctx context.Context, phone, password string, role domain.Role) (*LoginResult, error)
	// ValidateToken checks the signature and that the token is still the
	// user's current session.
	ValidateToken(ctx context.Context, token string) (*SessionClaims, error)
	Logout(ctx context.Context, userID string) error
}
