package ports

import (
	"context"
	"time"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// RegisterInput carries the data needed to open an account.
type RegisterInput struct {
	FirstName       string
	MiddleName      string
	LastName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	Role            domain.Role
}

// UserService covers account creation and lookup.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OtpIssued is returned after a verification code has been stored and
// handed to the notification sink.
type OtpIssued struct {
	UserID    string
	ExpiresAt time.Time
}

// OtpService issues and verifies email verification codes.
type OtpService interface {
	Issue(ctx context.Context, userID string) (*OtpIssued, error)
	// Reissue deletes the user's previous code before issuing a new one.
	Reissue(ctx context.Context, userID string) (*OtpIssued, error)
	Verify(ctx context.Context, userID, code string) error
}

// ResetService manages single-use password reset tokens.
type ResetService interface {
	RequestReset(ctx context.Context, email string) error
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}
