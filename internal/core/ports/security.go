package ports

import (
	"context"
	"time"
)

// ResetClaims is the payload embedded in a password reset token.
type ResetClaims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// ResetTokenCodec signs and verifies password reset tokens. Verify returns
// domain.ErrInvalidToken for bad signatures, malformed input and expiry.
type ResetTokenCodec interface {
	Sign(claims ResetClaims) (string, error)
	Verify(token string) (*ResetClaims, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// Locker serialises work on one subject (a user or an order) across
// processes. Acquire returns domain.ErrBusy when the lock stays taken.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
