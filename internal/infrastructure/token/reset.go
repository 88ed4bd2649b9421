// Package token signs and verifies password reset tokens as HS256 JWTs.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type resetClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ResetCodec implements ports.ResetTokenCodec. Every signed token carries a
// fresh jti, so two tokens for the same user never compare equal.
type ResetCodec struct {
	secret []byte
	now    func() time.Time
}

var _ ports.ResetTokenCodec = (*ResetCodec)(nil)

func NewResetCodec(secret string) *ResetCodec {
	return &ResetCodec{secret: []byte(secret), now: time.Now}
}

func (c *ResetCodec) Sign(claims ports.ResetClaims) (string, error) {
	if claims.UserID == "" {
		return "", errors.New("sign reset token: empty user id")
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		UserID: claims.UserID,
		Email:  claims.Email,
	})
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// Verify maps every parse or validation failure to domain.ErrInvalidToken.
func (c *ResetCodec) Verify(raw string) (*ports.ResetClaims, error) {
	var claims resetClaims
	tok, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.ResetClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
