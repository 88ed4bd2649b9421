package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// CodeGenerator produces verification codes.
type CodeGenerator interface {
	Code() (string, error)
}

// RandomCode draws a four digit code in [1000, 9999] from crypto/rand.
type RandomCode struct{}

func (RandomCode) Code() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
