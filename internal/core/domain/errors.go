package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongRole          = errors.New("user is not authorized to login with this role")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrSameEmail          = errors.New("emails are the same")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnsupportedLang    = errors.New("unsupported language")

	ErrAlreadyVerified = errors.New("user is already verified")
	ErrInvalidCode     = errors.New("invalid otp")
	ErrCodeExpired     = errors.New("otp has expired")
	// ErrOtpNotFound is the store's answer when no record matches.
	ErrOtpNotFound = errors.New("otp not found")

	// ErrInvalidToken covers bad signatures, malformed tokens and expiry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenMismatch means the token is well formed but no longer the
	// user's canonical one (superseded or already used).
	ErrTokenMismatch = errors.New("token is no longer valid")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("access forbidden")

	// ErrBusy is returned when another request holds the subject's lock.
	ErrBusy = errors.New("operation already in progress")
)
