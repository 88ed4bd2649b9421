package domain

import "time"

// OtpTTL is how long a verification code stays usable after issue.
const OtpTTL = 5 * time.Minute

// OtpRecord is a one-time verification code issued to a user. A record is
// consumed by deleting it.
type OtpRecord struct {
	ID        string
	UserID    string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewOtpRecord builds a record for userID that expires OtpTTL after now.
func NewOtpRecord(userID, code string, now time.Time) *OtpRecord {
	return &OtpRecord{
		UserID:    userID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(OtpTTL),
	}
}

// Expired reports whether the code is past its expiry at now.
func (o *OtpRecord) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
