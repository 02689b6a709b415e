package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCode = errors.New("invalid verification code")
	ErrCodeExpired = errors.New("verification code has expired")
)

// CodeTTL is how long a verification code stays redeemable.
const CodeTTL = 30 * time.Minute

// VerificationCode proves control of an email address. Codes are soft-state:
// resending issues a new code without invalidating older ones, and expired
// codes are left in place rather than deleted.
type VerificationCode struct {
	ID        string
	UserID    string
	Email     string
	Code      string
	Verified  bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code's redemption window has passed.
func (v *VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
