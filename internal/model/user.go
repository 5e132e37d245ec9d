package model

import (
	"strings"
	"time"
)

// AuthState is the identity lifecycle derived from stored fields. Keeping it
// an explicit value makes the transition table testable instead of being
// re-derived ad hoc in every handler.
type AuthState string

const (
	StatePendingVerification AuthState = "pending_verification"
	StateVerified            AuthState = "verified"
)

type User struct {
	ID           string     `db:"id" json:"_id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Avatar       string     `db:"avatar" json:"avatar"`
	OTP          *string    `db:"otp" json:"-"`
	OTPExpiry    *time.Time `db:"otp_expiry" json:"-"`
	Verified     bool       `db:"verified" json:"isVerified"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`

	// Populated on demand, not stored on the users table.
	Papers []Paper `db:"-" json:"papers,omitempty"`
}

func (u *User) State() AuthState {
	if u.Verified {
		return StateVerified
	}
	return StatePendingVerification
}

// HasPendingCode reports whether an OTP challenge is outstanding. The code
// and expiry are set and cleared together; a verified identity may retain a
// stale pair until the next issuance overwrites it.
func (u *User) HasPendingCode() bool {
	return u.OTP != nil && *u.OTP != "" && u.OTPExpiry != nil
}

// CodeExpired reports whether the outstanding challenge is past its expiry
// at the given instant. Only meaningful when HasPendingCode is true.
func (u *User) CodeExpired(now time.Time) bool {
	return u.OTPExpiry == nil || !now.Before(*u.OTPExpiry)
}

// CodeMatches compares a submitted code against the stored one. Both sides
// are trimmed; the stored code stays valid until expiry or replacement.
func (u *User) CodeMatches(code string) bool {
	if u.OTP == nil {
		return false
	}
	return strings.TrimSpace(code) == strings.TrimSpace(*u.OTP)
}

// NormalizeEmail lowercases and trims an email for use as the identity key.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
