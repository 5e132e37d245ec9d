package validation

import (
	"fmt"
)

const (
	// MinPasswordLength is the minimum allowed password length.
	MinPasswordLength = 6
	// MaxPasswordLength matches the bcrypt input limit of 72 bytes.
	MaxPasswordLength = 72
)

// ValidatePassword checks that the password satisfies the length policy.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}

	return nil
}
