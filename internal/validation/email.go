package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateEmail checks if the email address is valid according to RFC 5322
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return fmt.Errorf("email is required")
	}

	// RFC 5321 limits the total address to 254 characters
	if len(email) > 254 {
		return fmt.Errorf("email is too long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}

	// Reject addresses with a display name ("Name <user@host>")
	if addr.Address != email {
		return fmt.Errorf("invalid email address")
	}

	return nil
}
