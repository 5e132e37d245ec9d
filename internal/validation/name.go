package validation

import (
	"fmt"
	"strings"
)

// MaxNameLength is the maximum allowed display name length.
const MaxNameLength = 100

// ValidateName checks that the display name is present and within bounds.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("name is required")
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}

	return nil
}
