package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the address has a plausible mailbox@domain
// shape. Deliverability is not checked.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SanitizeInput trims surrounding whitespace and strips null bytes from
// free-text fields before they are stored.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "\x00", "")
}
