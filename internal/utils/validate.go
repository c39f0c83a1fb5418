package utils

import "regexp"

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return emailRegexp.MatchString(s)
}
