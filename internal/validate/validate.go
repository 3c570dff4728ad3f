// Package validate holds client-side input checks applied before any
// request reaches the backend.
package validate

import "regexp"

var (
	letterRe = regexp.MustCompile(`[a-zA-Z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	nameRe   = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)
)

// IsValidPassword reports whether a password meets the minimum rules:
// at least 8 characters, at least one letter and at least one digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return letterRe.MatchString(password) && digitRe.MatchString(password)
}

// IsValidName reports whether a display name contains only letters
// (Spanish accents included) and spaces.
func IsValidName(name string) bool {
	return nameRe.MatchString(name)
}
