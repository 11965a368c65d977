// Package validation holds input validation rules shared across handlers
// and services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var loginRegex = regexp.MustCompile(`^[a-z0-9._-]{3,24}$`)

// Handles that collide with route segments or operational names.
var reservedLogins = map[string]struct{}{
	"api":      {},
	"admin":    {},
	"login":    {},
	"logout":   {},
	"settings": {},
	"feed":     {},
	"chat":     {},
	"pix":      {},
	"uploads":  {},
	"metrics":  {},
	"health":   {},
	"root":     {},
	"suporte":  {},
}

// ValidateLogin validates a subscriber handle. Handles are lowercase and
// URL-safe because they appear in chat routes.
func ValidateLogin(login string) error {
	if !loginRegex.MatchString(login) {
		return fmt.Errorf("login must be 3-24 characters and contain only lowercase letters, numbers, dots, hyphens and underscores")
	}
	if strings.HasPrefix(login, ".") || strings.HasSuffix(login, ".") ||
		strings.HasPrefix(login, "-") || strings.HasSuffix(login, "-") {
		return fmt.Errorf("login cannot start or end with a dot or hyphen")
	}
	if _, reserved := reservedLogins[login]; reserved {
		return fmt.Errorf("login %q is reserved", login)
	}
	return nil
}
