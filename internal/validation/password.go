package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	passwordMinLength = 6
	// bcrypt only hashes the first 72 bytes, so longer passwords would
	// silently truncate.
	passwordMaxLength = 72

	emailMaxLength = 254
)

// ValidatePassword checks the subscriber password length bounds.
func ValidatePassword(senha string) error {
	if len(senha) < passwordMinLength {
		return fmt.Errorf("senha must be at least %d characters", passwordMinLength)
	}
	if len(senha) > passwordMaxLength {
		return fmt.Errorf("senha must be at most %d characters", passwordMaxLength)
	}
	return nil
}

// ValidateEmail checks address format and length.
func ValidateEmail(email string) error {
	if email == "" || len(email) > emailMaxLength {
		return fmt.Errorf("invalid email address")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
