package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"deliverytrack/internal/apperr"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\- ]{6,14}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return apperr.Validation("invalid phone number %q", phone)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return apperr.Validation("invalid email address %q", email)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name cannot be empty")
	}
	return nil
}

// validateStrongPassword requires at least 8 characters with an uppercase
// letter, a lowercase letter, a digit and a special character.
func validateStrongPassword(pw string) error {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if len(pw) < 8 || !upper || !lower || !digit || !special {
		return apperr.Validation("password is not strong enough: need 8+ characters with uppercase, lowercase, digit and special character")
	}
	return nil
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
