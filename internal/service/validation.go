package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
)

// MinPasswordLength is the shortest password accepted at registration and on change.
const MinPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z ]{3,15}$`)
	phonePattern = regexp.MustCompile(`^\d{7,15}$`)
)

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apiErrors.NewErrMissingFields("email")
	}
	if !emailPattern.MatchString(email) {
		return apiErrors.NewErrInvalidField("email", "email format is invalid")
	}
	return nil
}

// validateRegistrationPassword requires MinPasswordLength characters with at least one letter and one digit.
func validateRegistrationPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apiErrors.NewErrInvalidField("password", "password must be at least 6 characters")
	}

	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return apiErrors.NewErrInvalidField("password", "password must contain a letter and a digit")
	}

	return nil
}

// normalizeNationalID keeps only the digits, so "12345-1234567-1" and "1234512345671" are the same id.
func normalizeNationalID(id string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, id)
}
