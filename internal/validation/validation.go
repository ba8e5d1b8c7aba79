// Package validation provides explicit input validation helpers.
package validation

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrInputTooLong indicates input exceeds maximum length.
	ErrInputTooLong = errors.New("input exceeds maximum length")
	// ErrInputInvalid indicates input contains invalid characters.
	ErrInputInvalid = errors.New("input contains invalid characters")
	// ErrStartDateRequired indicates a missing start date.
	ErrStartDateRequired = errors.New("start date is required")
	// ErrEndBeforeStart indicates the end date precedes the start date.
	ErrEndBeforeStart = errors.New("end date must not be before start date")
	// ErrPasswordTooShort indicates password is less than minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// ValidateDateRange checks an explicit start/end pair. A nil end date
// means "in progress" and is always valid.
func ValidateDateRange(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return ErrStartDateRequired
	}
	if end != nil && end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// ValidateUsername validates an admin username.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return ErrInputTooLong
	}

	validUsername := regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.@-]*$`)
	if !validUsername.MatchString(username) {
		return errors.New("username must start with a letter and contain only letters, numbers, and _.@-")
	}
	return nil
}

// ValidatePassword enforces the minimum password length. Complexity
// beyond length is the operator's concern; OAuth-only accounts have none.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

// SanitizeString escapes HTML and trims whitespace for text fields.
func SanitizeString(input string) string {
	return strings.TrimSpace(html.EscapeString(input))
}

// SanitizeStringPreserveNewlines sanitizes multiline fields line by line.
func SanitizeStringPreserveNewlines(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(strings.TrimSpace(line))
	}
	return strings.Join(lines, "\n")
}

// ValidateName validates a short display name field.
func ValidateName(name string, maxLength int) error {
	if name == "" || len(name) > maxLength {
		return ErrInputTooLong
	}
	if strings.ContainsAny(name, "\x00\n\r") {
		return ErrInputInvalid
	}
	return nil
}
