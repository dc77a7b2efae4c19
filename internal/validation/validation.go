// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

const (
	// MaxFollowerCount bounds clipper-supplied counters and prices.
	MaxFollowerCount = 500_000_000
)

var (
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
	hasLetter       = regexp.MustCompile(`[A-Za-z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
	handlePattern   = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePassword checks if a password meets security requirements:
// at least 8 characters, at least one letter and one digit, limited charset.
func ValidatePassword(password string) error {
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	if !passwordCharset.MatchString(password) || !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return fmt.Errorf("password must contain at least one letter, one number, and be at least 8 characters long")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	if len(email) > 100 {
		return fmt.Errorf("email must not exceed 100 characters")
	}
	return nil
}

// ValidateName checks full names, brand names, and countries (2-50 chars).
func ValidateName(field, value string) error {
	if len(value) < 2 {
		return fmt.Errorf("%s must be at least 2 characters long", field)
	}
	if len(value) > 50 {
		return fmt.Errorf("%s must not exceed 50 characters", field)
	}
	return nil
}

// ValidateSocialMediaHandle checks handle length and character set.
func ValidateSocialMediaHandle(handle string) error {
	if len(handle) < 3 || len(handle) > 50 {
		return fmt.Errorf("social media handle must be between 3 and 50 characters")
	}
	if !handlePattern.MatchString(handle) {
		return fmt.Errorf("social media handle should only contain letters, numbers, underscores, and periods")
	}
	return nil
}

// ValidateCount checks follower counts and prices against the shared bound.
func ValidateCount(field string, value int64) error {
	if value < 0 {
		return fmt.Errorf("%s must not be negative", field)
	}
	if value > MaxFollowerCount {
		return fmt.Errorf("%s must not exceed %d", field, int64(MaxFollowerCount))
	}
	return nil
}
