package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyPhone indicates phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")

	// ErrInvalidLength indicates phone number length is not 11 digits
	ErrInvalidLength = errors.New("phone number must be exactly 11 digits")

	// ErrInvalidPrefix indicates phone number doesn't start with a valid Bangladeshi prefix
	ErrInvalidPrefix = errors.New("phone number must start with 013, 014, 015, 016, 017, 018, or 019")

	// ErrInvalidFormat indicates phone number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits")
)

// validPrefixes contains the Bangladeshi mobile operator prefixes
var validPrefixes = []string{
	"013", // Grameenphone
	"014", // Banglalink
	"015", // Teletalk
	"016", // Airtel
	"017", // Grameenphone
	"018", // Robi
	"019", // Banglalink
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// NormalizePhone strips spaces and dashes from a phone number
func NormalizePhone(phone string) string {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}

// ValidatePhone validates a Bangladeshi mobile number.
// Accepts format: 01712345678 or 017 1234 5678 or 017-1234-5678
func ValidatePhone(phone string) error {
	phone = NormalizePhone(phone)

	if phone == "" {
		return ErrEmptyPhone
	}
	if !digitsOnly.MatchString(phone) {
		return ErrInvalidFormat
	}
	if len(phone) != 11 {
		return ErrInvalidLength
	}

	prefix := phone[:3]
	for _, p := range validPrefixes {
		if prefix == p {
			return nil
		}
	}
	return ErrInvalidPrefix
}

// IsValidPhone reports whether the phone number passes validation
func IsValidPhone(phone string) bool {
	return ValidatePhone(phone) == nil
}
