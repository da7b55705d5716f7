package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsNonEmptyString checks if a string is not empty after trimming whitespace.
func IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidEmail checks for a local@domain.tld shaped address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// HasMinLength counts runes, not bytes.
func HasMinLength(s string, min int) bool {
	return utf8.RuneCountInString(s) >= min
}

// IsValidID checks that an identifier is positive.
func IsValidID(id int64) bool {
	return id > 0
}

// IsValidDateRange accepts open ranges and due == start.
func IsValidDateRange(start, due *time.Time) bool {
	if start == nil || due == nil {
		return true
	}
	return !due.Before(*start)
}

// ValidateID rejects non-positive identifiers for the named entity.
func ValidateID(entity string, id int64) error {
	if !IsValidID(id) {
		return Newf(entity+"_id", KindInvalidValue, "%s id must be a positive integer", entity)
	}
	return nil
}
