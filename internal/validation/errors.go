package validation

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindRequired      Kind = "required"
	KindInvalidFormat Kind = "invalid_format"
	KindInvalidLength Kind = "invalid_length"
	KindInvalidValue  Kind = "invalid_value"
	KindInvalidType   Kind = "invalid_type"
	KindInvalidRange  Kind = "invalid_range"
	KindDuplicate     Kind = "duplicate"
	KindNotFound      Kind = "not_found"
)

// Error is the single error kind raised for bad input. It tells the caller to
// correct the data and resubmit; it is never retried.
type Error struct {
	Field   string
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Newf builds an Error with a formatted message.
func Newf(field string, kind Kind, format string, args ...any) *Error {
	return &Error{Field: field, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is, or wraps, an *Error.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// AsError extracts the *Error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Required reports a missing required field.
func Required(field, message string) *Error {
	return &Error{Field: field, Kind: KindRequired, Message: message}
}

// Duplicate reports a uniqueness violation.
func Duplicate(field, message string) *Error {
	return &Error{Field: field, Kind: KindDuplicate, Message: message}
}

// MissingReference reports a foreign id that resolves to no row.
func MissingReference(field, entity string, id int64) *Error {
	return Newf(field, KindNotFound, "%s with id %d does not exist", entity, id)
}
