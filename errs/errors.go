// Package errs defines the error values returned by credfmt packages.
//
// Callers should test for a category with errors.Is; the returned errors usually wrap one
// of the sentinels below with additional context.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a read, write or extract exceeds the declared bit length
	// of a buffer, or when a value does not fit the bit width it is encoded into.
	ErrOutOfRange = errors.New("bit range out of bounds")

	// ErrInvalidEncoding is returned when a data type cannot revert a bit pattern,
	// e.g. a BCD nibble greater than 9.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrParityMismatch is returned when a decoded parity bit disagrees with its recomputed
	// value. The concrete error is a *ParityError naming the failed check.
	ErrParityMismatch = errors.New("parity mismatch")

	// ErrDataTooShort is returned when fewer bytes than a format requires are supplied.
	ErrDataTooShort = errors.New("data too short")

	// ErrFormatMismatch is returned when fixed marker bits of a format do not match.
	ErrFormatMismatch = errors.New("format mismatch")

	// ErrInvalidConfiguration is returned for inconsistent format or field configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnknownFormat is returned by the registry for unknown format types.
	ErrUnknownFormat = errors.New("unknown format type")

	// ErrNoMatchingFormat is returned when no skeleton matches a decoded buffer.
	ErrNoMatchingFormat = errors.New("no matching format")

	ErrFieldNotFound        = errors.New("field not found")
	ErrDuplicateField       = errors.New("duplicate field name")
	ErrInvalidFieldName     = errors.New("invalid field name")
	ErrFieldDependencyCycle = errors.New("parity field dependency cycle")

	// ErrInvalidJournal is returned when a journal blob is malformed.
	ErrInvalidJournal = errors.New("invalid journal")
	// ErrChecksumMismatch is returned when a journal payload checksum does not match.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// ParityError reports which named parity check failed while decoding.
//
// It matches ErrParityMismatch with errors.Is.
type ParityError struct {
	// Check names the parity check, e.g. "left parity" or "right parity 3".
	Check string
}

// NewParityError returns a *ParityError for the named check.
func NewParityError(check string) *ParityError {
	return &ParityError{Check: check}
}

// NewParityErrorf returns a *ParityError whose check name is built with fmt.Sprintf.
func NewParityErrorf(format string, args ...any) *ParityError {
	return &ParityError{Check: fmt.Sprintf(format, args...)}
}

func (e *ParityError) Error() string {
	return e.Check + " format error"
}

// Is reports whether target is ErrParityMismatch.
func (e *ParityError) Is(target error) bool {
	return target == ErrParityMismatch
}
