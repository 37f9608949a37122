// Package errs defines the sentinel errors shared by every bina package.
//
// Errors fall into three classes. Every specific sentinel wraps exactly one
// class, so callers can either match the precise failure or the class:
//
//	if errors.Is(err, errs.ErrEncoding) {
//	    // the segment graph cannot be represented in a BINA file
//	}
//
// None of these failures are transient; retrying the same export or import
// reproduces the same error.
package errs

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	// ErrConfiguration reports a segment graph that was assembled incorrectly by the caller.
	ErrConfiguration = errors.New("bina: configuration error")
	// ErrEncoding reports a segment graph that cannot be represented in the container format.
	ErrEncoding = errors.New("bina: encoding error")
	// ErrDecoding reports malformed or truncated input.
	ErrDecoding = errors.New("bina: decoding error")
)

// Configuration errors.
var (
	ErrMissingName     = classed(ErrConfiguration, "required name reference is not set")
	ErrUnplacedTarget  = classed(ErrConfiguration, "pointer target was never registered with the container")
	ErrInvalidVersion  = classed(ErrConfiguration, "version must be three ASCII digits")
	ErrInvalidSegment  = classed(ErrConfiguration, "segment must be a non-nil pointer")
	ErrInvalidNameType = classed(ErrConfiguration, "name must be a string, Name or *StringSegment")
)

// Encoding errors.
var (
	ErrMisalignedDelta   = classed(ErrEncoding, "offset delta is not a multiple of 4")
	ErrDeltaOverflow     = classed(ErrEncoding, "offset delta exceeds 0xFFFFFFFC")
	ErrNonIncreasing     = classed(ErrEncoding, "pointer offsets are not increasing")
	ErrFileTooLarge      = classed(ErrEncoding, "file size exceeds 32-bit header fields")
	ErrInvalidStringByte = classed(ErrEncoding, "string contains a NUL or non-ASCII byte")
	ErrInvalidAlignment  = classed(ErrEncoding, "segment alignment must not be negative")
)

// Decoding errors.
var (
	ErrUnexpectedEOF        = classed(ErrDecoding, "unexpected end of data")
	ErrUnterminatedString   = classed(ErrDecoding, "string is not NUL terminated")
	ErrOffsetOutOfRange     = classed(ErrDecoding, "offset is outside the data buffer")
	ErrInvalidHeaderSize    = classed(ErrDecoding, "invalid header size")
	ErrInvalidMagicNumber   = classed(ErrDecoding, "invalid magic number")
	ErrInvalidEndianTag     = classed(ErrDecoding, "invalid endian tag")
	ErrInvalidFileVersion   = classed(ErrDecoding, "file version is not three ASCII digits")
	ErrInvalidSectionLength = classed(ErrDecoding, "section length does not fit the file")
	ErrTruncatedOffsetEntry = classed(ErrDecoding, "offset table entry is truncated")
	ErrInvalidOffsetWidth   = classed(ErrDecoding, "indirect offset width must be 1, 2, 4 or 8")
	ErrInvalidRecordMagic   = classed(ErrDecoding, "invalid record magic")
)

type classError struct {
	class error
	msg   string
}

func (e *classError) Error() string {
	return e.msg
}

func (e *classError) Unwrap() error {
	return e.class
}

func classed(class error, msg string) error {
	return &classError{class: class, msg: fmt.Sprintf("%s: %s", class.Error(), msg)}
}
