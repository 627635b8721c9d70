package adplan

import (
	"errors"
	"fmt"
)

// ErrNotAPlanFile is returned when data does not start with the plan signature.
var ErrNotAPlanFile = errors.New("not a plan file")

// ErrTruncated is returned when a read runs past the end of the input.
var ErrTruncated = errors.New("truncated stream")

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}

// UnsupportedVersionError is returned for a format version newer than the
// newest version this package can read.
type UnsupportedVersionError struct {
	What    string
	Version int64
	Max     int64
}

func (u UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported %v format version %d (max %d)", u.What, u.Version, u.Max)
}

// CorruptSizeError is returned when a count or length field is negative,
// exceeds a hard cap or does not fit into the remaining input.
type CorruptSizeError struct {
	What string
	Size int64
	Max  int64
}

func (c CorruptSizeError) Error() string {
	return fmt.Sprintf("corrupt %v: %d (limit %d)", c.What, c.Size, c.Max)
}

// UnknownVariantError is returned for a drawable record with an unknown tag.
type UnknownVariantError struct {
	Tag uint8
}

func (u UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown drawable tag %d", u.Tag)
}

// IsFormatError checks if err is caused by a bad signature or an
// unsupported format version.
func IsFormatError(err error) bool {
	var uv UnsupportedVersionError
	return errors.Is(err, ErrNotAPlanFile) || errors.As(err, &uv)
}

// IsCorrupt checks if err is caused by an invalid count or length field.
func IsCorrupt(err error) bool {
	var c CorruptSizeError
	return errors.As(err, &c)
}

// IsTruncated checks if err is caused by reading past the end of input.
func IsTruncated(err error) bool {
	return errors.Is(err, ErrTruncated)
}

// IsUnknownVariant checks if err is caused by an unknown drawable tag.
func IsUnknownVariant(err error) bool {
	var u UnknownVariantError
	return errors.As(err, &u)
}

// Status renders the outcome of a decode operation as a human readable
// message.
func Status(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

type notFound struct {
	message string
}

// NewNotFound creates a new "not found" error.
func NewNotFound(s string, v ...interface{}) error {
	return notFound{fmt.Sprintf("Not found: %v", fmt.Sprintf(s, v...))}
}

func (n notFound) Error() string {
	return n.message
}

// IsNotFound checks if the given error is a "not found" error.
func IsNotFound(err error) bool {
	var n notFound
	return errors.As(err, &n)
}

type validationError struct {
	message string
}

func (v validationError) Error() string {
	return v.message
}

// NewValidationError creates an error of from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return validationError{fmt.Sprintf(msg, v...)}
}

// IsValidationError checks if the given error was caused by invalid data.
func IsValidationError(err error) bool {
	var v validationError
	return errors.As(err, &v)
}
