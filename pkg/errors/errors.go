package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNoInputFiles      = errors.New("no input files: specify at least one file to analyze")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileAccess        = errors.New("file read failed")
	ErrMalformedRecord   = errors.New("malformed JSON record")
	ErrSchema            = errors.New("record schema mismatch")
	ErrDateParse         = errors.New("invalid date")
	ErrInvalidExpression = errors.New("invalid filter expression")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrConfigNotFound    = errors.New("config not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
)

func NewFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, reason)
}

func NewFileAccessError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileAccess, path, reason)
}

func NewMalformedRecordError(line string, reason error) error {
	return fmt.Errorf("%w: %q: %v", ErrMalformedRecord, line, reason)
}

func NewSchemaError(field string, reason string) error {
	return fmt.Errorf("%w: field=%s: %s", ErrSchema, field, reason)
}

func NewDateError(value string, reason error) error {
	return fmt.Errorf("%w: %q: %v", ErrDateParse, value, reason)
}

func NewExpressionError(src string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidExpression, src, reason)
}

func NewFormatError(format string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}
