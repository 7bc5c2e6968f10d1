package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/termjournal/internal/logger"
)

// ValidationError is a user-correctable input problem. It never implies data loss.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StorageError wraps an I/O or engine fault raised by a store operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DeserializationError is returned when a stored draft cannot be decoded.
type DeserializationError struct {
	Date string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("draft for %s is unreadable: %v", e.Date, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewStorage wraps err in a StorageError. A nil err stays nil, and errors that
// are already typed pass through untouched.
func NewStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) || IsStorage(err) || IsDeserialization(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

// IsStorage reports whether err is or wraps a StorageError
func IsStorage(err error) bool {
	var target *StorageError
	return stderrors.As(err, &target)
}

// IsDeserialization reports whether err is or wraps a DeserializationError
func IsDeserialization(err error) bool {
	var target *DeserializationError
	return stderrors.As(err, &target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
