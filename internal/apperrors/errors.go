package apperrors

import (
	"errors"
	"fmt"
)

// Category is a flat tag attached to handled errors. It only selects the
// user-facing message and HTTP status; every handled error is treated as
// recoverable and reported.
type Category string

const (
	Authentication Category = "authentication"
	Database       Category = "database"
	Network        Category = "network"
	Validation     Category = "validation"
	FileUpload     Category = "file_upload"
	Permission     Category = "permission"
	Unknown        Category = "unknown"
)

// Error is a categorized application error
type Error struct {
	Category Category
	Message  string // User-facing
	Err      error  // Underlying cause, logged but never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a categorized error with a user-facing message
func New(cat Category, message string) *Error {
	return &Error{Category: cat, Message: message}
}

// Wrap attaches a category and user-facing message to an underlying error
func Wrap(cat Category, message string, err error) *Error {
	return &Error{Category: cat, Message: message, Err: err}
}

// CategoryOf extracts the category of an error, defaulting to unknown
func CategoryOf(err error) Category {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Category
	}
	return Unknown
}

// MessageOf extracts the user-facing message, falling back to a generic one
// so internal details never leak to clients
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Une erreur est survenue"
}

// StatusOf maps a category to an HTTP status code
func StatusOf(err error) int {
	switch CategoryOf(err) {
	case Validation:
		return 400
	case Authentication:
		return 401
	case Permission:
		return 403
	case Database, Network, FileUpload, Unknown:
		return 500
	}
	return 500
}
