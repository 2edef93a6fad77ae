// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUserID is returned when a user carries the zero UUID.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrEmptyEmail is returned when a user has no email address.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrEmptyName is returned when a user has no name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidRole is returned when a role is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptyPassword is returned when a user is created without a password secret.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrEmptyPatch is returned when a partial update carries no fields.
	ErrEmptyPatch = errors.New("update must contain at least one field")

	// ErrCredentialNotFound indicates that the referenced credential does not exist
	// inside its parent user.
	ErrCredentialNotFound = errors.New("credential not found")
)

// ValidationError carries the field that failed validation together with the
// underlying sentinel error.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
