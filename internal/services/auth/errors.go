package auth

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code, request a new one")
	ErrInvalidToken            = errors.New("invalid or expired token")
)

// FieldConflictError reports a signup identity collision together with
// the field whose supplied value did not match the existing user.
type FieldConflictError struct {
	Field   string
	Message string
}

func (e *FieldConflictError) Error() string {
	return e.Message
}

var (
	// the username is already registered under a different email
	ErrEmailMismatch = &FieldConflictError{
		Field:   "email",
		Message: "this username is already registered with a different email",
	}
	// the email is already registered under a different username
	ErrUsernameMismatch = &FieldConflictError{
		Field:   "username",
		Message: "this email is already registered with a different username",
	}
)
