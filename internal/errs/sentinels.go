// Package errs contains sentinel errors shared across layers so handlers can
// map store/service failures to transport status codes in one place.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUserExists indicates the normalized username is already taken.
	ErrUserExists = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown user and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrValidation indicates a missing required request field.
	ErrValidation = errors.New("validation failed")

	// ErrShortPassword indicates a password below the minimum length.
	ErrShortPassword = errors.New("password too short")

	// ErrInvalidEmail indicates a malformed email address at signup.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrNoNotifications indicates the user has no notifications to remove.
	ErrNoNotifications = errors.New("no notifications found")

	// ErrBadIndex indicates a notification index outside current bounds.
	ErrBadIndex = errors.New("notification index out of range")
)
