// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when an email is already owned by another user,
	// either detected by the explicit pre-check or by the unique index at insert/update time.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
