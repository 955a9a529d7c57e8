// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"

	usersusecase "user_backend/internal/feature/users/usecase"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	// Both cases share this error so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyExists is returned by Register when the email is taken,
	// whether found by the pre-check or by the store's unique index.
	ErrEmailAlreadyExists = usersusecase.ErrEmailAlreadyExists
)
