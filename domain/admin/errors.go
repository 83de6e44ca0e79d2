package admin

import (
	"errors"

	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
)

// Sentinel errors for the admin domain.
var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrNoSession       = errors.New("no admin session")
)

func NewInvalidPasswordError() *apperrors.AppError {
	return apperrors.NewUnauthorizedError("Incorrect password. Try again.", ErrInvalidPassword)
}

func NewNoSessionError() *apperrors.AppError {
	return apperrors.NewUnauthorizedError("Admin session required", ErrNoSession)
}
