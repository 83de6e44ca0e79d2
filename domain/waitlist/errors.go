package waitlist

import (
	"errors"

	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
)

// Sentinel errors for the waitlist domain.
var (
	ErrDuplicateEmail   = errors.New("this email is already on the waitlist")
	ErrEntryNotFound    = errors.New("waitlist entry not found")
	ErrWaitlistNotEmpty = errors.New("waitlist already contains entries")
)

func NewDuplicateEmailError() *apperrors.AppError {
	return apperrors.NewConflictError("This email is already on the waitlist!", ErrDuplicateEmail)
}

func NewEntryNotFoundError() *apperrors.AppError {
	return apperrors.NewNotFoundError("waitlist entry not found", ErrEntryNotFound)
}

func NewWaitlistNotEmptyError() *apperrors.AppError {
	return apperrors.NewConflictError("refusing to seed a non-empty waitlist", ErrWaitlistNotEmpty)
}

// IsDuplicateEmail reports whether err stems from the duplicate-email check.
func IsDuplicateEmail(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}
