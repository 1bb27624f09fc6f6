package api

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Error taxonomy surfaced to the client. Every member maps to a
// response-level failure with a human readable message; none of them
// crash the process.
var (
	// ErrValidation covers missing or malformed required fields. Wrap it
	// with field context via Validationf.
	ErrValidation = stderrors.New("invalid request")

	// ErrUnauthorized is deliberately generic so login failures don't
	// reveal whether the username exists.
	ErrUnauthorized = stderrors.New("username or password is incorrect")

	// ErrQuotaExceeded is returned when a user already has the maximum
	// number of custom categories.
	ErrQuotaExceeded = stderrors.New("custom categories are limited to 10 per user")

	// ErrDuplicateName is returned when a custom category with the same
	// exact name already exists for the user.
	ErrDuplicateName = stderrors.New("a category with the same name already exists")

	// ErrEmptyName is returned when the trimmed custom category name is
	// empty.
	ErrEmptyName = stderrors.New("category name is empty")

	// ErrStoreUnavailable indicates the persistence layer is unreachable
	// or not yet provisioned. Read paths degrade instead of returning it.
	ErrStoreUnavailable = stderrors.New("persistence store unavailable")
)

// Validationf wraps ErrValidation with a message describing the offending
// field.
func Validationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}
