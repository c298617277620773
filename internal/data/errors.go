package data

import (
	"errors"

	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

// mapDBErr translates a database failure into an application error. Known
// database conditions (no rows, constraint violations, context expiry) keep
// their mapped codes; anything else becomes an internal error carrying op as
// the message.
func mapDBErr(err error, op string) error {
	mapped := apperrors.MapDBError(err)
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) {
		return mapped
	}
	return apperrors.Wrap(mapped, apperrors.ErrCodeInternal, op)
}

// notFound builds the tenant-safe not found error used when a row either does
// not exist or belongs to another tenant. The two cases are indistinguishable
// to the caller.
func notFound(what string) error {
	return apperrors.NotFoundf("%s not found", what)
}
