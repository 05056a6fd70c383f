package errors

import (
	"errors"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

// MapDomainError translates the shared error kinds into problem details.
func MapDomainError(err error) (ProblemDetail, bool) {
	var problem ProblemDetail
	switch {
	case errors.Is(err, domainerrors.ErrEntityNotFound), errors.Is(err, domainerrors.ErrIndexOutOfRange):
		problem = ErrNotFound
	case errors.Is(err, domainerrors.ErrDuplicateEntity):
		problem = ErrConflict
	case errors.Is(err, domainerrors.ErrInvalidField),
		errors.Is(err, domainerrors.ErrInvalidDate),
		errors.Is(err, domainerrors.ErrInvalidStage):
		problem = ErrValidation
	default:
		return ProblemDetail{}, false
	}
	return problem.WithDetail(err.Error()), true
}
