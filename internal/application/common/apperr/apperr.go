// Package apperr translates domain errors into shared AppErrors.
package apperr

import (
	"errors"

	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	apperrors "github.com/rafflehub/rafflehub/internal/shared/errors"
)

var (
	validationErrors = []error{
		product.ErrInvalidDimension,
		product.ErrInvalidProductValue,
		raffle.ErrInvalidQuantity,
		raffle.ErrMissingRejectReason,
		raffle.ErrMissingCancelReason,
		raffle.ErrPaymentMismatch,
		raffle.ErrInvalidWinningNumber,
	}
	notFoundErrors = []error{
		raffle.ErrRaffleNotFound,
		raffle.ErrTicketNotFound,
		product.ErrProductNotFound,
		deposit.ErrDepositNotFound,
	}
	conflictErrors = []error{
		raffle.ErrInvalidStatusTransition,
		raffle.ErrInsufficientTickets,
		raffle.ErrRaffleNotActive,
		raffle.ErrShopBlocked,
		product.ErrProductLocked,
		product.ErrInvalidStatusTransition,
		product.ErrVersionConflict,
		deposit.ErrInvalidStatusTransition,
	}
)

// FromDomain maps err to an AppError that still unwraps to err. nil stays nil
// and AppErrors pass through.
func FromDomain(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	switch {
	case raffle.IsFatal(err):
		return apperrors.NewInternalError("internal error").WithCause(err)
	case errors.Is(err, raffle.ErrUnauthorized):
		return apperrors.NewForbiddenError("not allowed to perform this action").WithCause(err)
	case errors.Is(err, raffle.ErrBusy):
		return apperrors.NewServiceUnavailableError("raffle is busy, retry later").WithCause(err)
	case matchesAny(err, validationErrors):
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	case matchesAny(err, notFoundErrors):
		return apperrors.NewNotFoundError(err.Error()).WithCause(err)
	case matchesAny(err, conflictErrors):
		return apperrors.NewConflictError(err.Error()).WithCause(err)
	default:
		return apperrors.NewInternalError("internal error").WithCause(err)
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// FromInput is FromDomain for errors raised while building entities from
// caller input: anything unrecognised is reported as a validation failure.
func FromInput(message string, err error) error {
	mapped := FromDomain(err)
	if appErr := apperrors.GetAppError(mapped); appErr != nil && appErr.Type == apperrors.ErrorTypeInternal && !raffle.IsFatal(err) {
		return apperrors.NewValidationError(message, err.Error()).WithCause(err)
	}
	return mapped
}
