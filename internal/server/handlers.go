package server

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	apperrors "github.com/luckyvista/feedbackpulse/internal/errors"
)

// mapServiceError translates domain and validation errors into the
// structured errors the middleware renders. Anything unrecognized is an
// internal error.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return apperrors.PermissionError("caller is not authorized for the requested tenant")
	case errors.Is(err, domain.ErrInvalidRange):
		return apperrors.ValidationError("invalid time range or granularity")
	case errors.Is(err, domain.ErrLimitExceeded):
		return apperrors.ValidationError("limit exceeds the maximum allowed")
	case errors.Is(err, domain.ErrFeedbackNotFound):
		return apperrors.NotFoundError("feedback not found")
	case errors.As(err, &verrs):
		return validationErrorResponse(verrs)
	default:
		return apperrors.InternalError("request failed", err)
	}
}

// validationErrorResponse flattens validator output into one structured
// error with per-field context.
func validationErrorResponse(verrs validator.ValidationErrors) *apperrors.Error {
	appErr := apperrors.ValidationError("invalid feedback submission")
	for _, fe := range verrs {
		appErr = appErr.WithContext(fe.Field(), fe.Tag())
	}
	return appErr
}
