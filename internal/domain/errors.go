package domain

import "errors"

var (
	ErrPermissionDenied = errors.New("caller is not authorized for the requested tenant")
	ErrInvalidRange     = errors.New("invalid time range")
	ErrLimitExceeded    = errors.New("limit exceeds hard cap")
	ErrFeedbackNotFound = errors.New("feedback not found")
)
