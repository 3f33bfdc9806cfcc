package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	apperrors "github.com/luckyvista/feedbackpulse/internal/errors"
	"github.com/luckyvista/feedbackpulse/internal/feedback"
)

func (s *Server) handleSubmitFeedback(c echo.Context) error {
	var sub feedback.Submission
	if err := c.Bind(&sub); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	record, err := s.feedback.Submit(c.Request().Context(), callerScope(c), callerUserID(c), sub)
	if err != nil {
		return mapServiceError(err)
	}

	if err := c.JSON(http.StatusCreated, record); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListMyFeedback(c echo.Context) error {
	records, err := s.feedback.ListMine(c.Request().Context(), callerScope(c), callerUserID(c))
	if err != nil {
		return mapServiceError(err)
	}
	if records == nil {
		records = []domain.FeedbackRecord{}
	}

	if err := c.JSON(http.StatusOK, map[string]any{
		"feedback": records,
		"count":    len(records),
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
