package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	apperrors "github.com/luckyvista/feedbackpulse/internal/errors"
)

func (s *Server) handleReclassify(c echo.Context) error {
	updated, err := s.feedback.Reclassify(c.Request().Context(), callerScope(c))
	if err != nil {
		return mapServiceError(err)
	}
	return writeJSON(c, map[string]any{"status": "ok", "updated": updated})
}

func (s *Server) handleModelReload(c echo.Context) error {
	if !callerScope(c).IsPlatform() {
		return apperrors.PermissionError("model reload requires platform access")
	}
	if s.config.ModelArtifactPath == "" {
		return apperrors.UnavailableError("no model artifact path configured", nil)
	}

	if err := s.model.Reload(s.config.ModelArtifactPath); err != nil {
		slog.Error("Model reload failed", "error", err, "path", s.config.ModelArtifactPath)
		return apperrors.UnavailableError("model reload failed", err).WithContext("path", s.config.ModelArtifactPath)
	}

	return writeJSON(c, map[string]any{"status": "ok", "model": s.model.ModelInfo()})
}

func (s *Server) handleModelInfo(c echo.Context) error {
	if !callerScope(c).IsPlatform() {
		return apperrors.PermissionError("model info requires platform access")
	}
	return writeJSON(c, s.model.ModelInfo())
}
