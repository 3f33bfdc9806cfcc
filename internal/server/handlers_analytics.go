package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	apperrors "github.com/luckyvista/feedbackpulse/internal/errors"
)

const (
	defaultEngagementWindowDays = 7
	defaultTrendDays            = 30
)

func (s *Server) handleMetrics(c echo.Context) error {
	snap, err := s.analytics.Metrics(c.Request().Context(), callerScope(c), c.QueryParam("tenant"))
	if err != nil {
		return mapServiceError(err)
	}
	return writeJSON(c, snap)
}

func (s *Server) handleSentimentDistribution(c echo.Context) error {
	dist, err := s.analytics.SentimentDistribution(c.Request().Context(), callerScope(c), c.QueryParam("tenant"))
	if err != nil {
		return mapServiceError(err)
	}
	return writeJSON(c, map[string]any{"sentiment_distribution": dist})
}

func (s *Server) handleRatingBreakdown(c echo.Context) error {
	breakdown, err := s.analytics.RatingBreakdown(c.Request().Context(), callerScope(c), c.QueryParam("tenant"))
	if err != nil {
		return mapServiceError(err)
	}
	return writeJSON(c, map[string]any{"rating_breakdown": breakdown})
}

func (s *Server) handleTrends(c echo.Context) error {
	rng, err := s.parseTimeRange(c)
	if err != nil {
		return err
	}

	granularity := domain.Granularity(c.QueryParam("granularity"))
	if granularity == "" {
		granularity = domain.GranularityDay
	}

	points, err := s.analytics.Trends(c.Request().Context(), callerScope(c), c.QueryParam("tenant"), rng, granularity)
	if err != nil {
		return mapServiceError(err)
	}
	return writeJSON(c, map[string]any{"trends": points, "granularity": granularity})
}

func (s *Server) handleTenantComparison(c echo.Context) error {
	rows, err := s.analytics.TenantComparison(c.Request().Context(), callerScope(c))
	if err != nil {
		return mapServiceError(err)
	}
	return writeJSON(c, map[string]any{"tenants": rows})
}

func (s *Server) handleEngagement(c echo.Context) error {
	windowDays := defaultEngagementWindowDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("days must be an integer").WithContext("days", raw)
		}
		windowDays = parsed
	}

	eng, err := s.analytics.Engagement(c.Request().Context(), callerScope(c), c.QueryParam("tenant"), windowDays)
	if err != nil {
		return mapServiceError(err)
	}
	return writeJSON(c, eng)
}

func (s *Server) handleRecentActivity(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("limit must be an integer").WithContext("limit", raw)
		}
		limit = parsed
	}

	entries, err := s.analytics.RecentActivity(c.Request().Context(), callerScope(c), c.QueryParam("tenant"), limit)
	if err != nil {
		return mapServiceError(err)
	}
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	return writeJSON(c, map[string]any{"activity": entries})
}

func (s *Server) handleSnapshot(c echo.Context) error {
	scope := callerScope(c)
	tenant := c.QueryParam("tenant")

	// The cache key is the resolved filter, so the scope check runs
	// before any cache lookup.
	filter, err := scope.Filter(tenant)
	if err != nil {
		return mapServiceError(err)
	}

	if snap, ok := s.snapshots.Get(filter); ok {
		return writeJSON(c, snap)
	}

	snap, err := s.analytics.Snapshot(c.Request().Context(), scope, tenant)
	if err != nil {
		return mapServiceError(err)
	}
	s.snapshots.Set(filter, snap)
	return writeJSON(c, snap)
}

// parseTimeRange resolves the trend window. Explicit from/to (RFC 3339)
// win; otherwise days counts back from now (default 30).
func (s *Server) parseTimeRange(c echo.Context) (domain.TimeRange, error) {
	rawFrom, rawTo := c.QueryParam("from"), c.QueryParam("to")
	if rawFrom != "" || rawTo != "" {
		from, err := time.Parse(time.RFC3339, rawFrom)
		if err != nil {
			return domain.TimeRange{}, apperrors.ValidationError("from must be an RFC 3339 timestamp").WithContext("from", rawFrom)
		}
		to, err := time.Parse(time.RFC3339, rawTo)
		if err != nil {
			return domain.TimeRange{}, apperrors.ValidationError("to must be an RFC 3339 timestamp").WithContext("to", rawTo)
		}
		return domain.TimeRange{From: from, To: to}, nil
	}

	days := defaultTrendDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return domain.TimeRange{}, apperrors.ValidationError("days must be a positive integer").WithContext("days", raw)
		}
		days = parsed
	}
	now := s.clock.Now()
	return domain.TimeRange{From: now.AddDate(0, 0, -days), To: now.Add(time.Second)}, nil
}

func writeJSON(c echo.Context, payload any) error {
	if err := c.JSON(http.StatusOK, payload); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
