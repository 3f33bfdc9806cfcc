package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no identity headers required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Everything under /api carries upstream identity headers.
	api := s.echo.Group("/api", s.requireIdentity)

	api.POST("/feedback", s.handleSubmitFeedback)
	api.GET("/feedback", s.handleListMyFeedback)

	api.GET("/analytics/metrics", s.handleMetrics)
	api.GET("/analytics/sentiment", s.handleSentimentDistribution)
	api.GET("/analytics/ratings", s.handleRatingBreakdown)
	api.GET("/analytics/trends", s.handleTrends)
	api.GET("/analytics/comparison", s.handleTenantComparison)
	api.GET("/analytics/engagement", s.handleEngagement)
	api.GET("/analytics/activity", s.handleRecentActivity)
	api.GET("/analytics/snapshot", s.handleSnapshot)

	api.POST("/admin/reclassify", s.handleReclassify)
	api.POST("/admin/model/reload", s.handleModelReload)
	api.GET("/admin/model", s.handleModelInfo)
}
