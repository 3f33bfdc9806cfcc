package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/luckyvista/feedbackpulse/internal/analytics"
	"github.com/luckyvista/feedbackpulse/internal/config"
	"github.com/luckyvista/feedbackpulse/internal/emotion"
	apperrors "github.com/luckyvista/feedbackpulse/internal/errors"
	"github.com/luckyvista/feedbackpulse/internal/feedback"
)

// postgresHealthChecker is a minimal interface for PostgreSQL health checks
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	feedback  *feedback.Service
	analytics *analytics.Aggregator
	snapshots *analytics.SnapshotCache
	model     *emotion.Service
	db        postgresHealthChecker
	clock     clockwork.Clock
	startTime time.Time
}

func NewServer(
	cfg *config.Config,
	feedbackSvc *feedback.Service,
	aggregator *analytics.Aggregator,
	snapshots *analytics.SnapshotCache,
	model *emotion.Service,
	db postgresHealthChecker,
	clock clockwork.Clock,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		feedback:  feedbackSvc,
		analytics: aggregator,
		snapshots: snapshots,
		model:     model,
		db:        db,
		clock:     clock,
		startTime: clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
