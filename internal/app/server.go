// Package app assembles the roster service from its configured parts.
package app

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/roster-service/internal/api/http"
	"github.com/spec-kit/roster-service/internal/api/http/handlers"
	"github.com/spec-kit/roster-service/internal/config"
	"github.com/spec-kit/roster-service/internal/events"
	"github.com/spec-kit/roster-service/internal/observability"
	"github.com/spec-kit/roster-service/internal/persistence"
	"github.com/spec-kit/roster-service/internal/service"
)

// Server is the wired HTTP application.
type Server struct {
	App        *fiber.App
	Metrics    *observability.Metrics
	Assignment *service.AssignmentService
}

// NewServer wires services, handlers and middlewares on top of an opened store.
// redis may be a disabled client.
func NewServer(cfg *config.Config, logger *zap.Logger, store *Store, redis *persistence.Redis) *Server {
	dispatcher := events.NewInMemoryDispatcher()
	notifier := service.NewNotificationService(dispatcher, logger.Named("notifier"), redis, cfg.Redis.EventsChannel)
	notifier.RegisterHandlers()

	assignment := service.NewAssignmentService(service.AssignmentDependencies{
		TeamRepo:     store.Repos.Teams,
		EmployeeRepo: store.Repos.Employees,
		Dispatcher:   dispatcher,
		Logger:       logger.Named("assignment"),
		Policy: service.Policy{
			BlockAssignedEmployeeDelete: cfg.Roster.BlockAssignedEmployeeDelete,
		},
	})

	deps := map[string]handlers.Pinger{store.Driver: store.Probe}
	if redis.Enabled() {
		deps["redis"] = redis
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:           cfg.App.RequestTimeout(),
		AllowOrigin:       cfg.App.CORSAllowOrigins,
		ExposeErrorDetail: !cfg.App.IsProduction(),
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps),
		Teams:     handlers.NewTeamsHandler(assignment),
		Employees: handlers.NewEmployeesHandler(assignment),
		Board:     handlers.NewBoardHandler(assignment),
		Metrics:   handlers.NewMetricsHandler(metrics),
	})

	return &Server{App: app, Metrics: metrics, Assignment: assignment}
}
