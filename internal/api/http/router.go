package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Teams     *handlers.TeamsHandler
	Employees *handlers.EmployeesHandler
	Board     *handlers.BoardHandler
	Metrics   *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Get)

	api := app.Group("/api")

	teams := api.Group("/teams")
	teams.Get("/", cfg.Teams.ListTeams)
	teams.Post("/", cfg.Teams.CreateTeam)
	teams.Get("/:id", cfg.Teams.GetTeam)
	teams.Patch("/:id", cfg.Teams.RenameTeam)
	teams.Delete("/:id", cfg.Teams.DeleteTeam)

	employees := api.Group("/employees")
	employees.Get("/", cfg.Employees.ListEmployees)
	employees.Post("/", cfg.Employees.CreateEmployee)
	employees.Get("/:id", cfg.Employees.GetEmployee)
	employees.Patch("/:id", cfg.Employees.UpdateEmployee)
	employees.Delete("/:id", cfg.Employees.DeleteEmployee)
	employees.Put("/:id/team", cfg.Employees.ReassignEmployee)

	api.Get("/board", cfg.Board.GetBoard)

	// Paths used by the first board client.
	api.Get("/getteam", cfg.Teams.ListTeams)
	api.Post("/team", cfg.Teams.CreateTeam)
	api.Delete("/deleteteam/:id", cfg.Teams.DeleteTeam)
	api.Get("/getemployees", cfg.Employees.ListEmployees)
	api.Delete("/deleteemployees/:id", cfg.Employees.DeleteEmployee)
	api.Put("/updateemployees/:id", cfg.Employees.LegacyReassignEmployee)
}
