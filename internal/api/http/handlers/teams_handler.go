package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/service"
)

// TeamsHandler exposes team endpoints.
type TeamsHandler struct {
	service *service.AssignmentService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(assignmentService *service.AssignmentService) *TeamsHandler {
	return &TeamsHandler{service: assignmentService}
}

// ListTeams GET /api/teams.
func (h *TeamsHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.service.ListTeams(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "teams fetched", dto.NewTeamResponses(teams))
}

// CreateTeam POST /api/teams.
func (h *TeamsHandler) CreateTeam(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	team, err := h.service.CreateTeam(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Team created successfully", dto.NewTeamResponse(team))
}

// GetTeam GET /api/teams/:id.
func (h *TeamsHandler) GetTeam(c *fiber.Ctx) error {
	team, err := h.service.GetTeam(c.UserContext(), domain.TeamID(c.Params("id")))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "team fetched", dto.NewTeamResponse(team))
}

// RenameTeam PATCH /api/teams/:id.
func (h *TeamsHandler) RenameTeam(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	team, err := h.service.RenameTeam(c.UserContext(), domain.TeamID(c.Params("id")), req.Name)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Team renamed successfully", dto.NewTeamResponse(team))
}

// DeleteTeam DELETE /api/teams/:id.
func (h *TeamsHandler) DeleteTeam(c *fiber.Ctx) error {
	if err := h.service.DeleteTeam(c.UserContext(), domain.TeamID(c.Params("id"))); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Team deleted successfully", dto.DeletedResponse{Deleted: true})
}
