package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/repository"
	"github.com/spec-kit/roster-service/internal/service"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// EmployeesHandler exposes employee endpoints.
type EmployeesHandler struct {
	service *service.AssignmentService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(assignmentService *service.AssignmentService) *EmployeesHandler {
	return &EmployeesHandler{service: assignmentService}
}

// ListEmployees GET /api/employees?team_id=&unassigned=.
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	filter, err := parseEmployeeFilter(c)
	if err != nil {
		return err
	}
	employees, err := h.service.ListEmployees(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "employees fetched", dto.NewEmployeeResponses(employees))
}

// CreateEmployee POST /api/employees.
func (h *EmployeesHandler) CreateEmployee(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	employee, err := h.service.CreateEmployee(c.UserContext(), req.Name, req.Skill, *req.Cost)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Employee added successfully", dto.NewEmployeeResponse(employee))
}

// GetEmployee GET /api/employees/:id.
func (h *EmployeesHandler) GetEmployee(c *fiber.Ctx) error {
	employee, err := h.service.GetEmployee(c.UserContext(), domain.EmployeeID(c.Params("id")))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "employee fetched", dto.NewEmployeeResponse(employee))
}

// UpdateEmployee PATCH /api/employees/:id.
func (h *EmployeesHandler) UpdateEmployee(c *fiber.Ctx) error {
	var req dto.UpdateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	update := service.EmployeeUpdate{Name: req.Name, Skill: req.Skill, Cost: req.Cost}
	employee, err := h.service.UpdateEmployee(c.UserContext(), domain.EmployeeID(c.Params("id")), update)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Employee updated successfully", dto.NewEmployeeResponse(employee))
}

// DeleteEmployee DELETE /api/employees/:id.
func (h *EmployeesHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.service.DeleteEmployee(c.UserContext(), domain.EmployeeID(c.Params("id"))); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Employee deleted successfully", dto.DeletedResponse{Deleted: true})
}

// ReassignEmployee PUT /api/employees/:id/team.
func (h *EmployeesHandler) ReassignEmployee(c *fiber.Ctx) error {
	var req dto.ReassignRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.reassign(c, req.TeamID)
}

// LegacyReassignEmployee PUT /api/updateemployees/:id with a {"teamId"} body.
func (h *EmployeesHandler) LegacyReassignEmployee(c *fiber.Ctx) error {
	var req dto.LegacyReassignRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.reassign(c, req.TeamID)
}

func (h *EmployeesHandler) reassign(c *fiber.Ctx, teamID *string) error {
	employee, err := h.service.ReassignEmployee(c.UserContext(), domain.EmployeeID(c.Params("id")), repository.StringToTeamID(teamID))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Employee team updated successfully", dto.NewEmployeeResponse(employee))
}

func parseEmployeeFilter(c *fiber.Ctx) (repository.EmployeeFilter, error) {
	var filter repository.EmployeeFilter
	if raw := strings.TrimSpace(c.Query("unassigned")); raw != "" {
		unassigned, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid query", map[string]any{"unassigned": "must be a boolean"})
		}
		filter.Unassigned = unassigned
	}
	if raw := strings.TrimSpace(c.Query("team_id")); raw != "" {
		if filter.Unassigned {
			return filter, apperrors.NewValidationError("invalid query", map[string]any{
				"team_id": "cannot be combined with unassigned",
			})
		}
		teamID := domain.TeamID(raw)
		filter.TeamID = &teamID
	}
	return filter, nil
}
