package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/repository"
)

// CreateEmployeeRequest payload. Cost accepts a JSON number or a numeric string.
type CreateEmployeeRequest struct {
	Name  string           `json:"name" validate:"required,max=255"`
	Skill string           `json:"skill" validate:"required,max=255"`
	Cost  *decimal.Decimal `json:"cost" validate:"required"`
}

// UpdateEmployeeRequest payload. Omitted fields stay unchanged.
type UpdateEmployeeRequest struct {
	Name  *string          `json:"name" validate:"omitempty,max=255"`
	Skill *string          `json:"skill" validate:"omitempty,max=255"`
	Cost  *decimal.Decimal `json:"cost"`
}

// ReassignRequest payload. A null or absent team_id moves the employee to the unassigned pool.
type ReassignRequest struct {
	TeamID *string `json:"team_id" validate:"omitempty,min=1"`
}

// LegacyReassignRequest is the body of PUT /api/updateemployees/:id.
type LegacyReassignRequest struct {
	TeamID *string `json:"teamId" validate:"omitempty,min=1"`
}

// EmployeeResponse represents an employee.
type EmployeeResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Skill     string          `json:"skill"`
	Cost      decimal.Decimal `json:"cost"`
	TeamID    *string         `json:"team_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        string(employee.ID),
		Name:      employee.Name,
		Skill:     employee.Skill,
		Cost:      employee.Cost,
		TeamID:    repository.TeamIDToString(employee.TeamID),
		CreatedAt: employee.CreatedAt,
		UpdatedAt: employee.UpdatedAt,
	}
}

// NewEmployeeResponses maps a list of employees.
func NewEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, NewEmployeeResponse(&employees[i]))
	}
	return out
}
