package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/roster-service/internal/domain"
)

// Storage sentinels shared by every backend.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("duplicate name")
	// ErrTeamNotFound reports a write referencing a team that does not exist.
	ErrTeamNotFound = errors.New("referenced team not found")
	// ErrTeamInUse reports a team delete blocked by assigned employees.
	ErrTeamInUse = errors.New("team has assigned employees")
)

// TeamRepository manages persistence for teams.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	Update(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id domain.TeamID) (*domain.Team, error)
	GetByNameKey(ctx context.Context, nameKey string) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	// Delete removes the team unless an active employee references it.
	Delete(ctx context.Context, id domain.TeamID) error
}

// EmployeeFilter narrows employee listings. TeamID and Unassigned are exclusive.
type EmployeeFilter struct {
	TeamID     *domain.TeamID
	Unassigned bool
}

// EmployeeRepository manages persistence for employees. Soft-deleted rows are never returned.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id domain.EmployeeID) (*domain.Employee, error)
	GetByNameKey(ctx context.Context, nameKey string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	CountByTeam(ctx context.Context, teamID domain.TeamID) (int, error)
	// AssignTeam sets team_id in one write; a vanished team yields ErrTeamNotFound.
	AssignTeam(ctx context.Context, id domain.EmployeeID, teamID *domain.TeamID) (*domain.Employee, error)
	// SoftDelete stamps deleted_at and clears the team reference.
	SoftDelete(ctx context.Context, id domain.EmployeeID, at time.Time) error
}

// Repositories bundles the data store for one backend.
type Repositories struct {
	Teams     TeamRepository
	Employees EmployeeRepository
}

// TeamIDToString converts a nullable team reference for driver parameters.
func TeamIDToString(id *domain.TeamID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

// StringToTeamID converts a scanned nullable column back to a team reference.
func StringToTeamID(s *string) *domain.TeamID {
	if s == nil {
		return nil
	}
	id := domain.TeamID(*s)
	return &id
}

// NullableString maps "" to NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
