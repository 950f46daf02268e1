package service

import (
	"context"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// TeamRoster is one team with its members and their summary.
type TeamRoster struct {
	Team      domain.Team
	Employees []domain.Employee
	Summary   domain.Summary
}

// Board is a read-only snapshot of every team, the unassigned pool and overall totals.
type Board struct {
	Teams      []TeamRoster
	Unassigned []domain.Employee
	Pool       domain.Summary
	Overall    domain.Summary
}

// Board builds the roster snapshot from one read of each table.
func (s *AssignmentService) Board(ctx context.Context) (board *Board, err error) {
	ctx, span := startSpan(ctx, "AssignmentService.Board")
	defer func() { finishSpan(span, err) }()

	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	employees, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	board = &Board{Teams: make([]TeamRoster, 0, len(teams))}
	for _, team := range teams {
		id := team.ID
		members := domain.FilterByTeam(employees, &id)
		board.Teams = append(board.Teams, TeamRoster{
			Team:      team,
			Employees: members,
			Summary:   domain.Summarize(members),
		})
	}
	board.Unassigned = domain.FilterByTeam(employees, nil)
	board.Pool = domain.Summarize(board.Unassigned)
	board.Overall = domain.Summarize(employees)
	return board, nil
}

// TeamSummary aggregates the employees currently on a team.
func (s *AssignmentService) TeamSummary(ctx context.Context, id domain.TeamID) (domain.Summary, error) {
	employees, err := s.ListEmployees(ctx, repository.EmployeeFilter{TeamID: &id})
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(employees), nil
}
