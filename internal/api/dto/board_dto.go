package dto

import (
	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/service"
)

// SummaryResponse renders aggregate figures as fixed two-decimal strings.
type SummaryResponse struct {
	Count       int    `json:"count"`
	TotalCost   string `json:"total_cost"`
	AverageCost string `json:"average_cost"`
}

// NewSummaryResponse rounds a domain summary for display.
func NewSummaryResponse(summary domain.Summary) SummaryResponse {
	return SummaryResponse{
		Count:       summary.Count,
		TotalCost:   summary.DisplayTotal().StringFixed(2),
		AverageCost: summary.DisplayAverage().StringFixed(2),
	}
}

// TeamRosterResponse is one team column of the board.
type TeamRosterResponse struct {
	Team      TeamResponse       `json:"team"`
	Employees []EmployeeResponse `json:"employees"`
	Summary   SummaryResponse    `json:"summary"`
}

// PoolResponse is the unassigned column of the board.
type PoolResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Summary   SummaryResponse    `json:"summary"`
}

// BoardResponse is the full roster view.
type BoardResponse struct {
	Teams      []TeamRosterResponse `json:"teams"`
	Unassigned PoolResponse         `json:"unassigned"`
	Overall    SummaryResponse      `json:"overall"`
}

// NewBoardResponse maps the board projection.
func NewBoardResponse(board *service.Board) BoardResponse {
	teams := make([]TeamRosterResponse, 0, len(board.Teams))
	for i := range board.Teams {
		roster := &board.Teams[i]
		teams = append(teams, TeamRosterResponse{
			Team:      NewTeamResponse(&roster.Team),
			Employees: NewEmployeeResponses(roster.Employees),
			Summary:   NewSummaryResponse(roster.Summary),
		})
	}
	return BoardResponse{
		Teams: teams,
		Unassigned: PoolResponse{
			Employees: NewEmployeeResponses(board.Unassigned),
			Summary:   NewSummaryResponse(board.Pool),
		},
		Overall: NewSummaryResponse(board.Overall),
	}
}
