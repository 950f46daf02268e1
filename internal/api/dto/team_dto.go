package dto

import (
	"time"

	"github.com/spec-kit/roster-service/internal/domain"
)

// TeamRequest payload for create and rename.
type TeamRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// TeamResponse represents a team.
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTeamResponse maps a domain team.
func NewTeamResponse(team *domain.Team) TeamResponse {
	return TeamResponse{
		ID:        string(team.ID),
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
	}
}

// NewTeamResponses maps a list of teams.
func NewTeamResponses(teams []domain.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, NewTeamResponse(&teams[i]))
	}
	return out
}

// DeletedResponse is returned by delete endpoints.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}
