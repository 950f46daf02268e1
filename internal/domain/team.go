package domain

import "time"

// TeamID identifies a team. It is opaque to callers.
type TeamID string

// Team is a named grouping that employees can be assigned to.
type Team struct {
	ID        TeamID
	Name      string
	NameKey   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
