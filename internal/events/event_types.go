package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTeamCreated        EventType = "team_created"
	EventTeamRenamed        EventType = "team_renamed"
	EventTeamDeleted        EventType = "team_deleted"
	EventEmployeeCreated    EventType = "employee_created"
	EventEmployeeUpdated    EventType = "employee_updated"
	EventEmployeeDeleted    EventType = "employee_deleted"
	EventEmployeeReassigned EventType = "employee_reassigned"
)

// AllEventTypes lists every roster event, in publication-agnostic order.
var AllEventTypes = []EventType{
	EventTeamCreated,
	EventTeamRenamed,
	EventTeamDeleted,
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventEmployeeDeleted,
	EventEmployeeReassigned,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// TeamPayload describes a team mutation.
type TeamPayload struct {
	Name string `json:"name"`
}

// EmployeePayload describes an employee create or update.
type EmployeePayload struct {
	Name  string `json:"name"`
	Skill string `json:"skill"`
	Cost  string `json:"cost"`
}

// EmployeeReassignedPayload payload.
type EmployeeReassignedPayload struct {
	FromTeamID *string `json:"from_team_id"`
	ToTeamID   *string `json:"to_team_id"`
}

// EmployeeDeletedPayload payload.
type EmployeeDeletedPayload struct {
	FreedTeamID *string `json:"freed_team_id,omitempty"`
}
