package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeID identifies an employee. It is opaque to callers.
type EmployeeID string

// Employee is a named resource with a skill and cost, optionally assigned to one team.
type Employee struct {
	ID        EmployeeID
	Name      string
	NameKey   string
	Skill     string
	Cost      decimal.Decimal
	TeamID    *TeamID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Unassigned reports whether the employee belongs to the unassigned pool.
func (e Employee) Unassigned() bool {
	return e.TeamID == nil
}

// AssignedTo reports whether the employee currently references the given team.
func (e Employee) AssignedTo(teamID TeamID) bool {
	return e.TeamID != nil && *e.TeamID == teamID
}

// SameTeam compares two nullable team references.
func SameTeam(a, b *TeamID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
