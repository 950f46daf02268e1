package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/events"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

const maxNameLength = 255

// AssignmentService enforces the roster rules around teams, employees and assignment.
// It keeps no state between calls; every operation re-reads the data store.
type AssignmentService struct {
	teams      repository.TeamRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	policy     Policy
	now        func() time.Time
}

// Policy holds the configurable roster rules.
type Policy struct {
	// BlockAssignedEmployeeDelete refuses DeleteEmployee while the employee is on a team.
	BlockAssignedEmployeeDelete bool
}

// AssignmentDependencies bundles repositories and collaborators.
type AssignmentDependencies struct {
	TeamRepo     repository.TeamRepository
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Policy       Policy
	Clock        func() time.Time
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AssignmentService{
		teams:      deps.TeamRepo,
		employees:  deps.EmployeeRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		policy:     deps.Policy,
		now:        clock,
	}
}

// EmployeeUpdate describes a partial employee edit. Nil fields are left unchanged.
type EmployeeUpdate struct {
	Name  *string
	Skill *string
	Cost  *decimal.Decimal
}

// CreateTeam persists a new team with a unique, non-blank name.
func (s *AssignmentService) CreateTeam(ctx context.Context, name string) (team *domain.Team, err error) {
	ctx, span := startSpan(ctx, "AssignmentService.CreateTeam")
	defer func() { finishSpan(span, err) }()

	clean, key, err := validateName("team", name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTeamNameFree(ctx, key, clean, nil); err != nil {
		return nil, err
	}

	team = &domain.Team{
		ID:      domain.TeamID(uuid.NewString()),
		Name:    clean,
		NameKey: key,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, storageError(err, "team", map[string]any{"name": clean})
	}

	s.logger.Info("team created", zap.String("team_id", string(team.ID)), zap.String("name", team.Name))
	s.publish(ctx, events.EventTeamCreated, string(team.ID), events.TeamPayload{Name: team.Name})
	return team, nil
}

// GetTeam fetches a team by id.
func (s *AssignmentService) GetTeam(ctx context.Context, id domain.TeamID) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "team", map[string]any{"team_id": string(id)})
	}
	return team, nil
}

// ListTeams returns every team in creation order.
func (s *AssignmentService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return teams, nil
}

// RenameTeam changes a team's name under the same rules as CreateTeam.
func (s *AssignmentService) RenameTeam(ctx context.Context, id domain.TeamID, name string) (team *domain.Team, err error) {
	ctx, span := startSpan(ctx, "AssignmentService.RenameTeam", attribute.String("team_id", string(id)))
	defer func() { finishSpan(span, err) }()

	clean, key, err := validateName("team", name)
	if err != nil {
		return nil, err
	}
	team, err = s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if team.Name == clean {
		return team, nil
	}
	if err := s.ensureTeamNameFree(ctx, key, clean, &id); err != nil {
		return nil, err
	}

	team.Name = clean
	team.NameKey = key
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, storageError(err, "team", map[string]any{"team_id": string(id), "name": clean})
	}

	s.logger.Info("team renamed", zap.String("team_id", string(id)), zap.String("name", clean))
	s.publish(ctx, events.EventTeamRenamed, string(id), events.TeamPayload{Name: clean})
	return team, nil
}

// DeleteTeam hard-deletes a team that no active employee references.
func (s *AssignmentService) DeleteTeam(ctx context.Context, id domain.TeamID) (err error) {
	ctx, span := startSpan(ctx, "AssignmentService.DeleteTeam", attribute.String("team_id", string(id)))
	defer func() { finishSpan(span, err) }()

	details := map[string]any{"team_id": string(id)}
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.employees.CountByTeam(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("team has assigned employees", map[string]any{
			"team_id":        string(id),
			"employee_count": count,
		})
	}

	// The delete is guarded again at the store in case an assignment raced in.
	if err := s.teams.Delete(ctx, id); err != nil {
		return storageError(err, "team", details)
	}

	s.logger.Info("team deleted", zap.String("team_id", string(id)))
	s.publish(ctx, events.EventTeamDeleted, string(id), events.TeamPayload{Name: team.Name})
	return nil
}

// CreateEmployee persists a new, unassigned employee.
func (s *AssignmentService) CreateEmployee(ctx context.Context, name, skill string, cost decimal.Decimal) (employee *domain.Employee, err error) {
	ctx, span := startSpan(ctx, "AssignmentService.CreateEmployee")
	defer func() { finishSpan(span, err) }()

	fields := map[string]any{}
	clean, key, nameErr := normalizeName(name)
	if nameErr != "" {
		fields["name"] = nameErr
	}
	cleanSkill := domain.CleanName(skill)
	if cleanSkill == "" {
		fields["skill"] = "is required"
	}
	if cost.IsNegative() {
		fields["cost"] = "must be a non-negative number"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("invalid employee", fields)
	}
	if err := s.ensureEmployeeNameFree(ctx, key, clean, nil); err != nil {
		return nil, err
	}

	employee = &domain.Employee{
		ID:      domain.EmployeeID(uuid.NewString()),
		Name:    clean,
		NameKey: key,
		Skill:   cleanSkill,
		Cost:    cost,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, storageError(err, "employee", map[string]any{"name": clean})
	}

	s.logger.Info("employee created", zap.String("employee_id", string(employee.ID)), zap.String("name", employee.Name))
	s.publish(ctx, events.EventEmployeeCreated, string(employee.ID), employeePayload(employee))
	return employee, nil
}

// GetEmployee fetches a non-deleted employee.
func (s *AssignmentService) GetEmployee(ctx context.Context, id domain.EmployeeID) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "employee", map[string]any{"employee_id": string(id)})
	}
	return employee, nil
}

// ListEmployees returns non-deleted employees, newest first. A team filter must name an existing team.
func (s *AssignmentService) ListEmployees(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	if filter.TeamID != nil {
		if _, err := s.GetTeam(ctx, *filter.TeamID); err != nil {
			return nil, err
		}
	}
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return employees, nil
}

// UpdateEmployee applies a partial edit under the same rules as CreateEmployee.
func (s *AssignmentService) UpdateEmployee(ctx context.Context, id domain.EmployeeID, update EmployeeUpdate) (employee *domain.Employee, err error) {
	ctx, span := startSpan(ctx, "AssignmentService.UpdateEmployee", attribute.String("employee_id", string(id)))
	defer func() { finishSpan(span, err) }()

	fields := map[string]any{}
	var clean, key, cleanSkill string
	if update.Name != nil {
		var nameErr string
		clean, key, nameErr = normalizeName(*update.Name)
		if nameErr != "" {
			fields["name"] = nameErr
		}
	}
	if update.Skill != nil {
		cleanSkill = domain.CleanName(*update.Skill)
		if cleanSkill == "" {
			fields["skill"] = "is required"
		}
	}
	if update.Cost != nil && update.Cost.IsNegative() {
		fields["cost"] = "must be a non-negative number"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("invalid employee", fields)
	}

	employee, err = s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil && key != employee.NameKey {
		if err := s.ensureEmployeeNameFree(ctx, key, clean, &id); err != nil {
			return nil, err
		}
	}
	if update.Name != nil {
		employee.Name = clean
		employee.NameKey = key
	}
	if update.Skill != nil {
		employee.Skill = cleanSkill
	}
	if update.Cost != nil {
		employee.Cost = *update.Cost
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, storageError(err, "employee", map[string]any{"employee_id": string(id)})
	}

	s.logger.Info("employee updated", zap.String("employee_id", string(id)))
	s.publish(ctx, events.EventEmployeeUpdated, string(id), employeePayload(employee))
	return employee, nil
}

// DeleteEmployee soft-deletes an employee, freeing any team slot it held.
func (s *AssignmentService) DeleteEmployee(ctx context.Context, id domain.EmployeeID) (err error) {
	ctx, span := startSpan(ctx, "AssignmentService.DeleteEmployee", attribute.String("employee_id", string(id)))
	defer func() { finishSpan(span, err) }()

	details := map[string]any{"employee_id": string(id)}
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if s.policy.BlockAssignedEmployeeDelete && !employee.Unassigned() {
		return apperrors.NewConflict("employee is assigned to a team", map[string]any{
			"employee_id": string(id),
			"team_id":     string(*employee.TeamID),
		})
	}

	if err := s.employees.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return storageError(err, "employee", details)
	}

	s.logger.Info("employee deleted", zap.String("employee_id", string(id)))
	s.publish(ctx, events.EventEmployeeDeleted, string(id), events.EmployeeDeletedPayload{
		FreedTeamID: repository.TeamIDToString(employee.TeamID),
	})
	return nil
}

// ReassignEmployee moves an employee to target, or to the unassigned pool when target is nil.
// Reassigning to the current team succeeds without a write.
func (s *AssignmentService) ReassignEmployee(ctx context.Context, employeeID domain.EmployeeID, target *domain.TeamID) (employee *domain.Employee, err error) {
	ctx, span := startSpan(ctx, "AssignmentService.ReassignEmployee", attribute.String("employee_id", string(employeeID)))
	defer func() { finishSpan(span, err) }()

	employee, err = s.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if target != nil {
		span.SetAttributes(attribute.String("team_id", string(*target)))
		if _, err := s.GetTeam(ctx, *target); err != nil {
			return nil, err
		}
	}
	if domain.SameTeam(employee.TeamID, target) {
		return employee, nil
	}

	from := employee.TeamID
	updated, err := s.employees.AssignTeam(ctx, employeeID, target)
	if err != nil {
		details := map[string]any{"employee_id": string(employeeID)}
		if target != nil {
			details["team_id"] = string(*target)
		}
		return nil, storageError(err, "employee", details)
	}

	s.logger.Info("employee reassigned",
		zap.String("employee_id", string(employeeID)),
		zap.Stringp("from_team_id", repository.TeamIDToString(from)),
		zap.Stringp("to_team_id", repository.TeamIDToString(target)))
	s.publish(ctx, events.EventEmployeeReassigned, string(employeeID), events.EmployeeReassignedPayload{
		FromTeamID: repository.TeamIDToString(from),
		ToTeamID:   repository.TeamIDToString(target),
	})
	return updated, nil
}

func (s *AssignmentService) ensureTeamNameFree(ctx context.Context, key, name string, self *domain.TeamID) error {
	existing, err := s.teams.GetByNameKey(ctx, key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return apperrors.NewInternalError(err)
	case self != nil && existing.ID == *self:
		return nil
	}
	return apperrors.NewConflict("team name already exists", map[string]any{"name": name})
}

func (s *AssignmentService) ensureEmployeeNameFree(ctx context.Context, key, name string, self *domain.EmployeeID) error {
	existing, err := s.employees.GetByNameKey(ctx, key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return apperrors.NewInternalError(err)
	case self != nil && existing.ID == *self:
		return nil
	}
	return apperrors.NewConflict("employee name already exists", map[string]any{"name": name})
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, entityID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func employeePayload(e *domain.Employee) events.EmployeePayload {
	return events.EmployeePayload{Name: e.Name, Skill: e.Skill, Cost: e.Cost.String()}
}

// normalizeName returns the cleaned name, its key, and a field message when invalid.
func normalizeName(name string) (clean, key, problem string) {
	clean = domain.CleanName(name)
	switch {
	case clean == "":
		return "", "", "is required"
	case utf8.RuneCountInString(clean) > maxNameLength:
		return "", "", "must be at most 255 characters"
	}
	return clean, domain.NormalizeName(clean), ""
}

func validateName(resource, name string) (string, string, error) {
	clean, key, problem := normalizeName(name)
	if problem != "" {
		return "", "", apperrors.NewValidationError(resource+" name "+problem, map[string]any{"name": problem})
	}
	return clean, key, nil
}

// storageError translates repository sentinels into domain errors.
func storageError(err error, resource string, details map[string]any) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, details)
	case errors.Is(err, repository.ErrTeamNotFound):
		return apperrors.NewNotFound("team", details)
	case errors.Is(err, repository.ErrDuplicateName):
		return apperrors.NewConflict(resource+" name already exists", details)
	case errors.Is(err, repository.ErrTeamInUse):
		return apperrors.NewConflict("team has assigned employees", details)
	}
	return apperrors.NewInternalError(err)
}
