package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

type mockTeamRepo struct {
	mock.Mock
}

func (m *mockTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *mockTeamRepo) Update(ctx context.Context, team *domain.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id domain.TeamID) (*domain.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) GetByNameKey(ctx context.Context, nameKey string) (*domain.Team, error) {
	args := m.Called(ctx, nameKey)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *mockTeamRepo) Delete(ctx context.Context, id domain.TeamID) error {
	return m.Called(ctx, id).Error(0)
}

type mockEmployeeRepo struct {
	mock.Mock
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *mockEmployeeRepo) Update(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id domain.EmployeeID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeRepo) GetByNameKey(ctx context.Context, nameKey string) (*domain.Employee, error) {
	args := m.Called(ctx, nameKey)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeRepo) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	args := m.Called(ctx, filter)
	employees, _ := args.Get(0).([]domain.Employee)
	return employees, args.Error(1)
}

func (m *mockEmployeeRepo) CountByTeam(ctx context.Context, teamID domain.TeamID) (int, error) {
	args := m.Called(ctx, teamID)
	return args.Int(0), args.Error(1)
}

func (m *mockEmployeeRepo) AssignTeam(ctx context.Context, id domain.EmployeeID, teamID *domain.TeamID) (*domain.Employee, error) {
	args := m.Called(ctx, id, teamID)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeRepo) SoftDelete(ctx context.Context, id domain.EmployeeID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func newMockedService() (*AssignmentService, *mockTeamRepo, *mockEmployeeRepo) {
	teams := &mockTeamRepo{}
	employees := &mockEmployeeRepo{}
	svc := NewAssignmentService(AssignmentDependencies{TeamRepo: teams, EmployeeRepo: employees})
	return svc, teams, employees
}

func TestReassignTeamDeletedBeforeWrite(t *testing.T) {
	svc, teams, employees := newMockedService()
	ctx := context.Background()
	teamID := domain.TeamID("t-1")

	employees.On("GetByID", mock.Anything, domain.EmployeeID("e-1")).
		Return(&domain.Employee{ID: "e-1", Name: "Ann"}, nil)
	teams.On("GetByID", mock.Anything, teamID).Return(&domain.Team{ID: teamID, Name: "Eng"}, nil)
	employees.On("AssignTeam", mock.Anything, domain.EmployeeID("e-1"), &teamID).
		Return(nil, repository.ErrTeamNotFound)

	_, err := svc.ReassignEmployee(ctx, "e-1", &teamID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "team not found", apperrors.ToDomainError(err).Message)

	teams.AssertExpectations(t)
	employees.AssertExpectations(t)
}

func TestReassignSameTeamSkipsWrite(t *testing.T) {
	svc, teams, employees := newMockedService()
	ctx := context.Background()
	teamID := domain.TeamID("t-1")

	employees.On("GetByID", mock.Anything, domain.EmployeeID("e-1")).
		Return(&domain.Employee{ID: "e-1", Name: "Ann", TeamID: &teamID}, nil)
	teams.On("GetByID", mock.Anything, teamID).Return(&domain.Team{ID: teamID}, nil)

	got, err := svc.ReassignEmployee(ctx, "e-1", &teamID)
	require.NoError(t, err)
	assert.True(t, got.AssignedTo(teamID))
	employees.AssertNotCalled(t, "AssignTeam", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteTeamAssignedDuringDelete(t *testing.T) {
	svc, teams, employees := newMockedService()
	ctx := context.Background()
	teamID := domain.TeamID("t-1")

	teams.On("GetByID", mock.Anything, teamID).Return(&domain.Team{ID: teamID, Name: "Eng"}, nil)
	employees.On("CountByTeam", mock.Anything, teamID).Return(0, nil)
	teams.On("Delete", mock.Anything, teamID).Return(repository.ErrTeamInUse)

	err := svc.DeleteTeam(ctx, teamID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateTeamDuplicateAtWrite(t *testing.T) {
	svc, teams, _ := newMockedService()
	ctx := context.Background()

	teams.On("GetByNameKey", mock.Anything, "eng").Return(nil, repository.ErrNotFound)
	teams.On("Create", mock.Anything, mock.AnythingOfType("*domain.Team")).Return(repository.ErrDuplicateName)

	_, err := svc.CreateTeam(ctx, "Eng")
	assert.True(t, apperrors.IsConflict(err))
}

func TestStorageFailureIsInternal(t *testing.T) {
	svc, teams, employees := newMockedService()
	ctx := context.Background()
	boom := errors.New("disk full")

	teams.On("List", mock.Anything).Return(nil, boom)
	_, err := svc.ListTeams(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
	assert.ErrorIs(t, err, boom)

	employees.On("GetByID", mock.Anything, domain.EmployeeID("e-1")).Return(nil, boom)
	err = svc.DeleteEmployee(ctx, "e-1")
	assert.True(t, apperrors.IsInternal(err))
}

func TestDeleteEmployeeVanishedBeforeWrite(t *testing.T) {
	svc, _, employees := newMockedService()
	ctx := context.Background()

	employees.On("GetByID", mock.Anything, domain.EmployeeID("e-1")).Return(&domain.Employee{ID: "e-1"}, nil)
	employees.On("SoftDelete", mock.Anything, domain.EmployeeID("e-1"), mock.AnythingOfType("time.Time")).
		Return(repository.ErrNotFound)

	err := svc.DeleteEmployee(ctx, "e-1")
	assert.True(t, apperrors.IsNotFound(err))
}
