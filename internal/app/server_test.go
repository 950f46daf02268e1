package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/roster-service/internal/config"
	"github.com/spec-kit/roster-service/internal/persistence"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
		Detail  string         `json:"detail"`
	} `json:"error"`
}

type teamBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type employeeBody struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Skill  string  `json:"skill"`
	Cost   string  `json:"cost"`
	TeamID *string `json:"team_id"`
}

type summaryBody struct {
	Count       int    `json:"count"`
	TotalCost   string `json:"total_cost"`
	AverageCost string `json:"average_cost"`
}

type boardBody struct {
	Teams []struct {
		Team      teamBody       `json:"team"`
		Employees []employeeBody `json:"employees"`
		Summary   summaryBody    `json:"summary"`
	} `json:"teams"`
	Unassigned struct {
		Employees []employeeBody `json:"employees"`
		Summary   summaryBody    `json:"summary"`
	} `json:"unassigned"`
	Overall summaryBody `json:"overall"`
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			Name:                  "roster-service",
			Env:                   "test",
			Version:               "test",
			RequestTimeoutSeconds: 5,
			CORSAllowOrigins:      "*",
		},
		Storage: config.StorageConfig{Driver: config.DriverSQLite},
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "roster.db"), RunMigrations: true},
		Redis:   config.RedisConfig{EventsChannel: "roster.events"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	logger := zap.NewNop()
	store, err := OpenStore(context.Background(), cfg, logger, ShouldMigrate(cfg))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return NewServer(cfg, logger, store, &persistence.Redis{})
}

func doJSON(t *testing.T, srv *Server, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestTeamEndpoints(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	status, env := doJSON(t, srv, http.MethodPost, "/api/teams", `{"name":"Eng"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Team created successfully", env.Message)
	team := decode[teamBody](t, env.Data)
	assert.Equal(t, "Eng", team.Name)

	status, env = doJSON(t, srv, http.MethodPost, "/api/teams", `{"name":" eng "}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, env = doJSON(t, srv, http.MethodPost, "/api/teams", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "name")

	status, env = doJSON(t, srv, http.MethodPatch, "/api/teams/"+team.ID, `{"name":"Platform"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Platform", decode[teamBody](t, env.Data).Name)

	status, env = doJSON(t, srv, http.MethodGet, "/api/teams", "")
	require.Equal(t, http.StatusOK, status)
	teams := decode[[]teamBody](t, env.Data)
	require.Len(t, teams, 1)
	assert.Equal(t, team.ID, teams[0].ID)

	status, env = doJSON(t, srv, http.MethodDelete, "/api/teams/"+team.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]bool{"deleted": true}, decode[map[string]bool](t, env.Data))

	status, env = doJSON(t, srv, http.MethodGet, "/api/teams/"+team.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "team not found", env.Message)
}

func TestEmployeeEndpoints(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	status, env := doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Ann","skill":"Design","cost":100}`)
	require.Equal(t, http.StatusCreated, status)
	ann := decode[employeeBody](t, env.Data)
	assert.Equal(t, "100", ann.Cost)
	assert.Nil(t, ann.TeamID)

	status, _ = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Bob","skill":"Ops","cost":"12.50"}`)
	require.Equal(t, http.StatusCreated, status)

	status, env = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Cy","skill":"Ops","cost":-1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error.Details, "cost")

	status, env = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Cy","skill":"Ops"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error.Details, "cost")

	status, env = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Cy","skill":"Ops","cost":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, _ = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"ann","skill":"Ops","cost":1}`)
	assert.Equal(t, http.StatusConflict, status)

	status, env = doJSON(t, srv, http.MethodPatch, "/api/employees/"+ann.ID, `{"skill":"Research","cost":"120.5"}`)
	require.Equal(t, http.StatusOK, status)
	updated := decode[employeeBody](t, env.Data)
	assert.Equal(t, "Research", updated.Skill)
	assert.Equal(t, "120.5", updated.Cost)

	status, env = doJSON(t, srv, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]employeeBody](t, env.Data)
	require.Len(t, list, 2)
	assert.Equal(t, "Bob", list[0].Name)

	status, _ = doJSON(t, srv, http.MethodGet, "/api/employees?unassigned=maybe", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, srv, http.MethodGet, "/api/employees?team_id=nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, env = doJSON(t, srv, http.MethodDelete, "/api/employees/"+ann.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, _ = doJSON(t, srv, http.MethodGet, "/api/employees/"+ann.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReassignAndBoard(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	_, env := doJSON(t, srv, http.MethodPost, "/api/teams", `{"name":"Eng"}`)
	eng := decode[teamBody](t, env.Data)
	_, env = doJSON(t, srv, http.MethodPost, "/api/teams", `{"name":"Design"}`)
	design := decode[teamBody](t, env.Data)
	_, env = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Ann","skill":"Design","cost":100}`)
	ann := decode[employeeBody](t, env.Data)
	_, env = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Bob","skill":"Backend","cost":200}`)
	bob := decode[employeeBody](t, env.Data)

	status, env := doJSON(t, srv, http.MethodPut, "/api/employees/"+ann.ID+"/team", `{"team_id":"`+eng.ID+`"}`)
	require.Equal(t, http.StatusOK, status)
	moved := decode[employeeBody](t, env.Data)
	require.NotNil(t, moved.TeamID)
	assert.Equal(t, eng.ID, *moved.TeamID)

	status, _ = doJSON(t, srv, http.MethodPut, "/api/updateemployees/"+bob.ID, `{"teamId":"`+eng.ID+`"}`)
	require.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, srv, http.MethodPut, "/api/employees/"+ann.ID+"/team", `{"team_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "team not found", env.Message)

	status, _ = doJSON(t, srv, http.MethodPut, "/api/employees/missing/team", `{"team_id":null}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = doJSON(t, srv, http.MethodGet, "/api/board", "")
	require.Equal(t, http.StatusOK, status)
	board := decode[boardBody](t, env.Data)
	require.Len(t, board.Teams, 2)
	for _, column := range board.Teams {
		switch column.Team.ID {
		case eng.ID:
			assert.Len(t, column.Employees, 2)
			assert.Equal(t, summaryBody{Count: 2, TotalCost: "300.00", AverageCost: "150.00"}, column.Summary)
		case design.ID:
			assert.Empty(t, column.Employees)
			assert.Equal(t, summaryBody{Count: 0, TotalCost: "0.00", AverageCost: "0.00"}, column.Summary)
		}
	}
	assert.Empty(t, board.Unassigned.Employees)
	assert.Equal(t, 2, board.Overall.Count)

	status, env = doJSON(t, srv, http.MethodDelete, "/api/teams/"+eng.ID, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "team has assigned employees", env.Message)

	for _, id := range []string{ann.ID, bob.ID} {
		status, env = doJSON(t, srv, http.MethodPut, "/api/employees/"+id+"/team", `{"team_id":null}`)
		require.Equal(t, http.StatusOK, status)
		assert.Nil(t, decode[employeeBody](t, env.Data).TeamID)
	}
	status, _ = doJSON(t, srv, http.MethodPut, "/api/employees/"+ann.ID+"/team", `{"team_id":null}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, srv, http.MethodDelete, "/api/deleteteam/"+eng.ID, "")
	assert.Equal(t, http.StatusOK, status)

	_, env = doJSON(t, srv, http.MethodGet, "/api/board", "")
	board = decode[boardBody](t, env.Data)
	assert.Len(t, board.Teams, 1)
	assert.Equal(t, summaryBody{Count: 2, TotalCost: "300.00", AverageCost: "150.00"}, board.Unassigned.Summary)
}

func TestLegacyRoutes(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	status, _ := doJSON(t, srv, http.MethodPost, "/api/team", `{"name":"Eng"}`)
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, srv, http.MethodGet, "/api/getteam", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]teamBody](t, env.Data), 1)

	_, env = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Ann","skill":"Design","cost":5}`)
	ann := decode[employeeBody](t, env.Data)

	status, env = doJSON(t, srv, http.MethodGet, "/api/getemployees", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]employeeBody](t, env.Data), 1)

	status, env = doJSON(t, srv, http.MethodDelete, "/api/deleteemployees/"+ann.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Employee deleted successfully", env.Message)
}

func TestBlockAssignedEmployeeDelete(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Roster.BlockAssignedEmployeeDelete = true
	srv := newTestServer(t, cfg)

	_, env := doJSON(t, srv, http.MethodPost, "/api/teams", `{"name":"Eng"}`)
	eng := decode[teamBody](t, env.Data)
	_, env = doJSON(t, srv, http.MethodPost, "/api/employees", `{"name":"Ann","skill":"Design","cost":5}`)
	ann := decode[employeeBody](t, env.Data)
	status, _ := doJSON(t, srv, http.MethodPut, "/api/employees/"+ann.ID+"/team", `{"team_id":"`+eng.ID+`"}`)
	require.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, srv, http.MethodDelete, "/api/employees/"+ann.ID, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "employee is assigned to a team", env.Message)
}

func TestErrorRendering(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	status, env := doJSON(t, srv, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = doJSON(t, srv, http.MethodPost, "/api/teams", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ready map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ready))
	assert.Equal(t, "ready", ready["status"])
	assert.Equal(t, map[string]any{"sqlite": "ok"}, ready["dependencies"])

	doJSON(t, srv, http.MethodGet, "/api/teams/missing", "")

	snap := srv.Metrics.Snapshot()
	assert.NotEmpty(t, snap.Requests)
	require.Len(t, snap.Errors, 1)
	assert.Equal(t, "NOT_FOUND", snap.Errors[0].Status)

	status, env := doJSON(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Storage.Driver = "oracle"
	_, err := OpenStore(context.Background(), cfg, zap.NewNop(), false)
	assert.EqualError(t, err, `unsupported storage driver "oracle"`)
}
