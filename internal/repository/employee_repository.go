package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/roster-service/internal/domain"
)

const employeeColumns = `id, name, name_key, skill, cost, team_id, created_at, updated_at, deleted_at`

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository constructs the PostgreSQL employee repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		emp    domain.Employee
		id     string
		skill  *string
		teamID *string
	)
	if err := row.Scan(
		&id,
		&emp.Name,
		&emp.NameKey,
		&skill,
		&emp.Cost,
		&teamID,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&emp.DeletedAt,
	); err != nil {
		return nil, err
	}
	emp.ID = domain.EmployeeID(id)
	emp.Skill = StringValue(skill)
	emp.TeamID = StringToTeamID(teamID)
	return &emp, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (id, name, name_key, skill, cost, team_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		string(employee.ID),
		employee.Name,
		employee.NameKey,
		NullableString(employee.Skill),
		employee.Cost,
		TeamIDToString(employee.TeamID),
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	return translatePgError(err, ErrTeamNotFound)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, name_key=$2, skill=$3, cost=$4, updated_at=NOW()
        WHERE id=$5 AND deleted_at IS NULL
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.NameKey,
		NullableString(employee.Skill),
		employee.Cost,
		string(employee.ID),
	).Scan(&employee.UpdatedAt)
	return translatePgError(err, nil)
}

func (r *employeeRepository) GetByID(ctx context.Context, id domain.EmployeeID) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1 AND deleted_at IS NULL`
	emp, err := scanEmployee(r.pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		return nil, translatePgError(err, nil)
	}
	return emp, nil
}

func (r *employeeRepository) GetByNameKey(ctx context.Context, nameKey string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE name_key=$1 AND deleted_at IS NULL`
	emp, err := scanEmployee(r.pool.QueryRow(ctx, query, nameKey))
	if err != nil {
		return nil, translatePgError(err, nil)
	}
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []any{}
	clauses := []string{"deleted_at IS NULL"}

	if filter.TeamID != nil {
		args = append(args, string(*filter.TeamID))
		clauses = append(clauses, fmt.Sprintf("team_id=$%d", len(args)))
	} else if filter.Unassigned {
		clauses = append(clauses, "team_id IS NULL")
	}
	query += " WHERE " + strings.Join(clauses, " AND ")
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) CountByTeam(ctx context.Context, teamID domain.TeamID) (int, error) {
	const query = `SELECT COUNT(*) FROM employees WHERE team_id=$1 AND deleted_at IS NULL`
	var count int
	if err := r.pool.QueryRow(ctx, query, string(teamID)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *employeeRepository) AssignTeam(ctx context.Context, id domain.EmployeeID, teamID *domain.TeamID) (*domain.Employee, error) {
	query := `
        UPDATE employees SET team_id=$1, updated_at=NOW()
        WHERE id=$2 AND deleted_at IS NULL
        RETURNING ` + employeeColumns
	emp, err := scanEmployee(r.pool.QueryRow(ctx, query, TeamIDToString(teamID), string(id)))
	if err != nil {
		return nil, translatePgError(err, ErrTeamNotFound)
	}
	return emp, nil
}

func (r *employeeRepository) SoftDelete(ctx context.Context, id domain.EmployeeID, at time.Time) error {
	const query = `
        UPDATE employees SET deleted_at=$1, team_id=NULL, updated_at=$1
        WHERE id=$2 AND deleted_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query, at, string(id))
	if err != nil {
		return translatePgError(err, nil)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
