package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/repository"
)

const employeeColumns = `id, name, name_key, skill, cost, team_id, created_at, updated_at, deleted_at`

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository constructs the SQLite employee repository.
func NewEmployeeRepository(db *sql.DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		emp                domain.Employee
		id                 string
		skill, teamID      sql.NullString
		createdAt, updated int64
		deletedAt          sql.NullInt64
	)
	if err := row.Scan(
		&id,
		&emp.Name,
		&emp.NameKey,
		&skill,
		&emp.Cost,
		&teamID,
		&createdAt,
		&updated,
		&deletedAt,
	); err != nil {
		return nil, err
	}
	emp.ID = domain.EmployeeID(id)
	emp.Skill = skill.String
	if teamID.Valid {
		emp.TeamID = repository.StringToTeamID(&teamID.String)
	}
	emp.CreatedAt = fromMillis(createdAt)
	emp.UpdatedAt = fromMillis(updated)
	if deletedAt.Valid {
		at := fromMillis(deletedAt.Int64)
		emp.DeletedAt = &at
	}
	return &emp, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	now := toMillis(time.Now())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, name_key, skill, cost, team_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(employee.ID),
		employee.Name,
		employee.NameKey,
		repository.NullableString(employee.Skill),
		employee.Cost.String(),
		repository.TeamIDToString(employee.TeamID),
		now,
		now,
	)
	if err != nil {
		return translateError(err, repository.ErrTeamNotFound)
	}
	employee.CreatedAt = fromMillis(now)
	employee.UpdatedAt = employee.CreatedAt
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	now := toMillis(time.Now())
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET name = ?, name_key = ?, skill = ?, cost = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		employee.Name,
		employee.NameKey,
		repository.NullableString(employee.Skill),
		employee.Cost.String(),
		now,
		string(employee.ID),
	)
	if err != nil {
		return translateError(err, nil)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	employee.UpdatedAt = fromMillis(now)
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id domain.EmployeeID) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ? AND deleted_at IS NULL`
	emp, err := scanEmployee(r.db.QueryRowContext(ctx, query, string(id)))
	if err != nil {
		return nil, translateError(err, nil)
	}
	return emp, nil
}

func (r *employeeRepository) GetByNameKey(ctx context.Context, nameKey string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE name_key = ? AND deleted_at IS NULL`
	emp, err := scanEmployee(r.db.QueryRowContext(ctx, query, nameKey))
	if err != nil {
		return nil, translateError(err, nil)
	}
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	clauses := []string{"deleted_at IS NULL"}
	args := []any{}
	if filter.TeamID != nil {
		clauses = append(clauses, "team_id = ?")
		args = append(args, string(*filter.TeamID))
	} else if filter.Unassigned {
		clauses = append(clauses, "team_id IS NULL")
	}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
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
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employees WHERE team_id = ? AND deleted_at IS NULL`,
		string(teamID),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *employeeRepository) AssignTeam(ctx context.Context, id domain.EmployeeID, teamID *domain.TeamID) (*domain.Employee, error) {
	query := `UPDATE employees SET team_id = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL
		 RETURNING ` + employeeColumns
	emp, err := scanEmployee(r.db.QueryRowContext(ctx, query,
		repository.TeamIDToString(teamID),
		toMillis(time.Now()),
		string(id),
	))
	if err != nil {
		return nil, translateError(err, repository.ErrTeamNotFound)
	}
	return emp, nil
}

func (r *employeeRepository) SoftDelete(ctx context.Context, id domain.EmployeeID, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET deleted_at = ?, team_id = NULL, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		toMillis(at), toMillis(at), string(id),
	)
	if err != nil {
		return translateError(err, nil)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
