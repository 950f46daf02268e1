package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/repository"
)

type teamRepository struct {
	db *sql.DB
}

// NewTeamRepository constructs the SQLite team repository.
func NewTeamRepository(db *sql.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, name_key, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		string(team.ID), team.Name, team.NameKey, toMillis(now), toMillis(now),
	)
	if err != nil {
		return translateError(err, nil)
	}
	team.CreatedAt = fromMillis(toMillis(now))
	team.UpdatedAt = team.CreatedAt
	return nil
}

func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE teams SET name = ?, name_key = ?, updated_at = ? WHERE id = ?`,
		team.Name, team.NameKey, toMillis(now), string(team.ID),
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
	team.UpdatedAt = fromMillis(toMillis(now))
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id domain.TeamID) (*domain.Team, error) {
	return r.getOne(ctx, `SELECT id, name, name_key, created_at, updated_at FROM teams WHERE id = ?`, string(id))
}

func (r *teamRepository) GetByNameKey(ctx context.Context, nameKey string) (*domain.Team, error) {
	return r.getOne(ctx, `SELECT id, name, name_key, created_at, updated_at FROM teams WHERE name_key = ?`, nameKey)
}

func (r *teamRepository) getOne(ctx context.Context, query string, arg any) (*domain.Team, error) {
	team, err := scanTeam(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, translateError(err, nil)
	}
	return team, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	var (
		team               domain.Team
		id                 string
		createdAt, updated int64
	)
	if err := row.Scan(&id, &team.Name, &team.NameKey, &createdAt, &updated); err != nil {
		return nil, err
	}
	team.ID = domain.TeamID(id)
	team.CreatedAt = fromMillis(createdAt)
	team.UpdatedAt = fromMillis(updated)
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, name_key, created_at, updated_at FROM teams ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *team)
	}
	return result, rows.Err()
}

func (r *teamRepository) Delete(ctx context.Context, id domain.TeamID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM teams
		 WHERE id = ?
		   AND NOT EXISTS (SELECT 1 FROM employees WHERE team_id = ? AND deleted_at IS NULL)`,
		string(id), string(id),
	)
	if err != nil {
		return translateError(err, repository.ErrTeamInUse)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE id = ?)`, string(id)).Scan(&exists); err != nil {
		return err
	}
	if exists == 1 {
		return repository.ErrTeamInUse
	}
	return repository.ErrNotFound
}
