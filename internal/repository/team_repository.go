package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/roster-service/internal/domain"
)

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs the PostgreSQL team repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO teams (id, name, name_key)
        VALUES ($1,$2,$3)
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		string(team.ID),
		team.Name,
		team.NameKey,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	return translatePgError(err, nil)
}

func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	const query = `
        UPDATE teams SET name=$1, name_key=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		team.Name,
		team.NameKey,
		string(team.ID),
	).Scan(&team.UpdatedAt)
	return translatePgError(err, nil)
}

func (r *teamRepository) GetByID(ctx context.Context, id domain.TeamID) (*domain.Team, error) {
	const query = `
        SELECT id, name, name_key, created_at, updated_at
        FROM teams WHERE id=$1`
	return r.getOne(ctx, query, string(id))
}

func (r *teamRepository) GetByNameKey(ctx context.Context, nameKey string) (*domain.Team, error) {
	const query = `
        SELECT id, name, name_key, created_at, updated_at
        FROM teams WHERE name_key=$1`
	return r.getOne(ctx, query, nameKey)
}

func (r *teamRepository) getOne(ctx context.Context, query string, arg any) (*domain.Team, error) {
	var (
		team domain.Team
		id   string
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&id,
		&team.Name,
		&team.NameKey,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		return nil, translatePgError(err, nil)
	}
	team.ID = domain.TeamID(id)
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	const query = `
        SELECT id, name, name_key, created_at, updated_at
        FROM teams ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Team{}
	for rows.Next() {
		var (
			team domain.Team
			id   string
		)
		if err := rows.Scan(&id, &team.Name, &team.NameKey, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		team.ID = domain.TeamID(id)
		result = append(result, team)
	}
	return result, rows.Err()
}

func (r *teamRepository) Delete(ctx context.Context, id domain.TeamID) error {
	const query = `
        DELETE FROM teams
        WHERE id=$1
          AND NOT EXISTS (SELECT 1 FROM employees WHERE team_id=$1 AND deleted_at IS NULL)`
	cmd, err := r.pool.Exec(ctx, query, string(id))
	if err != nil {
		return translatePgError(err, ErrTeamInUse)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE id=$1)`, string(id)).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrTeamInUse
	}
	return ErrNotFound
}
