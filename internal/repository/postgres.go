package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// NewPostgresRepositories binds both repositories to one pgx pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Teams:     NewTeamRepository(pool),
		Employees: NewEmployeeRepository(pool),
	}
}

// translatePgError maps driver errors onto storage sentinels. fkErr is returned for
// foreign-key violations because its meaning depends on which side of the reference wrote.
func translatePgError(err error, fkErr error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateName
		case pgForeignKeyViolation:
			if fkErr != nil {
				return fkErr
			}
		}
	}
	return err
}
