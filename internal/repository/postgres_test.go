package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslatePgError(t *testing.T) {
	other := errors.New("connection refused")

	tests := []struct {
		name  string
		err   error
		fkErr error
		want  error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: pgx.ErrNoRows, want: ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicateName},
		{name: "fk on employee write", err: &pgconn.PgError{Code: "23503"}, fkErr: ErrTeamNotFound, want: ErrTeamNotFound},
		{name: "fk on team delete", err: &pgconn.PgError{Code: "23503"}, fkErr: ErrTeamInUse, want: ErrTeamInUse},
		{name: "fk without mapping", err: &pgconn.PgError{Code: "23503"}, want: nil},
		{name: "passthrough", err: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translatePgError(tt.err, tt.fkErr)
			switch {
			case tt.err == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Same(t, tt.err, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}

func TestTeamIDConversions(t *testing.T) {
	assert.Nil(t, TeamIDToString(nil))
	assert.Nil(t, StringToTeamID(nil))

	raw := "team-1"
	id := StringToTeamID(&raw)
	if assert.NotNil(t, id) {
		assert.Equal(t, "team-1", string(*id))
		assert.Equal(t, raw, *TeamIDToString(id))
	}

	assert.Nil(t, NullableString(""))
	assert.Equal(t, "Design", StringValue(NullableString("Design")))
	assert.Equal(t, "", StringValue(nil))
}
