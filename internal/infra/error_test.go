//go:build unit

package infra

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       []RepositoryErrorKind
		want       RepositoryErrorKind
		constraint string
	}{
		{
			name:       "unique violation becomes duplicate key",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "reservations_active_unit_key"},
			want:       KindDuplicateKey,
			constraint: "reservations_active_unit_key",
		},
		{
			name:       "foreign key violation",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: "reservations_resource_id_fkey"},
			want:       KindForeignKeyViolated,
			constraint: "reservations_resource_id_fkey",
		},
		{
			name: "no rows becomes not found",
			err:  fmt.Errorf("scan: %w", pgx.ErrNoRows),
			want: KindNotFound,
		},
		{
			name: "anything else is a db failure",
			err:  fmt.Errorf("connection reset"),
			want: KindDBFailure,
		},
		{
			name: "explicit kind wins",
			err:  fmt.Errorf("connection reset"),
			kind: []RepositoryErrorKind{KindNotFound},
			want: KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapRepoErr("op", tt.err, tt.kind...)

			assert.True(t, IsKind(got, tt.want))
			var repoErr RepositoryError
			assert.ErrorAs(t, got, &repoErr)
			assert.Equal(t, tt.constraint, repoErr.Constraint)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
