//go:build unit

package repository

import (
	"context"
	"testing"

	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationWriteQueries struct {
	mock.Mock
}

func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, db query.DBTX, arg query.CreateReservationParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockReservationWriteQueries) DeleteReservationsByIDs(ctx context.Context, db query.DBTX, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) CancelReservation(ctx context.Context, db query.DBTX, arg query.CancelReservationParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

// query.DBTX implementation so the mock can stand in for the transaction too
func (m *MockReservationWriteQueries) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, sql, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockReservationWriteQueries) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, sql, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockReservationWriteQueries) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, sql, args)
	return mockArgs.Get(0).(pgx.Row)
}

func TestReservationRepository_Create(t *testing.T) {
	res := builder.NewReservationBuilder().At("18:00").BuildDomain()

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{
			name:     "live holder of the unit",
			mockErr:  &pgconn.PgError{Code: "23505", ConstraintName: "reservations_active_unit_key"},
			wantKind: infra.KindDuplicateKey,
		},
		{
			name:     "unknown resource",
			mockErr:  &pgconn.PgError{Code: "23503", ConstraintName: "reservations_resource_id_fkey"},
			wantKind: infra.KindForeignKeyViolated,
		},
		{
			name:     "database error",
			mockErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockReservationWriteQueries)
			mockQueries.On("CreateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p query.CreateReservationParams) bool {
				return p.ID == res.ID() &&
					p.ResourceID == res.ResourceID() &&
					p.StartTime.Microseconds == res.StartTime().Duration().Microseconds() &&
					p.Status == "confirmed" &&
					p.UserID.Valid &&
					!p.ContactPhone.Valid
			})).Return(res.ID(), tt.mockErr)

			repo := NewReservationRepository(mockQueries)
			id, err := repo.Create(context.Background(), mockQueries, res)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				assert.Equal(t, uuid.Nil, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, res.ID(), id)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestReservationRepository_Cancel(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "already cancelled elsewhere", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := builder.NewReservationBuilder().BuildDomain()
			mockQueries := new(MockReservationWriteQueries)
			mockQueries.On("CancelReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p query.CancelReservationParams) bool {
				return p.ID == res.ID()
			})).Return(tt.affected, tt.mockErr)

			err := NewReservationRepository(mockQueries).Cancel(context.Background(), mockQueries, res)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestReservationRepository_DeleteByIDs(t *testing.T) {
	t.Run("empty list skips the query", func(t *testing.T) {
		mockQueries := new(MockReservationWriteQueries)
		n, err := NewReservationRepository(mockQueries).DeleteByIDs(context.Background(), mockQueries, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
		mockQueries.AssertNotCalled(t, "DeleteReservationsByIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("compensation removes inserted rows", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		mockQueries := new(MockReservationWriteQueries)
		mockQueries.On("DeleteReservationsByIDs", mock.Anything, mock.Anything, ids).Return(int64(2), nil)

		n, err := NewReservationRepository(mockQueries).DeleteByIDs(context.Background(), mockQueries, ids)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		mockQueries.AssertExpectations(t)
	})
}
