package readstore

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/internal/infra/repository/converter"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservations, error)
	ListReservationsBySession(ctx context.Context, db query.DBTX, sessionID string) ([]query.Reservations, error)
	ListActiveReservationsByResourceDate(ctx context.Context, db query.DBTX, arg query.ListActiveReservationsByResourceDateParams) ([]query.Reservations, error)
	ListActiveReservationsByDate(ctx context.Context, db query.DBTX, date pgtype.Date) ([]query.Reservations, error)
	ListReservationsByUser(ctx context.Context, db query.DBTX, arg query.ListReservationsByUserParams) ([]query.Reservations, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      query.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db query.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return converter.ReservationFromInfra(row), nil
}

// FindBySession returns the live reservations created for a payment session.
func (r *ReservationReadStore) FindBySession(ctx context.Context, sessionID string) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListReservationsBySession(ctx, r.db, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by session", err)
	}

	return converter.ReservationsFromInfra(rows), nil
}

func (r *ReservationReadStore) FindActiveByResourceDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListActiveReservationsByResourceDate(ctx, r.db, query.ListActiveReservationsByResourceDateParams{
		ResourceID: resourceID,
		Date:       pgconv.DateToPgtype(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by resource and date", err)
	}

	return converter.ReservationsFromInfra(rows), nil
}

func (r *ReservationReadStore) FindActiveByDate(ctx context.Context, date time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListActiveReservationsByDate(ctx, r.db, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by date", err)
	}

	return converter.ReservationsFromInfra(rows), nil
}

func (r *ReservationReadStore) FindByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListReservationsByUser(ctx, r.db, query.ListReservationsByUserParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by user", err)
	}

	return converter.ReservationsFromInfra(rows), nil
}
