package repository

import (
	"context"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/internal/infra/repository/converter"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db query.DBTX, arg query.CreateReservationParams) (uuid.UUID, error)
	DeleteReservationsByIDs(ctx context.Context, db query.DBTX, ids []uuid.UUID) (int64, error)
	CancelReservation(ctx context.Context, db query.DBTX, arg query.CancelReservationParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
	}
}

// Create inserts one unit. A live holder of the same unit surfaces as KindDuplicateKey.
func (r *ReservationRepository) Create(ctx context.Context, tx query.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToInfra(res)

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}

func (r *ReservationRepository) DeleteByIDs(ctx context.Context, tx query.DBTX, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := r.queries.DeleteReservationsByIDs(ctx, tx, ids)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete reservations", err)
	}

	return n, nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, tx query.DBTX, res *reservation.Reservation) error {
	n, err := r.queries.CancelReservation(ctx, tx, query.CancelReservationParams{
		ID:        res.ID(),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("reservation not found or already cancelled", nil, infra.KindNotFound)
	}

	return nil
}
