package queries

import (
	"context"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const defaultListLimit = 50

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListMine(ctx context.Context, actor user.Identity, limit int) ([]*ReservationView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*reservation.Reservation, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	r, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Wrapf(ErrReservationNotFound, "%s", id), errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}
	return ToReservationView(r), nil
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, actor user.Identity, limit int) ([]*ReservationView, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	rows, err := q.store.FindByUser(ctx, actor.ID, int32(limit))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}
	return ToReservationViews(rows), nil
}
