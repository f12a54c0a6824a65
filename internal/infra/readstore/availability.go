package readstore

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra/query"
	"court-booking/internal/usecase/shared"
)

// AvailabilityReadStore gathers the date-wide reads behind the availability listing.
type AvailabilityReadStore struct {
	resources    *ResourceReadStore
	reservations *ReservationReadStore
	holders      *HolderReadStore
	db           query.DBTX
}

func NewAvailabilityReadStore(q *query.Queries, db query.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		resources:    NewResourceReadStore(q),
		reservations: NewReservationReadStore(q, db),
		holders:      NewHolderReadStore(q, db),
		db:           db,
	}
}

func (s *AvailabilityReadStore) ActiveResources(ctx context.Context) ([]*shared.ResourceSnapshot, error) {
	return s.resources.FindActive(ctx, s.db)
}

func (s *AvailabilityReadStore) ActiveReservationsOn(ctx context.Context, date time.Time) ([]*reservation.Reservation, error) {
	return s.reservations.FindActiveByDate(ctx, date)
}

func (s *AvailabilityReadStore) RecurringTemplatesOn(ctx context.Context, weekday time.Weekday) ([]reservation.RecurringTemplate, error) {
	return s.holders.RecurringTemplatesOn(ctx, weekday)
}

func (s *AvailabilityReadStore) ScheduledSessionsOn(ctx context.Context, date time.Time) ([]reservation.ScheduledSession, error) {
	return s.holders.ScheduledSessionsOn(ctx, date)
}
