package queries

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"
)

type AvailabilityQueries interface {
	ForDate(ctx context.Context, date time.Time) (*AvailabilityView, error)
}

// AvailabilityReadStore reads every holder on a date in one pass per kind.
type AvailabilityReadStore interface {
	ActiveResources(ctx context.Context) ([]*shared.ResourceSnapshot, error)
	ActiveReservationsOn(ctx context.Context, date time.Time) ([]*reservation.Reservation, error)
	RecurringTemplatesOn(ctx context.Context, weekday time.Weekday) ([]reservation.RecurringTemplate, error)
	ScheduledSessionsOn(ctx context.Context, date time.Time) ([]reservation.ScheduledSession, error)
}

type availabilityQueriesImpl struct {
	store    AvailabilityReadStore
	calendar *slot.Calendar
	clock    clock.Clock
}

func NewAvailabilityQueries(store AvailabilityReadStore, calendar *slot.Calendar, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, calendar: calendar, clock: clk}
}

type heldInterval struct {
	kind     reservation.HolderKind
	interval slot.Interval
}

func (q *availabilityQueriesImpl) ForDate(ctx context.Context, date time.Time) (*AvailabilityView, error) {
	resources, err := q.store.ActiveResources(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}
	bookings, err := q.store.ActiveReservationsOn(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}
	templates, err := q.store.RecurringTemplatesOn(ctx, date.Weekday())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}
	sessions, err := q.store.ScheduledSessionsOn(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}

	// Appended in the same order the conflict check consults them, so the
	// first overlap found is the holder a booking attempt would be told about.
	held := make(map[string][]heldInterval)
	for _, b := range bookings {
		key := b.ResourceID().String()
		held[key] = append(held[key], heldInterval{reservation.HolderBooking, b.Interval()})
	}
	for _, t := range templates {
		if iv, ok := t.ProjectOnto(date); ok {
			key := t.ResourceID.String()
			held[key] = append(held[key], heldInterval{reservation.HolderRecurring, iv})
		}
	}
	for _, s := range sessions {
		key := s.ResourceID.String()
		held[key] = append(held[key], heldInterval{reservation.HolderLesson, s.Interval})
	}

	now := q.clock.Now()
	starts := q.calendar.StartTimes(date)

	view := &AvailabilityView{
		Date:      date.Format(slot.DateLayout),
		Holiday:   q.calendar.IsHoliday(date),
		Resources: make([]ResourceAvailability, 0, len(resources)),
	}
	for _, res := range resources {
		ra := ResourceAvailability{
			ResourceID: res.ID,
			Name:       res.Name,
			Slots:      make([]SlotAvailability, len(starts)),
		}
		holders := held[res.ID.String()]
		for i, start := range starts {
			unit := q.calendar.UnitAt(start)
			status := SlotFree
			for _, h := range holders {
				if h.interval.Overlaps(unit) {
					status = SlotStatus(h.kind)
					break
				}
			}
			ra.Slots[i] = SlotAvailability{
				Start:  unit.Start.String(),
				End:    unit.End.String(),
				Status: status,
				Past:   !q.calendar.StartsAt(date, start).After(now),
			}
		}
		view.Resources = append(view.Resources, ra)
	}

	return view, nil
}
