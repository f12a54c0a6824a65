// Package conflict decides whether a unit on a resource is already held.
//
// Three holder kinds are consulted in a fixed order: direct reservations,
// recurring templates projected onto the date, then scheduled sessions.
// The first overlapping holder is reported. Nothing is cached between calls;
// the storage unique index remains the only arbiter of concurrent writers.
package conflict

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Conflict struct {
	Source   reservation.HolderKind
	HolderID uuid.UUID
	Interval slot.Interval
}

func (c *Conflict) Message() string {
	return c.Source.ConflictMessage()
}

type Oracle struct{}

func NewOracle() *Oracle {
	return &Oracle{}
}

// FindConflict returns nil when [start, end) on resourceID and date is free.
func (o *Oracle) FindConflict(
	ctx context.Context,
	holders shared.HolderReader,
	resourceID uuid.UUID,
	date time.Time,
	candidate slot.Interval,
) (*Conflict, error) {
	bookings, err := holders.ActiveBookings(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.Interval.Overlaps(candidate) {
			return &Conflict{Source: reservation.HolderBooking, HolderID: b.ID, Interval: b.Interval}, nil
		}
	}

	templates, err := holders.RecurringTemplates(ctx, resourceID, date.Weekday())
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		projected, ok := t.ProjectOnto(date)
		if ok && projected.Overlaps(candidate) {
			return &Conflict{Source: reservation.HolderRecurring, HolderID: t.ID, Interval: projected}, nil
		}
	}

	sessions, err := holders.ScheduledSessions(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.Interval.Overlaps(candidate) {
			return &Conflict{Source: reservation.HolderLesson, HolderID: s.ID, Interval: s.Interval}, nil
		}
	}

	return nil, nil
}
