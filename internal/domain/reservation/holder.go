package reservation

import (
	"time"

	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// RecurringTemplate is a weekly hold. It never occupies storage per occurrence;
// it is projected onto a concrete date when checked.
type RecurringTemplate struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Weekday    time.Weekday
	Interval   slot.Interval
	ValidFrom  time.Time
	ValidUntil *time.Time
	Active     bool
}

// ProjectOnto returns the interval the template holds on date, if any.
func (t RecurringTemplate) ProjectOnto(date time.Time) (slot.Interval, bool) {
	if !t.Active || date.Weekday() != t.Weekday {
		return slot.Interval{}, false
	}
	if date.Before(t.ValidFrom) {
		return slot.Interval{}, false
	}
	if t.ValidUntil != nil && date.After(*t.ValidUntil) {
		return slot.Interval{}, false
	}
	return t.Interval, true
}

// ScheduledSession is a lesson or coaching block owned by another subsystem.
type ScheduledSession struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Date       time.Time
	Interval   slot.Interval
}

// BookedInterval is the part of a direct reservation the conflict check needs.
type BookedInterval struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Date       time.Time
	Interval   slot.Interval
}
