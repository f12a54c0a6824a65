package slot

import (
	"time"

	"court-booking/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

var (
	ErrEmptyInterval = errs.New("end time must be after start time")
	ErrInvalidDate   = errs.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidHours  = errs.New("invalid opening hours")
)

type Hours struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Calendar enumerates the bookable start times of a day. Weekends and listed
// holidays share one set of hours, every other day uses the weekday hours.
type Calendar struct {
	weekday  Hours
	weekend  Hours
	holidays map[string]struct{}
	unit     int
	loc      *time.Location
}

func NewCalendar(weekday, weekend Hours, holidays []time.Time, unitMinutes int, loc *time.Location) (*Calendar, error) {
	if unitMinutes <= 0 || minutesPerDay%unitMinutes != 0 {
		return nil, errs.Wrapf(ErrInvalidHours, "unit of %d minutes does not divide a day", unitMinutes)
	}
	for _, h := range []Hours{weekday, weekend} {
		if !h.Open.Before(h.Close) {
			return nil, errs.Wrapf(ErrInvalidHours, "open %s is not before close %s", h.Open, h.Close)
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	set := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		set[d.Format(DateLayout)] = struct{}{}
	}
	return &Calendar{
		weekday:  weekday,
		weekend:  weekend,
		holidays: set,
		unit:     unitMinutes,
		loc:      loc,
	}, nil
}

func (c *Calendar) Unit() int                { return c.unit }
func (c *Calendar) Location() *time.Location { return c.loc }

func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.holidays[date.Format(DateLayout)]
	return ok
}

func (c *Calendar) HoursOn(date time.Time) Hours {
	switch {
	case c.IsHoliday(date):
		return c.weekend
	case date.Weekday() == time.Saturday || date.Weekday() == time.Sunday:
		return c.weekend
	default:
		return c.weekday
	}
}

// StartTimes returns every start whose full unit fits inside the day's hours, in order.
func (c *Calendar) StartTimes(date time.Time) []TimeOfDay {
	h := c.HoursOn(date)
	starts := make([]TimeOfDay, 0, int(h.Close-h.Open)/c.unit)
	for t := h.Open; t.Add(c.unit) <= h.Close; t = t.Add(c.unit) {
		starts = append(starts, t)
	}
	return starts
}

func (c *Calendar) IsBookable(date time.Time, start TimeOfDay) bool {
	h := c.HoursOn(date)
	if start < h.Open || start.Add(c.unit) > h.Close {
		return false
	}
	return int(start-h.Open)%c.unit == 0
}

func (c *Calendar) EndOf(start TimeOfDay) TimeOfDay {
	return start.Add(c.unit)
}

func (c *Calendar) UnitAt(start TimeOfDay) Interval {
	return Interval{Start: start, End: c.EndOf(start)}
}

// StartsAt is the instant the slot begins in the calendar's time zone.
func (c *Calendar) StartsAt(date time.Time, start TimeOfDay) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc).Add(start.Duration())
}

// Today is the current civil date in the calendar's time zone.
func (c *Calendar) Today(now time.Time) time.Time {
	y, m, d := now.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a civil date. The result is midnight UTC, the form storage uses.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalid(ErrInvalidDate)
	}
	return d, nil
}
