package reservation

import (
	"time"

	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoSlots           = errs.New("at least one time slot is required")
	ErrNoResources       = errs.New("at least one resource is required")
	ErrDuplicateSlot     = errs.New("duplicate time slot in request")
	ErrSlotNotOnCalendar = errs.New("time slot is not bookable on this date")
	ErrSlotInPast        = errs.New("time slot has already started")
)

type Factory struct {
	Clock           clock.Clock
	Calendar        *slot.Calendar
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, calendar *slot.Calendar, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		Calendar:        calendar,
		PriceCalculator: priceCalculator,
	}
}

// SlotRequest describes one reservation per start time on a single resource.
type SlotRequest struct {
	ResourceID       uuid.UUID
	Date             time.Time
	Starts           []slot.TimeOfDay
	Category         Category
	Owner            Owner
	AmountPerSlot    *Money
	Amounts          []Money // per start, overrides pricing when set
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentMethod    PaymentMethod
	PaymentSessionID *string
}

// ValidateSlots checks the shape of a slot list against the calendar.
func (f *Factory) ValidateSlots(date time.Time, starts []slot.TimeOfDay) error {
	if len(starts) == 0 {
		return invalid(ErrNoSlots)
	}
	seen := make(map[slot.TimeOfDay]struct{}, len(starts))
	for _, s := range starts {
		if _, dup := seen[s]; dup {
			return invalid(errs.Wrapf(ErrDuplicateSlot, "%s", s))
		}
		seen[s] = struct{}{}
		if !f.Calendar.IsBookable(date, s) {
			return invalid(errs.Wrapf(ErrSlotNotOnCalendar, "%s on %s", s, date.Format(slot.DateLayout)))
		}
	}
	return nil
}

// EnsureUpcoming rejects slots that have already begun.
func (f *Factory) EnsureUpcoming(date time.Time, starts []slot.TimeOfDay) error {
	now := f.Clock.Now()
	for _, s := range starts {
		if !f.Calendar.StartsAt(date, s).After(now) {
			return invalid(errs.Wrapf(ErrSlotInPast, "%s on %s", s, date.Format(slot.DateLayout)))
		}
	}
	return nil
}

// Quote prices every slot of the request in order.
func (f *Factory) Quote(category Category, date time.Time, starts []slot.TimeOfDay) ([]Money, error) {
	out := make([]Money, len(starts))
	for i, s := range starts {
		m, err := f.PriceCalculator.RateFor(category, date, s)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// Build returns one unsaved reservation per start, in request order.
func (f *Factory) Build(req SlotRequest) ([]*Reservation, error) {
	if err := f.ValidateSlots(req.Date, req.Starts); err != nil {
		return nil, err
	}
	if err := req.Owner.Validate(); err != nil {
		return nil, err
	}
	prices, err := f.amountsFor(req)
	if err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	out := make([]*Reservation, 0, len(req.Starts))
	for i, s := range req.Starts {
		r, err := NewReservation(NewParams{
			ResourceID:       req.ResourceID,
			Date:             req.Date,
			Interval:         f.Calendar.UnitAt(s),
			Category:         req.Category,
			Amount:           prices[i],
			Status:           req.Status,
			PaymentStatus:    req.PaymentStatus,
			PaymentMethod:    req.PaymentMethod,
			PaymentSessionID: req.PaymentSessionID,
			Owner:            req.Owner,
			CreatedAt:        now,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *Factory) amountsFor(req SlotRequest) ([]Money, error) {
	switch {
	case len(req.Amounts) > 0:
		if len(req.Amounts) != len(req.Starts) {
			return nil, errs.Newf("%d amounts for %d slots", len(req.Amounts), len(req.Starts))
		}
		return req.Amounts, nil
	case req.AmountPerSlot != nil:
		out := make([]Money, len(req.Starts))
		for i := range out {
			out[i] = *req.AmountPerSlot
		}
		return out, nil
	default:
		return f.Quote(req.Category, req.Date, req.Starts)
	}
}
