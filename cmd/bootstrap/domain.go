package bootstrap

import (
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/conflict"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		clock.NewRealClock,
		NewCalendar,
		fx.Annotate(
			NewPriceCalculator,
			fx.As(new(reservation.PriceCalculator)),
		),
		reservation.NewFactory,
		conflict.NewOracle,
	),
)

func NewCalendar(cfg config.Config) (*slot.Calendar, error) {
	c := cfg.Calendar
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "BOOKING_TIMEZONE %q", c.TimeZone)
	}

	weekday, err := parseHours(c.WeekdayOpen, c.WeekdayClose)
	if err != nil {
		return nil, errs.Wrap(err, "weekday hours")
	}
	weekend, err := parseHours(c.WeekendOpen, c.WeekendClose)
	if err != nil {
		return nil, errs.Wrap(err, "weekend hours")
	}

	holidays := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		d, err := slot.ParseDate(h)
		if err != nil {
			return nil, errs.Wrapf(err, "CALENDAR_HOLIDAYS %q", h)
		}
		holidays = append(holidays, d)
	}

	return slot.NewCalendar(weekday, weekend, holidays, c.SlotMinutes, loc)
}

func parseHours(openAt, closeAt string) (slot.Hours, error) {
	o, err := slot.ParseTimeOfDay(openAt)
	if err != nil {
		return slot.Hours{}, errs.Wrapf(err, "open %q", openAt)
	}
	c, err := slot.ParseTimeOfDay(closeAt)
	if err != nil {
		return slot.Hours{}, errs.Wrapf(err, "close %q", closeAt)
	}
	return slot.Hours{Open: o, Close: c}, nil
}

func NewPriceCalculator(cfg config.Config) (*reservation.TableRateCalculator, error) {
	p := cfg.Pricing
	peak, err := slot.ParseTimeOfDay(p.PeakStart)
	if err != nil {
		return nil, errs.Wrapf(err, "PRICING_PEAK_START %q", p.PeakStart)
	}
	return reservation.NewTableRateCalculator(p.Rates, peak, p.PeakSurchargeCents, p.Currency)
}
