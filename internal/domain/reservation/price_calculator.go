package reservation

import (
	"sort"
	"time"

	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"
)

// PriceCalculator supplies the rate for one unit. The core never decides prices itself.
type PriceCalculator interface {
	RateFor(category Category, date time.Time, start slot.TimeOfDay) (Money, error)
	Currency() string
}

// TableRateCalculator charges a flat rate per category and unit, plus a
// surcharge for units starting at or after the peak start.
type TableRateCalculator struct {
	rates     map[Category]Money
	peakStart slot.TimeOfDay
	surcharge Money
	currency  string
}

func NewTableRateCalculator(rates map[string]int64, peakStart slot.TimeOfDay, surchargeCents int64, currency string) (*TableRateCalculator, error) {
	if len(rates) == 0 {
		return nil, errs.New("at least one category rate is required")
	}
	table := make(map[Category]Money, len(rates))
	for name, cents := range rates {
		category, err := NewCategory(name)
		if err != nil {
			return nil, errs.Wrapf(err, "rate %q", name)
		}
		m, err := NewMoney(cents)
		if err != nil {
			return nil, errs.Wrapf(err, "rate %q", name)
		}
		table[category] = m
	}
	surcharge, err := NewMoney(surchargeCents)
	if err != nil {
		return nil, errs.Wrap(err, "peak surcharge")
	}
	return &TableRateCalculator{
		rates:     table,
		peakStart: peakStart,
		surcharge: surcharge,
		currency:  currency,
	}, nil
}

func (c *TableRateCalculator) RateFor(category Category, _ time.Time, start slot.TimeOfDay) (Money, error) {
	base, ok := c.rates[category]
	if !ok {
		return Money{}, invalid(errs.Wrapf(ErrInvalidCategory, "%q", category))
	}
	if !start.Before(c.peakStart) {
		return base.Add(c.surcharge), nil
	}
	return base, nil
}

func (c *TableRateCalculator) Categories() []Category {
	out := make([]Category, 0, len(c.rates))
	for k := range c.rates {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *TableRateCalculator) Currency() string {
	return c.currency
}
