//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

// Monday 2030-06-03 in Bangkok; far enough ahead that no slot is in the past.
var DefaultDate = time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

func Bangkok() *time.Location {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

// NewCalendar mirrors the default configuration: 09:00-22:00 on weekdays,
// 08:00-22:00 on weekends and holidays, 30 minute units.
func NewCalendar(holidays ...time.Time) *slot.Calendar {
	cal, err := slot.NewCalendar(
		slot.Hours{Open: slot.MustParseTimeOfDay("09:00"), Close: slot.MustParseTimeOfDay("22:00")},
		slot.Hours{Open: slot.MustParseTimeOfDay("08:00"), Close: slot.MustParseTimeOfDay("22:00")},
		holidays,
		30,
		Bangkok(),
	)
	if err != nil {
		panic(err)
	}
	return cal
}

func NewPriceCalculator() *reservation.TableRateCalculator {
	calc, err := reservation.NewTableRateCalculator(
		map[string]int64{"badminton": 15000, "tennis": 25000},
		slot.MustParseTimeOfDay("18:00"),
		5000,
		"thb",
	)
	if err != nil {
		panic(err)
	}
	return calc
}

// NewFactory uses a clock fixed well before DefaultDate.
func NewFactory() (*reservation.Factory, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2030, time.June, 1, 12, 0, 0, 0, Bangkok()))
	return reservation.NewFactory(clk, NewCalendar(), NewPriceCalculator()), clk
}

func Slots(starts ...string) []slot.TimeOfDay {
	out := make([]slot.TimeOfDay, len(starts))
	for i, s := range starts {
		out[i] = slot.MustParseTimeOfDay(s)
	}
	return out
}

type ReservationBuilder struct {
	ResourceID       uuid.UUID
	Date             time.Time
	Start            slot.TimeOfDay
	Minutes          int
	Category         reservation.Category
	AmountCents      int64
	Status           reservation.Status
	PaymentStatus    reservation.PaymentStatus
	PaymentMethod    reservation.PaymentMethod
	PaymentSessionID *string
	Owner            reservation.Owner
}

func NewReservationBuilder() *ReservationBuilder {
	userID := uuid.New()
	return &ReservationBuilder{
		ResourceID:    uuid.New(),
		Date:          DefaultDate,
		Start:         slot.MustParseTimeOfDay("09:00"),
		Minutes:       30,
		Category:      "badminton",
		AmountCents:   15000,
		Status:        reservation.StatusConfirmed,
		PaymentStatus: reservation.PaymentPending,
		PaymentMethod: reservation.PaymentOnSite,
		Owner:         reservation.Owner{UserID: &userID, Name: "Somchai", Email: "somchai@example.com"},
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) At(start string) *ReservationBuilder {
	b.Start = slot.MustParseTimeOfDay(start)
	return b
}

func (b *ReservationBuilder) On(resourceID uuid.UUID) *ReservationBuilder {
	b.ResourceID = resourceID
	return b
}

// BuildDomain creates the row through the domain constructor. Cancelled rows
// are created confirmed and then cancelled, since only live rows can be created.
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	status := b.Status
	if status == reservation.StatusCancelled {
		status = reservation.StatusConfirmed
	}
	createdAt := time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)
	r, err := reservation.NewReservation(reservation.NewParams{
		ResourceID:       b.ResourceID,
		Date:             b.Date,
		Interval:         slot.Interval{Start: b.Start, End: b.Start.Add(b.Minutes)},
		Category:         b.Category,
		Amount:           reservation.MustMoney(b.AmountCents),
		Status:           status,
		PaymentStatus:    b.PaymentStatus,
		PaymentMethod:    b.PaymentMethod,
		PaymentSessionID: b.PaymentSessionID,
		Owner:            b.Owner,
		CreatedAt:        createdAt,
	})
	if err != nil {
		panic(err)
	}
	if b.Status == reservation.StatusCancelled {
		if err := r.Cancel(createdAt.Add(time.Hour)); err != nil {
			panic(err)
		}
	}
	return r
}
