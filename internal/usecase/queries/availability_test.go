//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func statusAt(t *testing.T, ra queries.ResourceAvailability, start string) queries.SlotAvailability {
	t.Helper()
	for _, s := range ra.Slots {
		if s.Start == start {
			return s
		}
	}
	t.Fatalf("no slot at %s", start)
	return queries.SlotAvailability{}
}

func TestAvailabilityQueries_ForDate(t *testing.T) {
	ctx := context.Background()
	date := builder.DefaultDate
	court := &shared.ResourceSnapshot{ID: uuid.New(), Name: "Court 1", Active: true}
	unit := func(start, end string) slot.Interval {
		return slot.Interval{Start: slot.MustParseTimeOfDay(start), End: slot.MustParseTimeOfDay(end)}
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := queriesmock.NewMockAvailabilityReadStore(ctrl)

	store.EXPECT().ActiveResources(ctx).Return([]*shared.ResourceSnapshot{court}, nil)
	store.EXPECT().ActiveReservationsOn(ctx, date).Return([]*reservation.Reservation{
		builder.NewReservationBuilder().On(court.ID).At("09:00").BuildDomain(),
	}, nil)
	store.EXPECT().RecurringTemplatesOn(ctx, time.Monday).Return([]reservation.RecurringTemplate{{
		ID: uuid.New(), ResourceID: court.ID, Weekday: time.Monday,
		Interval: unit("18:00", "19:00"), ValidFrom: date.AddDate(0, -1, 0), Active: true,
	}}, nil)
	store.EXPECT().ScheduledSessionsOn(ctx, date).Return([]reservation.ScheduledSession{{
		ID: uuid.New(), ResourceID: court.ID, Date: date, Interval: unit("09:00", "10:00"),
	}}, nil)

	clk := clock.NewMockClock(time.Date(2030, time.June, 3, 9, 10, 0, 0, builder.Bangkok()))
	q := queries.NewAvailabilityQueries(store, builder.NewCalendar(), clk)

	view, err := q.ForDate(ctx, date)

	require.NoError(t, err)
	assert.Equal(t, "2030-06-03", view.Date)
	assert.False(t, view.Holiday)
	require.Len(t, view.Resources, 1)
	ra := view.Resources[0]
	assert.Len(t, ra.Slots, 26, "09:00-22:00 in 30 minute units")

	first := statusAt(t, ra, "09:00")
	assert.Equal(t, queries.SlotStatus("booking"), first.Status, "booking is reported before the lesson")
	assert.True(t, first.Past)
	assert.Equal(t, queries.SlotStatus("lesson"), statusAt(t, ra, "09:30").Status)
	assert.False(t, statusAt(t, ra, "09:30").Past)
	assert.Equal(t, queries.SlotFree, statusAt(t, ra, "10:00").Status)
	assert.Equal(t, queries.SlotStatus("recurring"), statusAt(t, ra, "18:30").Status)
	assert.Equal(t, queries.SlotFree, statusAt(t, ra, "19:00").Status)
}

func TestAvailabilityQueries_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := queriesmock.NewMockAvailabilityReadStore(ctrl)
	store.EXPECT().ActiveResources(gomock.Any()).Return(nil, errors.New("connection refused"))

	factory, clk := builder.NewFactory()
	q := queries.NewAvailabilityQueries(store, factory.Calendar, clk)

	_, err := q.ForDate(context.Background(), builder.DefaultDate)

	assert.True(t, errs.Is(err, errs.ErrStorageFailure))
}
