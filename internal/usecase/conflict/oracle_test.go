//go:build unit

package conflict_test

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/usecase/conflict"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interval(start, end string) slot.Interval {
	return slot.Interval{Start: slot.MustParseTimeOfDay(start), End: slot.MustParseTimeOfDay(end)}
}

func TestOracle_FindConflict(t *testing.T) {
	ctx := context.Background()
	date := builder.DefaultDate

	testCases := []struct {
		name       string
		setup      func(store *memstore.Store, courtID uuid.UUID)
		candidate  slot.Interval
		wantSource reservation.HolderKind
	}{
		{
			name:      "free court",
			setup:     func(*memstore.Store, uuid.UUID) {},
			candidate: interval("09:00", "09:30"),
		},
		{
			name: "overlapping booking",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				require.NoError(t, store.Seed(builder.NewReservationBuilder().On(courtID).At("09:00").BuildDomain()))
			},
			candidate:  interval("09:00", "09:30"),
			wantSource: reservation.HolderBooking,
		},
		{
			name: "adjacent booking does not overlap",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				require.NoError(t, store.Seed(builder.NewReservationBuilder().On(courtID).At("09:00").BuildDomain()))
			},
			candidate: interval("09:30", "10:00"),
		},
		{
			name: "cancelled booking frees the unit",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				require.NoError(t, store.Seed(builder.NewReservationBuilder().On(courtID).At("09:00").
					With(func(b *builder.ReservationBuilder) { b.Status = reservation.StatusCancelled }).
					BuildDomain()))
			},
			candidate: interval("09:00", "09:30"),
		},
		{
			name: "live booking next to a cancelled one on the same unit",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				require.NoError(t, store.Seed(builder.NewReservationBuilder().On(courtID).At("09:00").
					With(func(b *builder.ReservationBuilder) { b.Status = reservation.StatusCancelled }).
					BuildDomain()))
				require.NoError(t, store.Seed(builder.NewReservationBuilder().On(courtID).At("09:00").BuildDomain()))
			},
			candidate:  interval("09:00", "09:30"),
			wantSource: reservation.HolderBooking,
		},
		{
			name: "booking on another court is ignored",
			setup: func(store *memstore.Store, _ uuid.UUID) {
				other := store.AddResource("Court 2", true)
				require.NoError(t, store.Seed(builder.NewReservationBuilder().On(other).At("09:00").BuildDomain()))
			},
			candidate: interval("09:00", "09:30"),
		},
		{
			name: "recurring template on the same weekday",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				store.AddTemplate(reservation.RecurringTemplate{
					ID: uuid.New(), ResourceID: courtID, Weekday: time.Monday,
					Interval: interval("18:00", "20:00"), ValidFrom: date.AddDate(0, -1, 0), Active: true,
				})
			},
			candidate:  interval("19:30", "20:00"),
			wantSource: reservation.HolderRecurring,
		},
		{
			name: "recurring template past its validity",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				until := date.AddDate(0, 0, -7)
				store.AddTemplate(reservation.RecurringTemplate{
					ID: uuid.New(), ResourceID: courtID, Weekday: time.Monday,
					Interval: interval("18:00", "20:00"), ValidFrom: date.AddDate(0, -1, 0), ValidUntil: &until, Active: true,
				})
			},
			candidate: interval("19:00", "19:30"),
		},
		{
			name: "recurring template not yet valid",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				store.AddTemplate(reservation.RecurringTemplate{
					ID: uuid.New(), ResourceID: courtID, Weekday: time.Monday,
					Interval: interval("18:00", "20:00"), ValidFrom: date.AddDate(0, 0, 7), Active: true,
				})
			},
			candidate: interval("19:00", "19:30"),
		},
		{
			name: "scheduled lesson",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				store.AddSession(reservation.ScheduledSession{
					ID: uuid.New(), ResourceID: courtID, Date: date, Interval: interval("10:00", "11:00"),
				})
			},
			candidate:  interval("10:30", "11:00"),
			wantSource: reservation.HolderLesson,
		},
		{
			name: "booking is reported before template and lesson",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				store.AddSession(reservation.ScheduledSession{
					ID: uuid.New(), ResourceID: courtID, Date: date, Interval: interval("09:00", "10:00"),
				})
				store.AddTemplate(reservation.RecurringTemplate{
					ID: uuid.New(), ResourceID: courtID, Weekday: time.Monday,
					Interval: interval("09:00", "10:00"), ValidFrom: date, Active: true,
				})
				require.NoError(t, store.Seed(builder.NewReservationBuilder().On(courtID).At("09:00").BuildDomain()))
			},
			candidate:  interval("09:00", "09:30"),
			wantSource: reservation.HolderBooking,
		},
		{
			name: "template is reported before lesson",
			setup: func(store *memstore.Store, courtID uuid.UUID) {
				store.AddSession(reservation.ScheduledSession{
					ID: uuid.New(), ResourceID: courtID, Date: date, Interval: interval("09:00", "10:00"),
				})
				store.AddTemplate(reservation.RecurringTemplate{
					ID: uuid.New(), ResourceID: courtID, Weekday: time.Monday,
					Interval: interval("09:00", "10:00"), ValidFrom: date, Active: true,
				})
			},
			candidate:  interval("09:30", "10:00"),
			wantSource: reservation.HolderRecurring,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			courtID := store.AddResource("Court 1", true)
			tc.setup(store, courtID)

			got, err := conflict.NewOracle().FindConflict(ctx, store.CommandReads(), courtID, date, tc.candidate)

			require.NoError(t, err)
			if tc.wantSource == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantSource, got.Source)
			assert.Equal(t, tc.wantSource.ConflictMessage(), got.Message())
		})
	}
}
