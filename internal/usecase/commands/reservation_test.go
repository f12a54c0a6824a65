//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/conflict"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	store   *memstore.Store
	clock   *clock.MockClock
	uc      commands.ReservationCommands
	courtA  uuid.UUID
	courtB  uuid.UUID
	member  user.Identity
	ctx     context.Context
	factory *reservation.Factory
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.courtA = s.store.AddResource("Court 1", true)
	s.courtB = s.store.AddResource("Court 2", true)
	s.factory, s.clock = builder.NewFactory()
	s.uc = commands.NewReservationUseCase(s.store, s.factory, conflict.NewOracle(), s.clock)
	s.member = user.Identity{ID: uuid.New(), Email: "member@example.com", Name: "Member", Role: user.RoleMember}
}

func (s *ReservationCommandsTestSuite) request(resourceIDs []uuid.UUID, starts ...string) commands.ReserveRequest {
	return commands.ReserveRequest{
		ResourceIDs: resourceIDs,
		Date:        builder.DefaultDate,
		TimeSlots:   builder.Slots(starts...),
		Category:    "badminton",
		Owner:       reservation.NewUserOwner(s.member),
	}
}

// =============================================================================
// Reserve
// =============================================================================

func (s *ReservationCommandsTestSuite) TestReserve_Success() {
	result, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "17:30", "18:00"))

	s.Require().NoError(err)
	s.Equal(2, result.Count)
	s.Equal(int64(15000), result.Reservations[0].Amount().Cents())
	s.Equal(int64(20000), result.Reservations[1].Amount().Cents(), "peak surcharge from 18:00")
	for _, r := range result.Reservations {
		s.Equal(reservation.StatusConfirmed, r.Status())
		s.Equal(reservation.PaymentPending, r.PaymentStatus())
		s.Equal(reservation.PaymentOnSite, r.PaymentMethod())
		s.True(r.OwnedBy(s.member.ID))
	}
	s.Equal(2, s.store.ActiveCount())
	s.Len(s.store.JobsOfKind(shared.JobReservationCreated), 1)
}

func (s *ReservationCommandsTestSuite) TestReserve_MultipleResourcesInOrder() {
	result, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA, s.courtB}, "09:00", "09:30"))

	s.Require().NoError(err)
	s.Require().Equal(4, result.Count)
	want := []struct {
		resource uuid.UUID
		start    string
	}{
		{s.courtA, "09:00"}, {s.courtA, "09:30"}, {s.courtB, "09:00"}, {s.courtB, "09:30"},
	}
	for i, w := range want {
		s.Equal(w.resource, result.Reservations[i].ResourceID())
		s.Equal(w.start, result.Reservations[i].StartTime().String())
	}
}

func (s *ReservationCommandsTestSuite) TestReserve_FixedAmountOverridesPricing() {
	amount := reservation.MustMoney(0)
	req := s.request([]uuid.UUID{s.courtA}, "19:00")
	req.AmountPerSlot = &amount

	result, err := s.uc.Reserve(s.ctx, req)

	s.Require().NoError(err)
	s.Equal(int64(0), result.Reservations[0].Amount().Cents())
}

func (s *ReservationCommandsTestSuite) TestReserve_ValidationWritesNothing() {
	testCases := []struct {
		name   string
		mutate func(*commands.ReserveRequest)
	}{
		{"no resources", func(r *commands.ReserveRequest) { r.ResourceIDs = nil }},
		{"duplicate resource", func(r *commands.ReserveRequest) { r.ResourceIDs = []uuid.UUID{s.courtA, s.courtA} }},
		{"no slots", func(r *commands.ReserveRequest) { r.TimeSlots = nil }},
		{"duplicate slot", func(r *commands.ReserveRequest) { r.TimeSlots = builder.Slots("09:00", "09:00") }},
		{"before opening on a weekday", func(r *commands.ReserveRequest) { r.TimeSlots = builder.Slots("08:00") }},
		{"off the unit grid", func(r *commands.ReserveRequest) { r.TimeSlots = builder.Slots("09:15") }},
		{"last unit must end by closing", func(r *commands.ReserveRequest) { r.TimeSlots = builder.Slots("22:00") }},
		{"unknown category", func(r *commands.ReserveRequest) { r.Category = "squash" }},
		{"guest without phone", func(r *commands.ReserveRequest) { r.Owner = reservation.Owner{Name: "Guest"} }},
		{"online payment outside checkout", func(r *commands.ReserveRequest) { r.PaymentMethod = reservation.PaymentOnline }},
		{"slot already started", func(r *commands.ReserveRequest) {
			r.Date = time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)
			r.TimeSlots = builder.Slots("10:00")
		}},
		{"inactive resource", func(r *commands.ReserveRequest) {
			r.ResourceIDs = []uuid.UUID{s.store.AddResource("Closed court", false)}
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := s.request([]uuid.UUID{s.courtA}, "09:00")
			tc.mutate(&req)

			_, err := s.uc.Reserve(s.ctx, req)

			s.Require().Error(err)
			s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
			s.Equal(0, s.store.ActiveCount())
			s.Empty(s.store.Jobs())
		})
	}
}

func (s *ReservationCommandsTestSuite) TestReserve_WeekendOpensEarlier() {
	req := s.request([]uuid.UUID{s.courtA}, "08:00")
	req.Date = time.Date(2030, time.June, 8, 0, 0, 0, 0, time.UTC)

	_, err := s.uc.Reserve(s.ctx, req)

	s.NoError(err)
}

func (s *ReservationCommandsTestSuite) TestReserve_UnknownResource() {
	_, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{uuid.New()}, "09:00"))

	s.True(errs.Is(err, errs.ErrNotFound))
	s.True(errs.Is(err, commands.ErrResourceNotFound))
}

func (s *ReservationCommandsTestSuite) TestReserve_ConflictWithExistingBooking() {
	_, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00"))
	s.Require().NoError(err)

	_, err = s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00"))

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrReservationConflict))
	s.True(errs.Is(err, errs.ErrConflict))
	var conflictErr *commands.ConflictError
	s.Require().True(errs.As(err, &conflictErr))
	s.Equal(reservation.HolderBooking, conflictErr.Source)
	s.Equal("conflicts with existing booking", conflictErr.Error())

	_, err = s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:30"))
	s.NoError(err, "adjacent unit is free")
	s.Equal(2, s.store.ActiveCount())
}

func (s *ReservationCommandsTestSuite) TestReserve_ConflictWithRecurringAndLesson() {
	s.store.AddTemplate(reservation.RecurringTemplate{
		ID: uuid.New(), ResourceID: s.courtA, Weekday: time.Monday,
		Interval:  slot.Interval{Start: slot.MustParseTimeOfDay("19:00"), End: slot.MustParseTimeOfDay("21:00")},
		ValidFrom: builder.DefaultDate.AddDate(0, -1, 0), Active: true,
	})
	s.store.AddSession(reservation.ScheduledSession{
		ID: uuid.New(), ResourceID: s.courtB, Date: builder.DefaultDate,
		Interval: slot.Interval{Start: slot.MustParseTimeOfDay("10:00"), End: slot.MustParseTimeOfDay("11:00")},
	})

	_, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "20:30"))
	var conflictErr *commands.ConflictError
	s.Require().True(errs.As(err, &conflictErr))
	s.Equal(reservation.HolderRecurring, conflictErr.Source)

	_, err = s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtB}, "10:30"))
	s.Require().True(errs.As(err, &conflictErr))
	s.Equal(reservation.HolderLesson, conflictErr.Source)

	s.Equal(0, s.store.ActiveCount())
}

func (s *ReservationCommandsTestSuite) TestReserve_ConcurrentRequestsForOneUnit() {
	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.Is(err, errs.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(workers-1, conflicts)
	s.Equal(1, s.store.ActiveCount())
}

func (s *ReservationCommandsTestSuite) TestReserve_LostRaceOnFirstSlotIsPlainConflict() {
	s.store.BeforeInsert = func(n int, res *reservation.Reservation) error {
		if n == 1 {
			return s.store.Seed(builder.NewReservationBuilder().On(res.ResourceID()).At("09:00").BuildDomain())
		}
		return nil
	}

	_, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00", "09:30"))

	s.True(errs.Is(err, commands.ErrReservationConflict))
	s.False(errs.Is(err, commands.ErrReservationRace))
	s.Equal(1, s.store.ActiveCount())
}

func (s *ReservationCommandsTestSuite) TestReserve_LostRaceMidRequestIsCompensated() {
	s.store.BeforeInsert = func(n int, res *reservation.Reservation) error {
		if n == 2 {
			return s.store.Seed(builder.NewReservationBuilder().On(res.ResourceID()).At("09:30").BuildDomain())
		}
		return nil
	}

	result, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00", "09:30", "10:00"))

	s.Nil(result)
	s.True(errs.Is(err, commands.ErrReservationRace))
	s.True(errs.Is(err, commands.ErrReservationConflict))
	s.True(errs.Is(err, errs.ErrConflict))
	s.Equal(1, s.store.ActiveCount(), "only the competing row remains")
	s.False(s.store.Reservations()[0].OwnedBy(s.member.ID))
	s.Empty(s.store.JobsOfKind(shared.JobReservationCreated))
}

func (s *ReservationCommandsTestSuite) TestReserve_StorageFailureIsCompensated() {
	s.store.BeforeInsert = func(n int, _ *reservation.Reservation) error {
		if n == 3 {
			return infra.WrapRepoErr("failed to create reservation", errors.New("connection reset"))
		}
		return nil
	}

	_, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00", "09:30", "10:00"))

	s.True(errs.Is(err, errs.ErrStorageFailure))
	s.False(errs.Is(err, errs.ErrConflict))
	s.Equal(0, s.store.ActiveCount())
}

func (s *ReservationCommandsTestSuite) TestReserve_CompensationSurvivesCallerCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	s.store.BeforeInsert = func(n int, _ *reservation.Reservation) error {
		if n == 2 {
			cancel()
		}
		return nil
	}

	_, err := s.uc.Reserve(ctx, s.request([]uuid.UUID{s.courtA}, "09:00", "09:30", "10:00"))

	s.True(errs.Is(err, errs.ErrStorageFailure))
	s.Equal(0, s.store.ActiveCount())
}

func (s *ReservationCommandsTestSuite) TestReserve_FailedCompensationStillReportsRace() {
	s.store.FailDelete = errors.New("connection reset")
	s.store.BeforeInsert = func(n int, res *reservation.Reservation) error {
		if n == 2 {
			return s.store.Seed(builder.NewReservationBuilder().On(res.ResourceID()).At("09:30").BuildDomain())
		}
		return nil
	}

	_, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00", "09:30"))

	s.True(errs.Is(err, commands.ErrReservationRace))
	s.Equal(2, s.store.ActiveCount(), "orphaned first slot is left for an operator")
}

// =============================================================================
// Cancel
// =============================================================================

func (s *ReservationCommandsTestSuite) reserveOne(start string) *reservation.Reservation {
	result, err := s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, start))
	s.Require().NoError(err)
	return result.Reservations[0]
}

func (s *ReservationCommandsTestSuite) TestCancel_OwnerFreesTheUnit() {
	res := s.reserveOne("09:00")

	cancelled, err := s.uc.Cancel(s.ctx, res.ID(), s.member)

	s.Require().NoError(err)
	s.True(cancelled.IsCancelled())
	s.Equal(0, s.store.ActiveCount())
	s.Len(s.store.JobsOfKind(shared.JobReservationCancelled), 1)

	_, err = s.uc.Reserve(s.ctx, s.request([]uuid.UUID{s.courtA}, "09:00"))
	s.NoError(err, "cancelled unit is bookable again")
}

func (s *ReservationCommandsTestSuite) TestCancel_StaffMayCancelAnyReservation() {
	res := s.reserveOne("09:00")
	staff := user.Identity{ID: uuid.New(), Role: user.RoleStaff}

	_, err := s.uc.Cancel(s.ctx, res.ID(), staff)

	s.NoError(err)
}

func (s *ReservationCommandsTestSuite) TestCancel_Errors() {
	res := s.reserveOne("09:00")
	stranger := user.Identity{ID: uuid.New(), Role: user.RoleMember}

	_, err := s.uc.Cancel(s.ctx, res.ID(), stranger)
	s.True(errs.Is(err, errs.ErrForbidden))
	s.Equal(1, s.store.ActiveCount())

	_, err = s.uc.Cancel(s.ctx, uuid.New(), s.member)
	s.True(errs.Is(err, errs.ErrNotFound))

	_, err = s.uc.Cancel(s.ctx, res.ID(), s.member)
	s.Require().NoError(err)
	_, err = s.uc.Cancel(s.ctx, res.ID(), s.member)
	s.True(errs.Is(err, commands.ErrAlreadyCancelled))
	s.True(errs.Is(err, errs.ErrConflict))
	s.Len(s.store.JobsOfKind(shared.JobReservationCancelled), 1)
}

func TestReservationCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}
