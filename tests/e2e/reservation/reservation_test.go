//go:build e2e

package reservation_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"court-booking/internal/domain/user"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/authtest"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/dbtest"
	"court-booking/tests/common/httptest"
	"court-booking/tests/common/testutil"
	"court-booking/tests/e2e"
	messagingmock "court-booking/tests/mock/messaging"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	reservationsURL = "/api/reservations"
	myURL           = "/api/me/reservations"
	availabilityURL = "/api/availability?date=2030-06-03"
)

type ReservationSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *ReservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) create(body any, token string) (*resdto.CreateReservationResponse, int) {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, token)
	if rec.Code != http.StatusCreated {
		return nil, rec.Code
	}
	var out resdto.CreateReservationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &out)
	return &out, rec.Code
}

// =============================================================================
// TestCreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("guest books two units with peak pricing", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")

		out, code := s.create(builder.NewCreateReservationRequest(courtID), "")
		require.Equal(t, http.StatusCreated, code)

		want := []*resdto.ReservationResponse{
			{ResourceID: courtID, Date: "2030-06-03", StartTime: "17:30", EndTime: "18:00", Category: "badminton",
				AmountCents: 15000, Status: "confirmed", PaymentStatus: "pending", PaymentMethod: "on_site", ContactName: "Walk In"},
			{ResourceID: courtID, Date: "2030-06-03", StartTime: "18:00", EndTime: "18:30", Category: "badminton",
				AmountCents: 20000, Status: "confirmed", PaymentStatus: "pending", PaymentMethod: "on_site", ContactName: "Walk In"},
		}
		if diff := cmp.Diff(want, out.Reservations, cmpopts.IgnoreFields(resdto.ReservationResponse{}, "ID", "CreatedAt")); diff != "" {
			t.Errorf("reservations mismatch (-want +got):\n%s", diff)
		}
		s.Equal(2, dbtest.CountActiveReservations(t, s.DB, courtID))
		s.Equal(1, dbtest.CountJobs(t, s.DB, shared.JobReservationCreated, "queued"))
	})

	s.Run("several courts in one request", func() {
		t := s.T()
		c1 := dbtest.CreateTestResource(t, s.DB, "Court 1")
		c2 := dbtest.CreateTestResource(t, s.DB, "Court 2")

		out, code := s.create(builder.NewCreateReservationRequest(c1, c2), "")
		require.Equal(t, http.StatusCreated, code)
		s.Equal(4, out.Count)
		s.Equal(2, dbtest.CountActiveReservations(t, s.DB, c1))
		s.Equal(2, dbtest.CountActiveReservations(t, s.DB, c2))
	})

	s.Run("overlap is rejected, adjacent unit is fine", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		_, code := s.create(builder.NewCreateReservationRequest(courtID), "")
		require.Equal(t, http.StatusCreated, code)

		overlap := testutil.DtoMap(t, builder.NewCreateReservationRequest(courtID), testutil.Field("time_slots", []string{"18:00"}))
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, overlap, "")
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, httperr.MsgSlotUnavailable)
		detail := httptest.AssertErrorCode(t, rec, http.StatusConflict, "conflict")
		s.Equal("conflicts with existing booking", detail["reason"])
		s.Equal(courtID.String(), detail["resource_id"])
		s.Equal("18:00", detail["start_time"])

		adjacent := testutil.DtoMap(t, builder.NewCreateReservationRequest(courtID), testutil.Field("time_slots", []string{"18:30"}))
		_, code = s.create(adjacent, "")
		s.Equal(http.StatusCreated, code)
		s.Equal(3, dbtest.CountActiveReservations(t, s.DB, courtID))
	})

	s.Run("recurring template and lesson hold their units", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		dbtest.CreateRecurringTemplate(t, s.DB, courtID, time.Monday, "19:00", "21:00", builder.DefaultDate.AddDate(0, -1, 0))
		dbtest.CreateScheduledSession(t, s.DB, courtID, builder.DefaultDate, "10:00", "11:00")

		cases := map[string]struct {
			slot   string
			reason string
		}{
			"recurring": {"20:00", "conflicts with recurring booking"},
			"lesson":    {"10:30", "conflicts with scheduled lesson"},
		}
		for name, tc := range cases {
			body := testutil.DtoMap(t, builder.NewCreateReservationRequest(courtID), testutil.Field("time_slots", []string{tc.slot}))
			rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, "")
			s.Equal(http.StatusConflict, rec.Code, name)
			s.Contains(rec.Body.String(), tc.reason, name)
		}
		s.Zero(dbtest.CountActiveReservations(t, s.DB, courtID))
	})

	s.Run("concurrent requests for one unit: exactly one wins", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		body := testutil.DtoMap(t, builder.NewCreateReservationRequest(courtID), testutil.Field("time_slots", []string{"12:00"}))

		const n = 8
		codes := make([]int, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, "")
				codes[i] = rec.Code
			}()
		}
		wg.Wait()

		created, conflicts := 0, 0
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		s.Equal(1, created)
		s.Equal(n-1, conflicts)
		s.Equal(1, dbtest.CountActiveReservations(t, s.DB, courtID))
	})

	s.Run("inactive court is not bookable", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Closed Court")
		dbtest.DeactivateResource(t, s.DB, courtID)

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, builder.NewCreateReservationRequest(courtID), "")
		s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	s.Run("unknown court", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, builder.NewCreateReservationRequest(uuid.New()), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestCancelReservation
// =============================================================================

func (s *ReservationSuite) TestCancelReservation() {
	s.Run("owner cancels and the unit opens up again", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		member := authtest.NewIdentity(user.RoleMember)
		token := s.jwt.GenerateToken(t, member)

		body := testutil.DtoMap(t, builder.NewCreateReservationRequest(courtID),
			testutil.Field("guest", nil), testutil.Field("time_slots", []string{"09:00"}))
		out, code := s.create(body, token)
		require.Equal(t, http.StatusCreated, code)
		id := out.Reservations[0].ID
		s.Require().NotNil(out.Reservations[0].UserID)
		s.Equal(member.ID, *out.Reservations[0].UserID)

		other := s.jwt.GenerateToken(t, authtest.NewIdentity(user.RoleMember))
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id.String()+"/cancel", nil, other)
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "")

		rec = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id.String()+"/cancel", nil, token)
		var cancelled resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &cancelled)
		s.Equal("cancelled", cancelled.Status)

		rec = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id.String()+"/cancel", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "already cancelled")

		_, code = s.create(body, token)
		s.Equal(http.StatusCreated, code)
		s.Equal(1, dbtest.CountJobs(t, s.DB, shared.JobReservationCancelled, "queued"))
	})

	s.Run("staff cancel any booking", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		out, code := s.create(builder.NewCreateReservationRequest(courtID), "")
		require.Equal(t, http.StatusCreated, code)

		staff := s.jwt.GenerateToken(t, authtest.NewIdentity(user.RoleStaff))
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+out.Reservations[0].ID.String()+"/cancel", nil, staff)
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
		s.Equal(1, dbtest.CountActiveReservations(t, s.DB, courtID))
	})
}

// =============================================================================
// TestReadSide
// =============================================================================

func (s *ReservationSuite) TestReadSide() {
	s.Run("my reservations and single lookup", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		member := authtest.NewIdentity(user.RoleMember)
		token := s.jwt.GenerateToken(t, member)

		body := testutil.DtoMap(t, builder.NewCreateReservationRequest(courtID), testutil.Field("guest", nil))
		out, code := s.create(body, token)
		require.Equal(t, http.StatusCreated, code)

		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, myURL, nil, token)
		var list resdto.ReservationListResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &list)
		s.Len(list.Reservations, 2)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+out.Reservations[1].ID.String(), nil, token)
		var got resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
		s.Equal("18:00", got.StartTime)
	})

	s.Run("availability marks every holder kind", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		dbtest.CreateRecurringTemplate(t, s.DB, courtID, time.Monday, "20:00", "21:00", builder.DefaultDate)
		dbtest.CreateScheduledSession(t, s.DB, courtID, builder.DefaultDate, "10:00", "10:30")
		body := testutil.DtoMap(t, builder.NewCreateReservationRequest(courtID), testutil.Field("time_slots", []string{"09:00"}))
		_, code := s.create(body, "")
		require.Equal(t, http.StatusCreated, code)

		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, "")
		var view queries.AvailabilityView
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &view)
		require.Len(t, view.Resources, 1)

		status := map[string]queries.SlotStatus{}
		for _, sl := range view.Resources[0].Slots {
			status[sl.Start] = sl.Status
		}
		s.Len(view.Resources[0].Slots, 26)
		s.Equal(queries.SlotStatus("booking"), status["09:00"])
		s.Equal(queries.SlotFree, status["09:30"])
		s.Equal(queries.SlotStatus("lesson"), status["10:00"])
		s.Equal(queries.SlotStatus("recurring"), status["20:30"])
	})
}

// =============================================================================
// TestOutboxRelay
// =============================================================================

func (s *ReservationSuite) TestOutboxRelay() {
	s.Run("queued jobs are published once and marked sent", func() {
		t := s.T()
		courtID := dbtest.CreateTestResource(t, s.DB, "Court 1")
		_, code := s.create(builder.NewCreateReservationRequest(courtID), "")
		require.Equal(t, http.StatusCreated, code)

		ctrl := gomock.NewController(t)
		pub := messagingmock.NewMockPublisher(ctrl)
		pub.EXPECT().Publish(gomock.Any(), "reservation."+shared.JobReservationCreated, gomock.Any(), gomock.Any()).
			Return(nil).Times(1)

		relay := s.NewRelay(pub)
		sent, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		s.Equal(1, sent)
		s.Equal(1, dbtest.CountJobs(t, s.DB, shared.JobReservationCreated, "sent"))

		sent, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		s.Zero(sent)
	})
}
