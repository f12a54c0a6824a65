//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"court-booking/internal/domain/payment"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/conflict"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/memstore"
	commandsmock "court-booking/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	clock    *clock.MockClock
	mockCtrl *gomock.Controller
	gateway  *commandsmock.MockPaymentGateway
	uc       commands.PaymentCommands
	court    uuid.UUID
	member   user.Identity
}

func (s *PaymentCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.court = s.store.AddResource("Court 1", true)

	factory, clk := builder.NewFactory()
	s.clock = clk
	s.mockCtrl = gomock.NewController(s.T())
	s.gateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.uc = commands.NewPaymentUseCase(s.store, factory, conflict.NewOracle(), s.gateway, clk)
	s.member = user.Identity{ID: uuid.New(), Email: "member@example.com", Name: "Member", Role: user.RoleMember}
}

func (s *PaymentCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PaymentCommandsTestSuite) metadata(starts ...string) payment.CheckoutMetadata {
	return payment.CheckoutMetadata{
		ResourceID: s.court,
		Date:       builder.DefaultDate,
		TimeSlots:  builder.Slots(starts...),
		Category:   "badminton",
		Owner:      reservation.NewUserOwner(s.member),
	}
}

func (s *PaymentCommandsTestSuite) paid(sessionID string, amount int64, starts ...string) payment.Confirmation {
	return payment.Confirmation{
		SessionID:   sessionID,
		Paid:        true,
		AmountCents: amount,
		Currency:    "thb",
		Metadata:    s.metadata(starts...).Encode(),
	}
}

func (s *PaymentCommandsTestSuite) paidRow(sessionID, start string) *reservation.Reservation {
	return builder.NewReservationBuilder().On(s.court).At(start).With(func(b *builder.ReservationBuilder) {
		b.PaymentStatus = reservation.PaymentPaid
		b.PaymentMethod = reservation.PaymentOnline
		b.PaymentSessionID = &sessionID
	}).BuildDomain()
}

func ids(rows []*reservation.Reservation) []uuid.UUID {
	out := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		out[i] = r.ID()
	}
	return out
}

// =============================================================================
// Reconcile
// =============================================================================

func (s *PaymentCommandsTestSuite) TestReconcile_RequiresSessionID() {
	conf := s.paid("", 15000, "09:00")

	_, err := s.uc.Reconcile(s.ctx, conf)

	s.True(errs.Is(err, errs.ErrValidation))
	s.True(errs.Is(err, commands.ErrSessionIDRequired))
}

func (s *PaymentCommandsTestSuite) TestReconcile_UnpaidWritesNothing() {
	conf := s.paid("cs_unpaid", 15000, "09:00")
	conf.Paid = false

	result, err := s.uc.Reconcile(s.ctx, conf)

	s.Require().NoError(err)
	s.Equal(commands.ReconcileUnpaid, result.Status)
	s.Equal(0, s.store.ActiveCount())
	s.Empty(s.store.Jobs())
}

func (s *PaymentCommandsTestSuite) TestReconcile_PaidCreatesConfirmedRows() {
	result, err := s.uc.Reconcile(s.ctx, s.paid("cs_1", 30001, "09:00", "09:30"))

	s.Require().NoError(err)
	s.Equal(commands.ReconcilePaid, result.Status)
	s.Require().Len(result.Reservations, 2)
	s.Equal(int64(15001), result.Reservations[0].Amount().Cents(), "remainder goes to the first slot")
	s.Equal(int64(15000), result.Reservations[1].Amount().Cents())
	for _, r := range result.Reservations {
		s.Equal(reservation.StatusConfirmed, r.Status())
		s.Equal(reservation.PaymentPaid, r.PaymentStatus())
		s.Equal(reservation.PaymentOnline, r.PaymentMethod())
		s.Equal("cs_1", *r.PaymentSessionID())
		s.True(r.OwnedBy(s.member.ID))
	}
	s.Equal(2, s.store.ActiveCount())

	jobs := s.store.JobsOfKind(shared.JobReservationConfirmed)
	s.Require().Len(jobs, 1)
	s.Equal("reservation_confirmed:cs_1", *jobs[0].DedupeKey)
}

func (s *PaymentCommandsTestSuite) TestReconcile_IsIdempotentPerSession() {
	conf := s.paid("cs_1", 30000, "09:00", "09:30")

	first, err := s.uc.Reconcile(s.ctx, conf)
	s.Require().NoError(err)
	second, err := s.uc.Reconcile(s.ctx, conf)
	s.Require().NoError(err)

	s.Equal(commands.ReconcilePaid, second.Status)
	s.ElementsMatch(ids(first.Reservations), ids(second.Reservations))
	s.Equal(2, s.store.ActiveCount())
	s.Len(s.store.JobsOfKind(shared.JobReservationConfirmed), 1)
}

func (s *PaymentCommandsTestSuite) TestReconcile_ConcurrentDeliveriesCreateOneSet() {
	conf := s.paid("cs_race", 30000, "09:00", "09:30")
	const deliveries = 6

	var wg sync.WaitGroup
	results := make([]*commands.ReconcileResult, deliveries)
	failures := make([]error, deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], failures[i] = s.uc.Reconcile(s.ctx, conf)
		}(i)
	}
	wg.Wait()

	for i := 0; i < deliveries; i++ {
		s.Require().NoError(failures[i])
		s.Equal(commands.ReconcilePaid, results[i].Status)
		s.ElementsMatch(ids(results[0].Reservations), ids(results[i].Reservations))
	}
	s.Equal(2, s.store.ActiveCount())
	s.Len(s.store.JobsOfKind(shared.JobReservationConfirmed), 1)
	s.Empty(s.store.JobsOfKind(shared.JobReconciliationConflict))
}

func (s *PaymentCommandsTestSuite) TestReconcile_OtherPathWinsInsideTransaction() {
	winner := []*reservation.Reservation{s.paidRow("cs_1", "09:00"), s.paidRow("cs_1", "09:30")}
	var once sync.Once
	s.store.BeforeWithin = func() {
		once.Do(func() {
			for _, r := range winner {
				s.Require().NoError(s.store.Seed(r))
			}
		})
	}

	result, err := s.uc.Reconcile(s.ctx, s.paid("cs_1", 30000, "09:00", "09:30"))

	s.Require().NoError(err)
	s.Equal(commands.ReconcilePaid, result.Status)
	s.ElementsMatch(ids(winner), ids(result.Reservations))
	s.Equal(2, s.store.ActiveCount())
	s.Empty(s.store.JobsOfKind(shared.JobReconciliationConflict))
}

func (s *PaymentCommandsTestSuite) TestReconcile_LateConflictIsFlaggedOnce() {
	s.Require().NoError(s.store.Seed(builder.NewReservationBuilder().On(s.court).At("09:30").BuildDomain()))
	conf := s.paid("cs_late", 30000, "09:00", "09:30")

	for i := 0; i < 2; i++ {
		result, err := s.uc.Reconcile(s.ctx, conf)

		s.Require().NoError(err)
		s.Equal(commands.ReconcileConflict, result.Status)
		s.Contains(result.Reason, "conflicts with existing booking")
		s.Empty(result.Reservations)
	}

	s.Equal(1, s.store.ActiveCount(), "only the earlier booking exists")
	jobs := s.store.JobsOfKind(shared.JobReconciliationConflict)
	s.Require().Len(jobs, 1)
	s.Equal("reconciliation_conflict:cs_late", *jobs[0].DedupeKey)
	s.Empty(s.store.JobsOfKind(shared.JobReservationConfirmed))
}

func (s *PaymentCommandsTestSuite) TestReconcile_SlotTakenInsideTransactionRollsBack() {
	var once sync.Once
	s.store.BeforeWithin = func() {
		once.Do(func() {
			s.Require().NoError(s.store.Seed(builder.NewReservationBuilder().On(s.court).At("09:30").BuildDomain()))
		})
	}

	result, err := s.uc.Reconcile(s.ctx, s.paid("cs_1", 30000, "09:00", "09:30"))

	s.Require().NoError(err)
	s.Equal(commands.ReconcileConflict, result.Status)
	s.Equal(1, s.store.ActiveCount(), "the 09:00 row was rolled back")
	s.Len(s.store.JobsOfKind(shared.JobReconciliationConflict), 1)
	s.Empty(s.store.JobsOfKind(shared.JobReservationConfirmed))
}

func (s *PaymentCommandsTestSuite) TestReconcile_UndecodableMetadataIsFlagged() {
	conf := s.paid("cs_bad", 15000, "09:00")
	conf.Metadata["resource_id"] = "not-a-uuid"

	result, err := s.uc.Reconcile(s.ctx, conf)

	s.Require().NoError(err)
	s.Equal(commands.ReconcileConflict, result.Status)
	s.Equal(0, s.store.ActiveCount())
	s.Len(s.store.JobsOfKind(shared.JobReconciliationConflict), 1)
}

// =============================================================================
// HandleWebhook / VerifySession
// =============================================================================

func (s *PaymentCommandsTestSuite) TestHandleWebhook_InvalidSignature() {
	s.gateway.EXPECT().VerifyWebhook(gomock.Any(), []byte("{}"), "bad").
		Return(nil, errs.Wrap(payment.ErrInvalidSignature, "v1 mismatch"))

	_, err := s.uc.HandleWebhook(s.ctx, []byte("{}"), "bad")

	s.True(errs.Is(err, errs.ErrValidation))
	s.True(errs.Is(err, commands.ErrInvalidSignature))
	s.Equal(0, s.store.ActiveCount())
}

func (s *PaymentCommandsTestSuite) TestHandleWebhook_GatewayFailure() {
	s.gateway.EXPECT().VerifyWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("timeout"))

	_, err := s.uc.HandleWebhook(s.ctx, []byte("{}"), "sig")

	s.True(errs.Is(err, errs.ErrUpstream))
}

func (s *PaymentCommandsTestSuite) TestHandleWebhook_IgnoresOtherEvents() {
	s.gateway.EXPECT().VerifyWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&payment.Event{ID: "evt_1", Type: "payment_intent.created", Kind: payment.EventIgnored}, nil)

	result, err := s.uc.HandleWebhook(s.ctx, []byte("{}"), "sig")

	s.Require().NoError(err)
	s.True(result.Ignored)
	s.Nil(result.Reconcile)
}

func (s *PaymentCommandsTestSuite) TestHandleWebhook_VerifiedEventWithoutSessionIsAcknowledged() {
	conf := s.paid("", 15000, "10:00")
	s.gateway.EXPECT().VerifyWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&payment.Event{ID: "evt_3", Type: "checkout.session.completed", Kind: payment.EventCheckoutCompleted, Confirmation: &conf}, nil)

	result, err := s.uc.HandleWebhook(s.ctx, []byte("{}"), "sig")

	s.Require().NoError(err)
	s.True(result.Ignored)
	s.Nil(result.Reconcile)
	s.Equal(0, s.store.ActiveCount())
	s.Empty(s.store.Jobs())
}

func (s *PaymentCommandsTestSuite) TestHandleWebhook_CompletedCheckoutReconciles() {
	conf := s.paid("cs_hook", 15000, "10:00")
	s.gateway.EXPECT().VerifyWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&payment.Event{ID: "evt_2", Type: "checkout.session.completed", Kind: payment.EventCheckoutCompleted, Confirmation: &conf}, nil)

	result, err := s.uc.HandleWebhook(s.ctx, []byte("{}"), "sig")

	s.Require().NoError(err)
	s.False(result.Ignored)
	s.Equal(commands.ReconcilePaid, result.Reconcile.Status)
	s.Equal(1, s.store.ActiveCount())
}

func (s *PaymentCommandsTestSuite) TestVerifySession() {
	s.Run("gateway failure", func() {
		s.gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_x").Return(nil, errors.New("503"))

		_, err := s.uc.VerifySession(s.ctx, "cs_x")

		s.True(errs.Is(err, errs.ErrUpstream))
	})

	s.Run("empty session id", func() {
		_, err := s.uc.VerifySession(s.ctx, "")

		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("paid session after webhook already reconciled", func() {
		conf := s.paid("cs_poll", 15000, "11:00")
		first, err := s.uc.Reconcile(s.ctx, conf)
		s.Require().NoError(err)
		s.gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_poll").Return(&conf, nil)

		result, err := s.uc.VerifySession(s.ctx, "cs_poll")

		s.Require().NoError(err)
		s.Equal(commands.ReconcilePaid, result.Status)
		s.ElementsMatch(ids(first.Reservations), ids(result.Reservations))
	})
}

// =============================================================================
// StartCheckout
// =============================================================================

func (s *PaymentCommandsTestSuite) checkoutRequest(starts ...string) commands.CheckoutRequest {
	return commands.CheckoutRequest{
		ResourceID: s.court,
		Date:       builder.DefaultDate,
		TimeSlots:  builder.Slots(starts...),
		Category:   "badminton",
		Owner:      reservation.NewUserOwner(s.member),
	}
}

func (s *PaymentCommandsTestSuite) TestStartCheckout_Success() {
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any(), "thb", gomock.Any()).
		DoAndReturn(func(_ context.Context, items []payment.LineItem, _ string, meta payment.CheckoutMetadata) (*payment.CheckoutSession, error) {
			s.Require().Len(items, 2)
			s.Equal(int64(15000), items[0].AmountCents)
			s.Equal(int64(20000), items[1].AmountCents)
			s.Equal("badminton 2030-06-03 17:30-18:00", items[0].Name)
			s.Equal(s.court, meta.ResourceID)
			s.Equal(builder.Slots("17:30", "18:00"), meta.TimeSlots)
			return &payment.CheckoutSession{SessionID: "cs_new", URL: "https://pay.example/cs_new"}, nil
		})

	result, err := s.uc.StartCheckout(s.ctx, s.checkoutRequest("17:30", "18:00"))

	s.Require().NoError(err)
	s.Equal("cs_new", result.SessionID)
	s.Equal(int64(35000), result.AmountCents)
	s.Equal("thb", result.Currency)
	s.Equal(0, s.store.ActiveCount(), "nothing is written before payment")
}

func (s *PaymentCommandsTestSuite) TestStartCheckout_ConflictSkipsGateway() {
	s.Require().NoError(s.store.Seed(builder.NewReservationBuilder().On(s.court).At("09:00").BuildDomain()))

	_, err := s.uc.StartCheckout(s.ctx, s.checkoutRequest("09:00"))

	s.True(errs.Is(err, commands.ErrReservationConflict))
}

func (s *PaymentCommandsTestSuite) TestStartCheckout_GatewayFailure() {
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("card network down"))

	_, err := s.uc.StartCheckout(s.ctx, s.checkoutRequest("09:00"))

	s.True(errs.Is(err, errs.ErrUpstream))
	s.True(errs.Is(err, commands.ErrPaymentGateway))
}

func (s *PaymentCommandsTestSuite) TestStartCheckout_GuestNeedsPhone() {
	req := s.checkoutRequest("09:00")
	req.Owner = reservation.Owner{Name: "Guest"}

	_, err := s.uc.StartCheckout(s.ctx, req)

	s.True(errs.Is(err, errs.ErrValidation))
}

func TestPaymentCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentCommandsTestSuite))
}
