package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"court-booking/internal/domain/payment"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/conflict"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ReconcileStatus string

const (
	ReconcileUnpaid   ReconcileStatus = "unpaid"
	ReconcilePaid     ReconcileStatus = "paid"
	ReconcileConflict ReconcileStatus = "conflict"
)

type ReconcileResult struct {
	Status       ReconcileStatus
	SessionID    string
	Reservations []*reservation.Reservation
	// Reason is set for ReconcileConflict
	Reason string
}

type CheckoutRequest struct {
	ResourceID uuid.UUID
	Date       time.Time
	TimeSlots  []slot.TimeOfDay
	Category   string
	Owner      reservation.Owner
}

type CheckoutResult struct {
	SessionID   string
	URL         string
	AmountCents int64
	Currency    string
}

type WebhookResult struct {
	EventID   string
	EventType string
	Ignored   bool
	Reconcile *ReconcileResult
}

type PaymentCommands interface {
	StartCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	Reconcile(ctx context.Context, confirmation payment.Confirmation) (*ReconcileResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
	VerifySession(ctx context.Context, sessionID string) (*ReconcileResult, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	oracle  *conflict.Oracle
	gateway PaymentGateway
	clock   clock.Clock
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	oracle *conflict.Oracle,
	gateway PaymentGateway,
	clk clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:     uow,
		factory: factory,
		oracle:  oracle,
		gateway: gateway,
		clock:   clk,
	}
}

// StartCheckout prices and pre-checks the slots, then opens a processor session.
// Nothing is written; rows only appear once the session is reconciled as paid.
func (uc *paymentUseCaseImpl) StartCheckout(ctx context.Context, req CheckoutRequest) (_ *CheckoutResult, err error) {
	ctx, span := tracer.Start(ctx, "PaymentCommands.StartCheckout", trace.WithAttributes(
		attribute.String("reservation.resource_id", req.ResourceID.String()),
		attribute.Int("reservation.slots", len(req.TimeSlots)),
	))
	defer func() { endSpan(span, err) }()

	category, err := reservation.NewCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if err := uc.factory.ValidateSlots(req.Date, req.TimeSlots); err != nil {
		return nil, err
	}
	if err := uc.factory.EnsureUpcoming(req.Date, req.TimeSlots); err != nil {
		return nil, err
	}
	if err := req.Owner.Validate(); err != nil {
		return nil, err
	}
	prices, err := uc.factory.Quote(category, req.Date, req.TimeSlots)
	if err != nil {
		return nil, err
	}

	reads := uc.uow.CommandReads()
	if err := ensureResource(ctx, reads, req.ResourceID); err != nil {
		return nil, err
	}
	for _, start := range req.TimeSlots {
		c, err := uc.oracle.FindConflict(ctx, reads, req.ResourceID, req.Date, uc.factory.Calendar.UnitAt(start))
		if err != nil {
			return nil, storageFailure(err)
		}
		if c != nil {
			return nil, newConflictError(c.Source, req.ResourceID, req.Date, start)
		}
	}

	items := make([]payment.LineItem, len(req.TimeSlots))
	var total int64
	for i, start := range req.TimeSlots {
		items[i] = payment.LineItem{
			Name:        fmt.Sprintf("%s %s %s", category, req.Date.Format(slot.DateLayout), uc.factory.Calendar.UnitAt(start)),
			AmountCents: prices[i].Cents(),
			Quantity:    1,
		}
		total += prices[i].Cents()
	}

	currency := uc.factory.PriceCalculator.Currency()
	session, err := uc.gateway.CreateCheckoutSession(ctx, items, currency, payment.CheckoutMetadata{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		TimeSlots:  req.TimeSlots,
		Category:   category,
		Owner:      req.Owner,
	})
	if err != nil {
		return nil, upstream(errs.Wrap(err, "create checkout session"))
	}

	return &CheckoutResult{
		SessionID:   session.SessionID,
		URL:         session.URL,
		AmountCents: total,
		Currency:    currency,
	}, nil
}

// Reconcile turns a confirmation into reservations exactly once per session id.
// Webhook and verify both end here and nowhere else.
func (uc *paymentUseCaseImpl) Reconcile(ctx context.Context, conf payment.Confirmation) (_ *ReconcileResult, err error) {
	ctx, span := tracer.Start(ctx, "PaymentCommands.Reconcile", trace.WithAttributes(
		attribute.String("payment.session_id", conf.SessionID),
		attribute.Bool("payment.paid", conf.Paid),
	))
	defer func() { endSpan(span, err) }()

	if conf.SessionID == "" {
		return nil, invalid(ErrSessionIDRequired)
	}
	if !conf.Paid {
		return &ReconcileResult{Status: ReconcileUnpaid, SessionID: conf.SessionID}, nil
	}

	reads := uc.uow.CommandReads()
	if done, err := uc.alreadyReconciled(ctx, reads, conf.SessionID); err != nil || done != nil {
		return done, err
	}

	meta, err := payment.DecodeMetadata(conf.Metadata)
	if err != nil {
		return uc.flagConflict(ctx, conf, err.Error())
	}

	// Late check: time has passed since checkout and the slots may be gone.
	for _, start := range meta.TimeSlots {
		c, err := uc.oracle.FindConflict(ctx, reads, meta.ResourceID, meta.Date, uc.factory.Calendar.UnitAt(start))
		if err != nil {
			return nil, storageFailure(err)
		}
		if c != nil {
			return uc.flagConflict(ctx, conf, fmt.Sprintf("%s at %s", c.Message(), start))
		}
	}

	sessionID := conf.SessionID
	rows, err := uc.factory.Build(reservation.SlotRequest{
		ResourceID:       meta.ResourceID,
		Date:             meta.Date,
		Starts:           meta.TimeSlots,
		Category:         meta.Category,
		Owner:            meta.Owner,
		Amounts:          payment.SplitAmount(conf.AmountCents, len(meta.TimeSlots)),
		Status:           reservation.StatusConfirmed,
		PaymentStatus:    reservation.PaymentPaid,
		PaymentMethod:    reservation.PaymentOnline,
		PaymentSessionID: &sessionID,
	})
	if err != nil {
		return uc.flagConflict(ctx, conf, err.Error())
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, r := range rows {
			if _, err := tx.Reservations().Create(ctx, tx.DB(), r); err != nil {
				return err
			}
		}

		payload, err := json.Marshal(reservationEvent(shared.JobReservationConfirmed, rows))
		if err != nil {
			return err
		}
		dedupe := shared.JobReservationConfirmed + ":" + sessionID
		_, err = tx.Notifications().CreateJob(ctx, tx.DB(), shared.NotificationJob{
			Kind:      shared.JobReservationConfirmed,
			Topic:     "reservation." + shared.JobReservationConfirmed,
			DedupeKey: &dedupe,
			Payload:   payload,
			RunAt:     uc.clock.Now(),
		})
		return err
	})
	if err != nil {
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, storageFailure(err)
		}
		// The other delivery path may have won; its rows carry our session id.
		done, rerr := uc.alreadyReconciled(ctx, reads, sessionID)
		if rerr != nil || done != nil {
			return done, rerr
		}
		return uc.flagConflict(ctx, conf, "slot taken while confirming payment")
	}

	return &ReconcileResult{Status: ReconcilePaid, SessionID: sessionID, Reservations: rows}, nil
}

func (uc *paymentUseCaseImpl) alreadyReconciled(ctx context.Context, reads shared.CommandReads, sessionID string) (*ReconcileResult, error) {
	existing, err := reads.ReservationsBySession(ctx, sessionID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if len(existing) == 0 {
		return nil, nil
	}
	return &ReconcileResult{Status: ReconcilePaid, SessionID: sessionID, Reservations: existing}, nil
}

// flagConflict records a paid session that could not become reservations.
// Money has moved, so this is never retried or compensated here; it is queued
// for a manual refund, once per session.
func (uc *paymentUseCaseImpl) flagConflict(ctx context.Context, conf payment.Confirmation, reason string) (*ReconcileResult, error) {
	slog.Error("paid session could not be reconciled",
		"session_id", conf.SessionID,
		"amount_cents", conf.AmountCents,
		"currency", conf.Currency,
		"reason", reason,
		"action", "manual_refund")

	payload, err := json.Marshal(reconciliationConflictPayload{
		Type:        shared.JobReconciliationConflict,
		SessionID:   conf.SessionID,
		AmountCents: conf.AmountCents,
		Currency:    conf.Currency,
		Reason:      reason,
		Metadata:    conf.Metadata,
		Action:      "manual_refund",
	})
	if err != nil {
		return nil, err
	}

	dedupe := shared.JobReconciliationConflict + ":" + conf.SessionID
	writer := uc.uow.AutoCommit()
	if _, err := writer.Notifications().CreateJob(ctx, writer.DB(), shared.NotificationJob{
		Kind:      shared.JobReconciliationConflict,
		Topic:     "payment." + shared.JobReconciliationConflict,
		DedupeKey: &dedupe,
		Payload:   payload,
		RunAt:     uc.clock.Now(),
	}); err != nil {
		return nil, storageFailure(err)
	}

	return &ReconcileResult{Status: ReconcileConflict, SessionID: conf.SessionID, Reason: reason}, nil
}

// HandleWebhook is the push path.
func (uc *paymentUseCaseImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	ev, err := uc.gateway.VerifyWebhook(ctx, payload, signature)
	if err != nil {
		if errs.Is(err, payment.ErrInvalidSignature) {
			return nil, invalid(err)
		}
		return nil, upstream(errs.Wrap(err, "verify webhook"))
	}

	result := &WebhookResult{EventID: ev.ID, EventType: ev.Type}
	if ev.Kind != payment.EventCheckoutCompleted || ev.Confirmation == nil {
		slog.Info("webhook event ignored", "event_id", ev.ID, "event_type", ev.Type)
		result.Ignored = true
		return result, nil
	}

	rec, err := uc.Reconcile(ctx, *ev.Confirmation)
	if err != nil {
		// a redelivery of a verified event cannot fix bad data, so it is acknowledged
		if errs.Is(err, errs.ErrValidation) {
			slog.Error("verified webhook event is unusable",
				"event_id", ev.ID, "event_type", ev.Type, "error", err)
			result.Ignored = true
			return result, nil
		}
		return nil, err
	}
	result.Reconcile = rec
	return result, nil
}

// VerifySession is the pull path.
func (uc *paymentUseCaseImpl) VerifySession(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	if sessionID == "" {
		return nil, invalid(ErrSessionIDRequired)
	}

	conf, err := uc.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, upstream(errs.Wrapf(err, "retrieve session %s", sessionID))
	}

	return uc.Reconcile(ctx, *conf)
}
