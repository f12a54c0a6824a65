package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/conflict"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const compensationTimeout = 5 * time.Second

var tracer = otel.Tracer("court-booking/usecase/commands")

type ReserveRequest struct {
	ResourceIDs      []uuid.UUID
	Date             time.Time
	TimeSlots        []slot.TimeOfDay
	Category         string
	Owner            reservation.Owner
	AmountPerSlot    *reservation.Money
	PaymentMethod    reservation.PaymentMethod
	Status           reservation.Status
	PaymentStatus    reservation.PaymentStatus
	PaymentSessionID *string
}

type ReserveResult struct {
	Reservations []*reservation.Reservation
	Count        int
}

type ReservationCommands interface {
	Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error)
	Cancel(ctx context.Context, id uuid.UUID, actor user.Identity) (*reservation.Reservation, error)
}

type reservationUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	oracle  *conflict.Oracle
	clock   clock.Clock
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	oracle *conflict.Oracle,
	clk clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:     uow,
		factory: factory,
		oracle:  oracle,
		clock:   clk,
	}
}

func (uc *reservationUseCaseImpl) Reserve(ctx context.Context, req ReserveRequest) (_ *ReserveResult, err error) {
	ctx, span := tracer.Start(ctx, "ReservationCommands.Reserve", trace.WithAttributes(
		attribute.Int("reservation.resources", len(req.ResourceIDs)),
		attribute.Int("reservation.slots", len(req.TimeSlots)),
		attribute.String("reservation.date", req.Date.Format(slot.DateLayout)),
	))
	defer func() { endSpan(span, err) }()

	rows, err := uc.buildReservations(req)
	if err != nil {
		return nil, err
	}

	reads := uc.uow.CommandReads()
	if err := uc.ensureResources(ctx, reads, req.ResourceIDs); err != nil {
		return nil, err
	}
	if err := uc.precheck(ctx, reads, rows); err != nil {
		return nil, err
	}

	if err := uc.insertSequentially(ctx, rows); err != nil {
		return nil, err
	}

	uc.enqueueCreated(ctx, rows)

	return &ReserveResult{Reservations: rows, Count: len(rows)}, nil
}

// buildReservations validates the whole request without touching storage and
// returns the rows in insert order: resource by resource, slots in request order.
func (uc *reservationUseCaseImpl) buildReservations(req ReserveRequest) ([]*reservation.Reservation, error) {
	if len(req.ResourceIDs) == 0 {
		return nil, invalid(reservation.ErrNoResources)
	}
	seen := make(map[uuid.UUID]struct{}, len(req.ResourceIDs))
	for _, id := range req.ResourceIDs {
		if _, dup := seen[id]; dup {
			return nil, invalid(errs.Wrapf(ErrDuplicateResource, "%s", id))
		}
		seen[id] = struct{}{}
	}

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

	status, paymentStatus, method := withDefaults(req)

	var rows []*reservation.Reservation
	for _, resourceID := range req.ResourceIDs {
		built, err := uc.factory.Build(reservation.SlotRequest{
			ResourceID:       resourceID,
			Date:             req.Date,
			Starts:           req.TimeSlots,
			Category:         category,
			Owner:            req.Owner,
			AmountPerSlot:    req.AmountPerSlot,
			Status:           status,
			PaymentStatus:    paymentStatus,
			PaymentMethod:    method,
			PaymentSessionID: req.PaymentSessionID,
		})
		if err != nil {
			return nil, err
		}
		rows = append(rows, built...)
	}
	return rows, nil
}

func withDefaults(req ReserveRequest) (reservation.Status, reservation.PaymentStatus, reservation.PaymentMethod) {
	status, paymentStatus, method := req.Status, req.PaymentStatus, req.PaymentMethod
	if status == "" {
		status = reservation.StatusConfirmed
	}
	if paymentStatus == "" {
		paymentStatus = reservation.PaymentPending
	}
	if method == "" {
		method = reservation.PaymentOnSite
	}
	return status, paymentStatus, method
}

func (uc *reservationUseCaseImpl) ensureResources(ctx context.Context, reads shared.CommandReads, ids []uuid.UUID) error {
	for _, id := range ids {
		if err := ensureResource(ctx, reads, id); err != nil {
			return err
		}
	}
	return nil
}

func ensureResource(ctx context.Context, reads shared.CommandReads, id uuid.UUID) error {
	res, err := reads.ResourceByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return notFound(errs.Wrapf(ErrResourceNotFound, "%s", id))
		}
		return storageFailure(err)
	}
	if !res.Active {
		return invalid(errs.Wrapf(ErrResourceInactive, "%s", res.Name))
	}
	return nil
}

// precheck is advisory. Two requests can both pass it; the unique index decides.
func (uc *reservationUseCaseImpl) precheck(ctx context.Context, holders shared.HolderReader, rows []*reservation.Reservation) error {
	for _, r := range rows {
		c, err := uc.oracle.FindConflict(ctx, holders, r.ResourceID(), r.Date(), r.Interval())
		if err != nil {
			return storageFailure(err)
		}
		if c != nil {
			return newConflictError(c.Source, r.ResourceID(), r.Date(), r.StartTime())
		}
	}
	return nil
}

// insertSequentially commits one row per statement so a lost race can be told
// apart from an outright conflict, and undoes earlier rows when one fails.
func (uc *reservationUseCaseImpl) insertSequentially(ctx context.Context, rows []*reservation.Reservation) error {
	writer := uc.uow.AutoCommit()

	for k, r := range rows {
		_, err := writer.Reservations().Create(ctx, writer.DB(), r)
		if err == nil {
			continue
		}

		inserted := rows[:k]
		if len(inserted) > 0 {
			uc.compensate(ctx, writer, inserted)
		}

		if infra.IsKind(err, infra.KindDuplicateKey) {
			if k == 0 {
				return newConflictError(reservation.HolderBooking, r.ResourceID(), r.Date(), r.StartTime())
			}
			slog.Warn("reservation race lost",
				"resource_id", r.ResourceID(),
				"date", r.Date().Format(slot.DateLayout),
				"start", r.StartTime().String(),
				"slot_index", k,
				"compensated", len(inserted))
			return newRaceError(r.ResourceID(), r.Date(), r.StartTime())
		}

		return storageFailure(err)
	}
	return nil
}

// compensate runs detached from the caller so a dropped connection cannot
// leave a partial multi-slot booking behind.
func (uc *reservationUseCaseImpl) compensate(ctx context.Context, writer shared.Tx, inserted []*reservation.Reservation) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	ids := make([]uuid.UUID, len(inserted))
	for i, r := range inserted {
		ids[i] = r.ID()
	}

	n, err := writer.Reservations().DeleteByIDs(cctx, writer.DB(), ids)
	if err != nil || n != int64(len(ids)) {
		slog.Error("compensation incomplete, orphaned reservations possible",
			"reservation_ids", ids,
			"deleted", n,
			"error", err)
		return
	}
	slog.Info("compensated partial reservation", "deleted", n)
}

func (uc *reservationUseCaseImpl) enqueueCreated(ctx context.Context, rows []*reservation.Reservation) {
	payload, err := json.Marshal(reservationEvent(shared.JobReservationCreated, rows))
	if err != nil {
		slog.Error("failed to encode reservation event", "error", err)
		return
	}

	writer := uc.uow.AutoCommit()
	_, err = writer.Notifications().CreateJob(ctx, writer.DB(), shared.NotificationJob{
		Kind:    shared.JobReservationCreated,
		Topic:   "reservation." + shared.JobReservationCreated,
		Payload: payload,
		RunAt:   uc.clock.Now(),
	})
	if err != nil {
		slog.Warn("failed to enqueue reservation notification", "error", err)
	}
}

func (uc *reservationUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID, actor user.Identity) (_ *reservation.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "ReservationCommands.Cancel", trace.WithAttributes(
		attribute.String("reservation.id", id.String()),
	))
	defer func() { endSpan(span, err) }()

	var cancelled *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return notFound(errs.Wrapf(ErrReservationNotFound, "%s", id))
			}
			return storageFailure(err)
		}

		if !res.OwnedBy(actor.ID) && !actor.Role.CanManageAll() {
			return errs.Mark(ErrNotReservationOwner, errs.ErrForbidden)
		}

		if err := res.Cancel(uc.clock.Now()); err != nil {
			return errs.Mark(errs.Mark(err, ErrAlreadyCancelled), errs.ErrConflict)
		}

		if err := tx.Reservations().Cancel(ctx, tx.DB(), res); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(errs.Mark(err, ErrAlreadyCancelled), errs.ErrConflict)
			}
			return storageFailure(err)
		}

		payload, err := json.Marshal(reservationEvent(shared.JobReservationCancelled, []*reservation.Reservation{res}))
		if err != nil {
			return err
		}
		if _, err := tx.Notifications().CreateJob(ctx, tx.DB(), shared.NotificationJob{
			Kind:    shared.JobReservationCancelled,
			Topic:   "reservation." + shared.JobReservationCancelled,
			Payload: payload,
			RunAt:   uc.clock.Now(),
		}); err != nil {
			return storageFailure(err)
		}

		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
