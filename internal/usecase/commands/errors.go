package commands

import (
	"time"

	"court-booking/internal/domain/payment"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound    = errs.New("resource not found")
	ErrResourceInactive    = errs.New("resource is not bookable")
	ErrReservationConflict = errs.New("reservation conflict")
	ErrReservationRace     = errs.New("slot was taken while booking")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNotReservationOwner = errs.New("reservation belongs to someone else")
	ErrAlreadyCancelled    = errs.New("reservation already cancelled")
	ErrPaymentGateway      = errs.New("payment gateway failure")
	ErrDuplicateResource   = errs.New("duplicate resource in request")
	ErrSessionIDRequired   = errs.New("session id is required")
	ErrInvalidSignature    = payment.ErrInvalidSignature
)

// ConflictError reports the first holder found on a requested unit.
// It satisfies errs.Is(err, ErrReservationConflict) once returned.
type ConflictError struct {
	Source     reservation.HolderKind
	ResourceID uuid.UUID
	Date       time.Time
	Start      slot.TimeOfDay
}

func (e *ConflictError) Error() string {
	return e.Source.ConflictMessage()
}

func newConflictError(source reservation.HolderKind, resourceID uuid.UUID, date time.Time, start slot.TimeOfDay) error {
	err := &ConflictError{Source: source, ResourceID: resourceID, Date: date, Start: start}
	return errs.Mark(errs.Mark(err, ErrReservationConflict), errs.ErrConflict)
}

// A lost race reads like a conflict to the caller; both need a different slot.
func newRaceError(resourceID uuid.UUID, date time.Time, start slot.TimeOfDay) error {
	err := errs.Wrapf(ErrReservationRace, "%s %s %s", resourceID, date.Format(slot.DateLayout), start)
	return errs.Mark(errs.Mark(err, ErrReservationConflict), errs.ErrConflict)
}

func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}

func notFound(err error) error {
	return errs.Mark(err, errs.ErrNotFound)
}

func storageFailure(err error) error {
	return errs.Mark(err, errs.ErrStorageFailure)
}

func upstream(err error) error {
	return errs.Mark(errs.Mark(err, ErrPaymentGateway), errs.ErrUpstream)
}
