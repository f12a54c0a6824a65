package reservation

import (
	"time"

	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errs.New("invalid reservation status")
	ErrInvalidPayment      = errs.New("invalid payment status or method")
	ErrSessionRequired     = errs.New("online reservations require a payment session id")
	ErrReservationCanceled = errs.New("reservation is already cancelled")
)

// Reservation is a direct booking of exactly one calendar unit.
type Reservation struct {
	id               uuid.UUID
	resourceID       uuid.UUID
	date             time.Time
	interval         slot.Interval
	category         Category
	amount           Money
	status           Status
	paymentStatus    PaymentStatus
	paymentMethod    PaymentMethod
	paymentSessionID *string
	owner            Owner
	createdAt        time.Time
	updatedAt        time.Time
}

type NewParams struct {
	ResourceID       uuid.UUID
	Date             time.Time
	Interval         slot.Interval
	Category         Category
	Amount           Money
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentMethod    PaymentMethod
	PaymentSessionID *string
	Owner            Owner
	CreatedAt        time.Time
}

func NewReservation(p NewParams) (*Reservation, error) {
	if !p.Status.IsValid() || p.Status == StatusCancelled {
		return nil, invalid(ErrInvalidStatus)
	}
	if !p.PaymentStatus.IsValid() || !p.PaymentMethod.IsValid() {
		return nil, invalid(ErrInvalidPayment)
	}
	// online rows only come out of a reconciled checkout session
	if p.PaymentMethod == PaymentOnline && (p.PaymentSessionID == nil || *p.PaymentSessionID == "") {
		return nil, invalid(ErrSessionRequired)
	}
	if !p.Interval.Start.Before(p.Interval.End) {
		return nil, invalid(slot.ErrEmptyInterval)
	}
	if p.Category == "" {
		return nil, invalid(ErrInvalidCategory)
	}
	if err := p.Owner.Validate(); err != nil {
		return nil, err
	}

	return &Reservation{
		id:               uuid.New(),
		resourceID:       p.ResourceID,
		date:             p.Date,
		interval:         p.Interval,
		category:         p.Category,
		amount:           p.Amount,
		status:           p.Status,
		paymentStatus:    p.PaymentStatus,
		paymentMethod:    p.PaymentMethod,
		paymentSessionID: p.PaymentSessionID,
		owner:            p.Owner,
		createdAt:        p.CreatedAt,
		updatedAt:        p.CreatedAt,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	p NewParams,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		resourceID:       p.ResourceID,
		date:             p.Date,
		interval:         p.Interval,
		category:         p.Category,
		amount:           p.Amount,
		status:           p.Status,
		paymentStatus:    p.PaymentStatus,
		paymentMethod:    p.PaymentMethod,
		paymentSessionID: p.PaymentSessionID,
		owner:            p.Owner,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (r *Reservation) IsActive() bool {
	return r.status != StatusCancelled
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) OwnedBy(userID uuid.UUID) bool {
	return r.owner.UserID != nil && *r.owner.UserID == userID
}

// Cancel frees the unit. The row stays; only non-cancelled rows hold the slot.
func (r *Reservation) Cancel(now time.Time) error {
	if r.IsCancelled() {
		return ErrReservationCanceled
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return nil
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) ResourceID() uuid.UUID        { return r.resourceID }
func (r *Reservation) Date() time.Time              { return r.date }
func (r *Reservation) Interval() slot.Interval      { return r.interval }
func (r *Reservation) StartTime() slot.TimeOfDay    { return r.interval.Start }
func (r *Reservation) EndTime() slot.TimeOfDay      { return r.interval.End }
func (r *Reservation) Category() Category           { return r.category }
func (r *Reservation) Amount() Money                { return r.amount }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) PaymentMethod() PaymentMethod { return r.paymentMethod }
func (r *Reservation) PaymentSessionID() *string    { return r.paymentSessionID }
func (r *Reservation) Owner() Owner                 { return r.owner }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
