package request

import (
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

var ErrGuestContactRequired = errs.Mark(errs.New("guest bookings need a contact name and phone"), errs.ErrValidation)

type GuestContact struct {
	Name  string `json:"name" binding:"required,max=100"`
	Phone string `json:"phone" binding:"required,max=30"`
	Email string `json:"email" binding:"omitempty,email,max=254"`
}

type CreateReservationRequest struct {
	ResourceIDs   []uuid.UUID   `json:"resource_ids" binding:"required,min=1,max=10"`
	Date          string        `json:"date" binding:"required,civildate"`
	TimeSlots     []string      `json:"time_slots" binding:"required,min=1,max=32,dive,hhmm"`
	Category      string        `json:"category" binding:"required,max=50"`
	PaymentMethod string        `json:"payment_method" binding:"omitempty,oneof=on_site"`
	Guest         *GuestContact `json:"guest,omitempty"`
}

func (r CreateReservationRequest) ToCommand(identity *user.Identity) (commands.ReserveRequest, error) {
	date, slots, err := parseSlots(r.Date, r.TimeSlots)
	if err != nil {
		return commands.ReserveRequest{}, err
	}
	owner, err := ownerFor(identity, r.Guest)
	if err != nil {
		return commands.ReserveRequest{}, err
	}
	return commands.ReserveRequest{
		ResourceIDs:   r.ResourceIDs,
		Date:          date,
		TimeSlots:     slots,
		Category:      r.Category,
		Owner:         owner,
		PaymentMethod: reservation.PaymentMethod(r.PaymentMethod),
	}, nil
}

type CheckoutRequest struct {
	ResourceID uuid.UUID     `json:"resource_id" binding:"required"`
	Date       string        `json:"date" binding:"required,civildate"`
	TimeSlots  []string      `json:"time_slots" binding:"required,min=1,max=32,dive,hhmm"`
	Category   string        `json:"category" binding:"required,max=50"`
	Guest      *GuestContact `json:"guest,omitempty"`
}

func (r CheckoutRequest) ToCommand(identity *user.Identity) (commands.CheckoutRequest, error) {
	date, slots, err := parseSlots(r.Date, r.TimeSlots)
	if err != nil {
		return commands.CheckoutRequest{}, err
	}
	owner, err := ownerFor(identity, r.Guest)
	if err != nil {
		return commands.CheckoutRequest{}, err
	}
	return commands.CheckoutRequest{
		ResourceID: r.ResourceID,
		Date:       date,
		TimeSlots:  slots,
		Category:   r.Category,
		Owner:      owner,
	}, nil
}

func parseSlots(dateStr string, starts []string) (_ time.Time, _ []slot.TimeOfDay, err error) {
	date, err := slot.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, nil, err
	}
	slots := make([]slot.TimeOfDay, len(starts))
	for i, s := range starts {
		if slots[i], err = slot.ParseTimeOfDay(s); err != nil {
			return time.Time{}, nil, err
		}
	}
	return date, slots, nil
}

// Signed-in callers own the booking; a guest block may still add a phone number.
func ownerFor(identity *user.Identity, guest *GuestContact) (reservation.Owner, error) {
	if identity != nil {
		owner := reservation.NewUserOwner(*identity)
		if guest != nil {
			owner.Phone = guest.Phone
		}
		return owner, nil
	}
	if guest == nil {
		return reservation.Owner{}, ErrGuestContactRequired
	}
	return reservation.NewGuestOwner(guest.Name, guest.Phone, guest.Email)
}
