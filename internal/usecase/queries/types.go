package queries

import (
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID  `json:"id"`
	ResourceID       uuid.UUID  `json:"resource_id"`
	Date             string     `json:"date"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	Category         string     `json:"category"`
	AmountCents      int64      `json:"amount_cents"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentSessionID *string    `json:"payment_session_id,omitempty"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	ContactName      string     `json:"contact_name,omitempty"`
	ContactPhone     string     `json:"contact_phone,omitempty"`
	ContactEmail     string     `json:"contact_email,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToReservationView(r *reservation.Reservation) *ReservationView {
	owner := r.Owner()
	return &ReservationView{
		ID:               r.ID(),
		ResourceID:       r.ResourceID(),
		Date:             r.Date().Format(slot.DateLayout),
		StartTime:        r.StartTime().String(),
		EndTime:          r.EndTime().String(),
		Category:         r.Category().String(),
		AmountCents:      r.Amount().Cents(),
		Status:           r.Status().String(),
		PaymentStatus:    r.PaymentStatus().String(),
		PaymentMethod:    r.PaymentMethod().String(),
		PaymentSessionID: r.PaymentSessionID(),
		UserID:           owner.UserID,
		ContactName:      owner.Name,
		ContactPhone:     owner.Phone,
		ContactEmail:     owner.Email,
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

func ToReservationViews(rows []*reservation.Reservation) []*ReservationView {
	out := make([]*ReservationView, len(rows))
	for i, r := range rows {
		out[i] = ToReservationView(r)
	}
	return out
}

// SlotStatus is "free" or the kind of holder occupying the unit.
type SlotStatus string

const SlotFree SlotStatus = "free"

type SlotAvailability struct {
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Status SlotStatus `json:"status"`
	Past   bool       `json:"past"`
}

type ResourceAvailability struct {
	ResourceID uuid.UUID          `json:"resource_id"`
	Name       string             `json:"name"`
	Slots      []SlotAvailability `json:"slots"`
}

type AvailabilityView struct {
	Date      string                 `json:"date"`
	Holiday   bool                   `json:"holiday"`
	Resources []ResourceAvailability `json:"resources"`
}
