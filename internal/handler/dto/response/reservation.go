package response

import (
	"time"

	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
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
	CreatedAt        time.Time  `json:"created_at"`
}

type CreateReservationResponse struct {
	Count        int                    `json:"count"`
	Reservations []*ReservationResponse `json:"reservations"`
}

type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var out ReservationResponse
	// identical field names; copier only fails on nil or mismatched kinds
	_ = copier.Copy(&out, v)
	return &out
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(views))
	for i, v := range views {
		out[i] = FromReservationView(v)
	}
	return out
}

func FromReserveResult(result *commands.ReserveResult) *CreateReservationResponse {
	return &CreateReservationResponse{
		Count:        result.Count,
		Reservations: FromReservationViews(queries.ToReservationViews(result.Reservations)),
	}
}
