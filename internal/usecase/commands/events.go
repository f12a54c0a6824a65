package commands

import (
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// Outbox payloads. Consumers read these from the broker; keep fields additive.

type reservationEventItem struct {
	ID          uuid.UUID  `json:"id"`
	ResourceID  uuid.UUID  `json:"resource_id"`
	Date        string     `json:"date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Category    string     `json:"category"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	ContactName string     `json:"contact_name,omitempty"`
	Email       string     `json:"email,omitempty"`
}

type reservationEventPayload struct {
	Type         string                 `json:"type"`
	SessionID    *string                `json:"session_id,omitempty"`
	Reservations []reservationEventItem `json:"reservations"`
}

func reservationEvent(kind string, rows []*reservation.Reservation) reservationEventPayload {
	p := reservationEventPayload{
		Type:         kind,
		Reservations: make([]reservationEventItem, len(rows)),
	}
	for i, r := range rows {
		owner := r.Owner()
		p.Reservations[i] = reservationEventItem{
			ID:          r.ID(),
			ResourceID:  r.ResourceID(),
			Date:        r.Date().Format(slot.DateLayout),
			StartTime:   r.StartTime().String(),
			EndTime:     r.EndTime().String(),
			Category:    r.Category().String(),
			AmountCents: r.Amount().Cents(),
			Status:      r.Status().String(),
			UserID:      owner.UserID,
			ContactName: owner.Name,
			Email:       owner.Email,
		}
		if p.SessionID == nil {
			p.SessionID = r.PaymentSessionID()
		}
	}
	return p
}

type reconciliationConflictPayload struct {
	Type        string            `json:"type"`
	SessionID   string            `json:"session_id"`
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Reason      string            `json:"reason"`
	Metadata    map[string]string `json:"metadata"`
	Action      string            `json:"action"`
}
