//go:build unit || e2e

package builder

import (
	reqdto "court-booking/internal/handler/dto/request"

	"github.com/google/uuid"
)

func NewCreateReservationRequest(resourceIDs ...uuid.UUID) reqdto.CreateReservationRequest {
	if len(resourceIDs) == 0 {
		resourceIDs = []uuid.UUID{uuid.New()}
	}
	return reqdto.CreateReservationRequest{
		ResourceIDs: resourceIDs,
		Date:        DefaultDate.Format("2006-01-02"),
		TimeSlots:   []string{"17:30", "18:00"},
		Category:    "badminton",
		Guest: &reqdto.GuestContact{
			Name:  "Walk In",
			Phone: "0812345678",
			Email: "walkin@example.com",
		},
	}
}

func NewCheckoutRequest(resourceID uuid.UUID) reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		ResourceID: resourceID,
		Date:       DefaultDate.Format("2006-01-02"),
		TimeSlots:  []string{"17:30", "18:00"},
		Category:   "badminton",
		Guest: &reqdto.GuestContact{
			Name:  "Walk In",
			Phone: "0812345678",
		},
	}
}
