//go:build unit

package payment_test

import (
	"testing"

	"court-booking/internal/domain/payment"
	"court-booking/internal/domain/reservation"
	"court-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutMetadata(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	meta := payment.CheckoutMetadata{
		ResourceID: uuid.New(),
		Date:       builder.DefaultDate,
		TimeSlots:  builder.Slots("17:30", "18:00"),
		Category:   "badminton",
		Owner:      reservation.Owner{UserID: &userID, Name: "Somchai", Email: "somchai@example.com"},
	}

	raw := meta.Encode()
	assert.Equal(t, "2030-06-03", raw["date"])
	assert.Equal(t, "17:30,18:00", raw["time_slots"])
	assert.NotContains(t, raw, "contact_phone")

	got, err := payment.DecodeMetadata(raw)
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestDecodeMetadataRejectsTampering(t *testing.T) {
	t.Parallel()

	valid := func() map[string]string {
		return map[string]string{
			"resource_id":   uuid.NewString(),
			"date":          "2030-06-03",
			"time_slots":    "10:00",
			"category":      "badminton",
			"contact_name":  "Walk In",
			"contact_phone": "0812345678",
		}
	}

	tests := map[string]func(map[string]string){
		"missing resource": func(m map[string]string) { delete(m, "resource_id") },
		"bad date":         func(m map[string]string) { m["date"] = "tomorrow" },
		"no slots":         func(m map[string]string) { m["time_slots"] = "" },
		"bad slot":         func(m map[string]string) { m["time_slots"] = "10:00,25:00" },
		"no category":      func(m map[string]string) { m["category"] = " " },
		"bad user id":      func(m map[string]string) { m["user_id"] = "nope" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			raw := valid()
			mutate(raw)
			_, err := payment.DecodeMetadata(raw)
			assert.ErrorIs(t, err, payment.ErrInvalidMetadata)
		})
	}
}

func TestSplitAmount(t *testing.T) {
	t.Parallel()

	cents := func(ms []reservation.Money) []int64 {
		out := make([]int64, len(ms))
		for i, m := range ms {
			out[i] = m.Cents()
		}
		return out
	}

	assert.Equal(t, []int64{35000}, cents(payment.SplitAmount(35000, 1)))
	assert.Equal(t, []int64{17500, 17500}, cents(payment.SplitAmount(35000, 2)))
	assert.Equal(t, []int64{34, 33, 33}, cents(payment.SplitAmount(100, 3)))
	assert.Equal(t, []int64{0, 0}, cents(payment.SplitAmount(-5, 2)))
	assert.Nil(t, payment.SplitAmount(100, 0))
}
