package payment

import (
	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/errs"
)

var ErrInvalidSignature = errs.New("invalid webhook signature")

// Confirmation is the processor's word on a checkout session, however it arrived.
// SessionID is the idempotency key for everything reconciled from it.
// Metadata is kept raw; it is decoded only once the session is known to be paid.
type Confirmation struct {
	SessionID   string
	Paid        bool
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

type LineItem struct {
	Name        string
	AmountCents int64
	Quantity    int64
}

type CheckoutSession struct {
	SessionID string
	URL       string
}

type EventKind string

const (
	EventCheckoutCompleted EventKind = "checkout_completed"
	EventIgnored           EventKind = "ignored"
)

// Event is a verified webhook delivery.
type Event struct {
	ID           string
	Type         string
	Kind         EventKind
	Confirmation *Confirmation
}

// SplitAmount spreads a captured total over n slots so the rows add up to it.
// The remainder goes to the first slot.
func SplitAmount(total int64, n int) []reservation.Money {
	if n <= 0 {
		return nil
	}
	out := make([]reservation.Money, n)
	if total < 0 {
		total = 0
	}
	each := total / int64(n)
	rest := total - each*int64(n)
	for i := range out {
		cents := each
		if i == 0 {
			cents += rest
		}
		out[i] = reservation.MustMoney(cents)
	}
	return out
}
