//go:build unit || e2e

// Package paytest builds processor deliveries the way the processor would sign them.
package paytest

import (
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"
)

func StripeSignature(secret string, payload []byte, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}

// StripeCheckoutCompleted is a checkout.session.completed event for a paid session.
func StripeCheckoutCompleted(eventID, sessionID string, amountCents int64, metadata map[string]string) []byte {
	session := map[string]any{
		"id":             sessionID,
		"object":         "checkout.session",
		"payment_status": "paid",
		"status":         "complete",
		"amount_total":   amountCents,
		"currency":       "thb",
		"metadata":       metadata,
	}
	event := map[string]any{
		"id":          eventID,
		"object":      "event",
		"type":        "checkout.session.completed",
		"api_version": "2023-10-16",
		"data":        map[string]any{"object": session},
	}
	b, err := json.Marshal(event)
	if err != nil {
		panic(err)
	}
	return b
}
