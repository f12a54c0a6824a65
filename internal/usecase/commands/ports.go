package commands

import (
	"context"

	"court-booking/internal/domain/payment"
)

// PaymentGateway is the payment processor as seen by the reconciliation flow.
// Implementations live in internal/infra/payment.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, items []payment.LineItem, currency string, metadata payment.CheckoutMetadata) (*payment.CheckoutSession, error)
	// RetrieveSession returns the processor's current view of a session.
	RetrieveSession(ctx context.Context, sessionID string) (*payment.Confirmation, error)
	// VerifyWebhook authenticates a raw delivery. A bad signature is reported
	// as payment.ErrInvalidSignature.
	VerifyWebhook(ctx context.Context, payload []byte, signature string) (*payment.Event, error)
}
