// Package stripepay adapts Stripe Checkout to the reconciliation flow.
package stripepay

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"court-booking/internal/domain/payment"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const sessionPlaceholder = "{CHECKOUT_SESSION_ID}"

// Events that carry a checkout session we may reconcile.
var completedEvents = map[stripe.EventType]struct{}{
	stripe.EventTypeCheckoutSessionCompleted:             {},
	stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded: {},
}

type Gateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewGateway(cfg config.PaymentConfig) *Gateway {
	return &Gateway{
		api:           client.New(cfg.StripeSecretKey, nil),
		webhookSecret: cfg.StripeWebhookSecret,
		successURL:    withSessionParam(cfg.SuccessURL),
		cancelURL:     cfg.CancelURL,
	}
}

// withSessionParam lets the success page poll verify with the session id.
func withSessionParam(u string) string {
	if strings.Contains(u, sessionPlaceholder) {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "session_id=" + sessionPlaceholder
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, items []payment.LineItem, currency string, metadata payment.CheckoutMetadata) (*payment.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		Metadata:   metadata.Encode(),
	}
	params.Context = ctx
	for _, item := range items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(item.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "stripe: create checkout session")
	}
	return &payment.CheckoutSession{SessionID: s.ID, URL: s.URL}, nil
}

func (g *Gateway) RetrieveSession(ctx context.Context, sessionID string) (*payment.Confirmation, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, errs.Wrapf(err, "stripe: retrieve session %s", sessionID)
	}
	return ToConfirmation(s), nil
}

func (g *Gateway) VerifyWebhook(_ context.Context, payload []byte, signature string) (*payment.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, errs.Wrap(payment.ErrInvalidSignature, err.Error())
		}
		return nil, errs.Wrap(err, "stripe: parse webhook")
	}

	out := &payment.Event{ID: ev.ID, Type: string(ev.Type), Kind: payment.EventIgnored}
	if _, ok := completedEvents[ev.Type]; !ok {
		return out, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
		return nil, errs.Wrapf(err, "stripe: decode session in event %s", ev.ID)
	}
	out.Kind = payment.EventCheckoutCompleted
	out.Confirmation = ToConfirmation(&s)
	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

// ToConfirmation treats "paid" and "no_payment_required" as settled.
func ToConfirmation(s *stripe.CheckoutSession) *payment.Confirmation {
	paid := s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
		s.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired
	return &payment.Confirmation{
		SessionID:   s.ID,
		Paid:        paid,
		AmountCents: s.AmountTotal,
		Currency:    string(s.Currency),
		Metadata:    s.Metadata,
	}
}
