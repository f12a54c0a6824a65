// Package omisepay adapts Omise charges to the reconciliation flow.
//
// Omise has no hosted checkout session. A source plus a charge stands in for
// one: the charge id is the session id and its authorize URI is the redirect.
// Webhooks are unsigned, so a delivery is trusted only after the event is
// fetched back from the API by id.
package omisepay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"court-booking/internal/domain/payment"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

const eventChargeComplete = "charge.complete"

type Gateway struct {
	client     *omise.Client
	sourceType string
	returnURI  string
}

func NewGateway(cfg config.PaymentConfig) (*Gateway, error) {
	c, err := omise.NewClient(cfg.OmisePublicKey, cfg.OmiseSecretKey)
	if err != nil {
		return nil, errs.Wrap(err, "omise: create client")
	}
	c.SetDebug(false)
	return &Gateway{
		client:     c,
		sourceType: cfg.OmiseSourceType,
		returnURI:  cfg.SuccessURL,
	}, nil
}

func (g *Gateway) CreateCheckoutSession(_ context.Context, items []payment.LineItem, currency string, metadata payment.CheckoutMetadata) (*payment.CheckoutSession, error) {
	var total int64
	names := make([]string, len(items))
	for i, item := range items {
		total += item.AmountCents * item.Quantity
		names[i] = item.Name
	}

	src := &omise.Source{}
	if err := g.client.Do(src, &operations.CreateSource{
		Type:     g.sourceType,
		Amount:   total,
		Currency: currency,
	}); err != nil {
		return nil, errs.Wrap(err, "omise: create source")
	}

	meta := make(map[string]interface{})
	for k, v := range metadata.Encode() {
		meta[k] = v
	}

	ch := &omise.Charge{}
	if err := g.client.Do(ch, &operations.CreateCharge{
		Amount:      total,
		Currency:    currency,
		Source:      src.ID,
		ReturnURI:   g.returnURI,
		Description: strings.Join(names, ", "),
		Metadata:    meta,
	}); err != nil {
		return nil, errs.Wrap(err, "omise: create charge")
	}

	return &payment.CheckoutSession{SessionID: ch.ID, URL: ch.AuthorizeURI}, nil
}

func (g *Gateway) RetrieveSession(_ context.Context, sessionID string) (*payment.Confirmation, error) {
	ch := &omise.Charge{}
	if err := g.client.Do(ch, &operations.RetrieveCharge{ChargeID: sessionID}); err != nil {
		return nil, errs.Wrapf(err, "omise: retrieve charge %s", sessionID)
	}
	return ToConfirmation(ch), nil
}

type incomingEvent struct {
	ID string `json:"id"`
}

// VerifyWebhook ignores the signature argument; the event is re-read from the API instead.
func (g *Gateway) VerifyWebhook(_ context.Context, payload []byte, _ string) (*payment.Event, error) {
	var inc incomingEvent
	if err := json.Unmarshal(payload, &inc); err != nil || inc.ID == "" {
		return nil, errs.Wrap(payment.ErrInvalidSignature, "omise: payload carries no event id")
	}

	ev := &omise.Event{}
	if err := g.client.Do(ev, &operations.RetrieveEvent{EventID: inc.ID}); err != nil {
		if isNotFound(err) {
			return nil, errs.Wrapf(payment.ErrInvalidSignature, "omise: unknown event %s", inc.ID)
		}
		return nil, errs.Wrapf(err, "omise: retrieve event %s", inc.ID)
	}

	out := &payment.Event{ID: ev.ID, Type: ev.Key, Kind: payment.EventIgnored}
	if ev.Key != eventChargeComplete {
		return out, nil
	}

	raw, err := json.Marshal(ev.Data)
	if err != nil {
		return nil, errs.Wrapf(err, "omise: encode event %s data", ev.ID)
	}
	var ch omise.Charge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, errs.Wrapf(err, "omise: decode charge in event %s", ev.ID)
	}

	out.Kind = payment.EventCheckoutCompleted
	out.Confirmation = ToConfirmation(&ch)
	return out, nil
}

func isNotFound(err error) bool {
	var apiErr *omise.Error
	return errs.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func ToConfirmation(ch *omise.Charge) *payment.Confirmation {
	meta := make(map[string]string, len(ch.Metadata))
	for k, v := range ch.Metadata {
		switch s := v.(type) {
		case string:
			meta[k] = s
		case nil:
		default:
			slog.Debug("omise metadata value is not a string", "key", k)
			meta[k] = fmt.Sprint(s)
		}
	}
	return &payment.Confirmation{
		SessionID:   ch.ID,
		Paid:        ch.Status == omise.ChargeSuccessful,
		AmountCents: ch.Amount,
		Currency:    ch.Currency,
		Metadata:    meta,
	}
}
