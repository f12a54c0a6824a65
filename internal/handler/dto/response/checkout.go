package response

import (
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
)

const MsgRefundPending = "payment succeeded but the slot was taken, contact support for a refund"

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	URL         string `json:"url"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		SessionID:   r.SessionID,
		URL:         r.URL,
		AmountCents: r.AmountCents,
		Currency:    r.Currency,
	}
}

type VerifyResponse struct {
	Status       string                 `json:"status"`
	SessionID    string                 `json:"session_id"`
	Message      string                 `json:"message,omitempty"`
	Reservations []*ReservationResponse `json:"reservations"`
}

func FromReconcileResult(r *commands.ReconcileResult) *VerifyResponse {
	out := &VerifyResponse{
		Status:       string(r.Status),
		SessionID:    r.SessionID,
		Reservations: FromReservationViews(queries.ToReservationViews(r.Reservations)),
	}
	if r.Status == commands.ReconcileConflict {
		out.Message = MsgRefundPending
	}
	return out
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}

func FromWebhookResult(r *commands.WebhookResult) *WebhookResponse {
	out := &WebhookResponse{Received: true, Outcome: "ignored"}
	if !r.Ignored && r.Reconcile != nil {
		out.Outcome = string(r.Reconcile.Status)
	}
	return out
}
