package api

import (
	"io"
	"log/slog"
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const maxWebhookBytes = 64 << 10

// Signature header names of the supported processors. Omise sends none; its
// deliveries are authenticated by re-fetching the event.
var signatureHeaders = []string{"Stripe-Signature", "X-Webhook-Signature"}

type CheckoutHandler struct {
	cmds commands.PaymentCommands
}

func NewCheckoutHandler(cmds commands.PaymentCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Start checkout
// @Description Prices the slots and opens a payment session. No reservation exists until payment is confirmed.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Start(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validationDetail(err))
		return
	}
	cmd, err := req.ToCommand(optionalIdentity(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	result, err := h.cmds.StartCheckout(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Verify checkout
// @Description Polled by the return page. Reconciles the session if the processor reports it paid.
// @Tags checkout
// @Produce json
// @Param session_id query string true "Processor session ID"
// @Success 200 {object} resdto.VerifyResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout/verify [get]
func (h *CheckoutHandler) Verify(c *gin.Context) {
	result, err := h.cmds.VerifySession(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconcileResult(result))
}

// @Summary Payment webhook
// @Description Acknowledged with 200 once verified, including deliveries that end in a refund flag.
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /webhooks/payments [post]
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			slog.Error("webhook payload over limit", "limit_bytes", tooLarge.Limit)
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Payload too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable payload", nil)
		return
	}

	result, err := h.cmds.HandleWebhook(c.Request.Context(), payload, signatureOf(c))
	if err != nil {
		if errs.Is(err, commands.ErrInvalidSignature) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook signature", nil)
			return
		}
		// the processor retries anything that is not 2xx
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.MsgInternal, nil)
		return
	}

	if result.Reconcile != nil && result.Reconcile.Status == commands.ReconcileConflict {
		slog.Warn("webhook acknowledged with reconciliation conflict",
			"event_id", result.EventID, "session_id", result.Reconcile.SessionID, "reason", result.Reconcile.Reason)
	}
	c.JSON(http.StatusOK, resdto.FromWebhookResult(result))
}

func signatureOf(c *gin.Context) string {
	for _, h := range signatureHeaders {
		if v := c.GetHeader(h); v != "" {
			return v
		}
	}
	return ""
}
