package bootstrap

import (
	"court-booking/internal/infra/payment/omisepay"
	"court-booking/internal/infra/payment/stripepay"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config) (commands.PaymentGateway, error) {
	switch cfg.Payment.Provider {
	case "stripe":
		if cfg.Payment.StripeSecretKey == "" || cfg.Payment.StripeWebhookSecret == "" {
			return nil, errs.New("STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET are required for the stripe provider")
		}
		return stripepay.NewGateway(cfg.Payment), nil
	case "omise":
		return omisepay.NewGateway(cfg.Payment)
	default:
		return nil, errs.Newf("unknown PAYMENT_PROVIDER %q", cfg.Payment.Provider)
	}
}
