package bootstrap

import (
	"context"

	"court-booking/internal/infra/messaging"
	"court-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewPublisher,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (messaging.Publisher, error) {
	pub, err := messaging.NewPublisher(cfg.Messaging)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
