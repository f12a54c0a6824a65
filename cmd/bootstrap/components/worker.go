package components

import (
	"context"

	"court-booking/internal/infra/messaging"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		messaging.NewOutboxStore,
		func(uow shared.UnitOfWork, store messaging.OutboxStore, pub messaging.Publisher, clk clock.Clock, cfg config.Config) *messaging.Relay {
			return messaging.NewRelay(uow, store, pub, clk, cfg.Messaging)
		},
	),
	fx.Invoke(StartRelay),
)

func StartRelay(lc fx.Lifecycle, relay *messaging.Relay) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			return nil
		},
	})
}
