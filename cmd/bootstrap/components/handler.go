package components

import (
	"court-booking/internal/handler"
	"court-booking/internal/handler/api"
	"court-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewCheckoutHandler,
		api.NewAvailabilityHandler,
		middleware.NewAuthMiddleware,
		func(r *api.ReservationHandler, c *api.CheckoutHandler, a *api.AvailabilityHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Checkout: c, Availability: a}
		},
	),
	fx.Invoke(handler.NewRouter),
)
