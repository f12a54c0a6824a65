package bootstrap

import (
	"court-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	JWTModule,
	DomainModule,
	PaymentModule,
	MessagingModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

// WorkerModule runs the outbox relay. The serve command includes it unless
// relaying is handed to a separate process.
var WorkerModule = components.WorkerModule
