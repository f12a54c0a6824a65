package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"court-booking/cmd/bootstrap"
	"court-booking/cmd/bootstrap/components"
	"court-booking/internal/pkg/config"
	"court-booking/migrations"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	Version   = "dev"
	CommitSHA = "none"
)

func init() {
	// Fail safe: never expose debug output because of a missing setting
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           court-booking
// @version         1.0
// @description     Court reservations with online payment reconciliation.

// @BasePath  /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("starting server", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return srv.Shutdown(ctx)
		},
	})
}

func applyMigrations(lc fx.Lifecycle, pool *pgxpool.Pool) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return migrations.Apply(ctx, pool)
		},
	})
}

func run(opts ...fx.Option) error {
	app := fx.New(opts...)

	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop application cleanly", "error", err)
	}

	slog.Info("application stopped")
	return nil
}

func newServeCmd() *cobra.Command {
	var migrateUp, withRelay bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []fx.Option{
				bootstrap.Module,
				fx.Provide(func() *gin.Engine { return gin.New() }),
			}
			if migrateUp {
				// before startServer so requests never see an old schema
				opts = append(opts, fx.Invoke(applyMigrations))
			}
			if withRelay {
				opts = append(opts, bootstrap.WorkerModule)
			}
			opts = append(opts, fx.Invoke(startServer))
			return run(opts...)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply pending migrations on start")
	cmd.Flags().BoolVar(&withRelay, "relay", true, "run the outbox relay in this process")
	return cmd
}

func newRelayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Run only the outbox relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(
				bootstrap.ConfigModule,
				bootstrap.LoggerModule,
				bootstrap.TracingModule,
				bootstrap.DBModule,
				bootstrap.DomainModule,
				bootstrap.MessagingModule,
				components.PersistenceModule,
				components.WorkerModule,
			)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pool *pgxpool.Pool
			app := fx.New(
				bootstrap.ConfigModule,
				bootstrap.LoggerModule,
				bootstrap.DBModule,
				fx.Populate(&pool),
				fx.NopLogger,
			)
			if err := app.Start(cmd.Context()); err != nil {
				return err
			}
			defer func() { _ = app.Stop(context.Background()) }()
			return migrations.Apply(cmd.Context(), pool)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("court-booking %s (commit=%s)\n", Version, CommitSHA)
		},
	}
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "court-booking",
		Short:        "Court reservation API",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newRelayCmd(), newMigrateCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
