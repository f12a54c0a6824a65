package messaging

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/infra/query"
	"court-booking/internal/infra/readstore"
	"court-booking/internal/infra/repository"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxBackoff = 5 * time.Minute

type OutboxStore interface {
	ClaimDue(ctx context.Context, tx query.DBTX, now time.Time, limit int32) ([]*shared.OutboxJob, error)
	MarkSent(ctx context.Context, tx query.DBTX, jobID uuid.UUID, attempts int32, now time.Time) error
	MarkRetry(ctx context.Context, tx query.DBTX, jobID uuid.UUID, attempts int32, lastError string, runAt time.Time, terminal bool) error
}

type outboxStore struct {
	*readstore.NotificationReadStore
	*repository.NotificationRepository
}

func NewOutboxStore(reads *readstore.NotificationReadStore, writes *repository.NotificationRepository) OutboxStore {
	return &outboxStore{NotificationReadStore: reads, NotificationRepository: writes}
}

// Relay moves queued notification jobs to the broker. Jobs are claimed with
// row locks, so several relays can run against one database.
type Relay struct {
	uow       shared.UnitOfWork
	store     OutboxStore
	publisher Publisher
	clock     clock.Clock

	interval    time.Duration
	batchSize   int32
	maxAttempts int32
}

func NewRelay(uow shared.UnitOfWork, store OutboxStore, publisher Publisher, clk clock.Clock, cfg config.MessagingConfig) *Relay {
	return &Relay{
		uow:         uow,
		store:       store,
		publisher:   publisher,
		clock:       clk,
		interval:    cfg.OutboxPollInterval,
		batchSize:   cfg.OutboxBatchSize,
		maxAttempts: cfg.OutboxMaxAttempts,
	}
}

// Run polls until ctx is done.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("outbox relay started", "interval", r.interval, "batch_size", r.batchSize)
	for {
		select {
		case <-ctx.Done():
			slog.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("outbox relay pass failed", "error", err)
			}
		}
	}
}

// RunOnce relays one batch and reports how many jobs were sent.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		now := r.clock.Now()

		jobs, err := r.store.ClaimDue(ctx, tx.DB(), now, r.batchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			attempts := job.Attempts + 1
			perr := r.publisher.Publish(ctx, job.Topic, messageID(job), job.Payload)
			if perr == nil {
				if err := r.store.MarkSent(ctx, tx.DB(), job.ID, attempts, now); err != nil {
					return err
				}
				sent++
				continue
			}

			terminal := attempts >= r.maxAttempts
			if terminal {
				slog.Error("notification dropped after final attempt",
					"job_id", job.ID, "kind", job.Kind, "attempts", attempts, "error", perr)
			} else {
				slog.Warn("notification publish failed, will retry",
					"job_id", job.ID, "kind", job.Kind, "attempts", attempts, "error", perr)
			}
			runAt := now.Add(r.backoff(attempts))
			if err := r.store.MarkRetry(ctx, tx.DB(), job.ID, attempts, perr.Error(), runAt, terminal); err != nil {
				return err
			}
		}
		return nil
	})
	return sent, err
}

func (r *Relay) backoff(attempts int32) time.Duration {
	d := r.interval
	for i := int32(1); i < attempts && d < maxBackoff; i++ {
		d *= 2
	}
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

func messageID(job *shared.OutboxJob) string {
	if job.DedupeKey != nil {
		return *job.DedupeKey
	}
	return job.ID.String()
}
