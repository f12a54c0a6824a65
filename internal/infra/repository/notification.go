package repository

import (
	"context"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db query.DBTX, arg query.CreateNotificationJobParams) (int64, error)
	UpdateNotificationJobStatus(ctx context.Context, db query.DBTX, arg query.UpdateNotificationJobStatusParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx query.DBTX, job shared.NotificationJob) (bool, error) {
	params := query.CreateNotificationJobParams{
		Kind:      job.Kind,
		Topic:     job.Topic,
		DedupeKey: pgconv.StringPtrToPgtype(job.DedupeKey),
		Payload:   job.Payload,
		RunAt:     pgconv.TimeToPgtype(job.RunAt),
		Status:    JobStatusQueued,
	}

	n, err := r.queries.CreateNotificationJob(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to create notification job", err)
	}

	return n > 0, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx query.DBTX, jobID uuid.UUID, attempts int32, now time.Time) error {
	return r.updateStatus(ctx, tx, query.UpdateNotificationJobStatusParams{
		ID:       jobID,
		Status:   JobStatusSent,
		Attempts: attempts,
		RunAt:    pgconv.TimeToPgtype(now),
	})
}

// MarkRetry requeues the job at runAt, or fails it for good when terminal is set.
func (r *NotificationRepository) MarkRetry(ctx context.Context, tx query.DBTX, jobID uuid.UUID, attempts int32, lastError string, runAt time.Time, terminal bool) error {
	status := JobStatusQueued
	if terminal {
		status = JobStatusFailed
	}
	return r.updateStatus(ctx, tx, query.UpdateNotificationJobStatusParams{
		ID:        jobID,
		Status:    status,
		Attempts:  attempts,
		LastError: pgtype.Text{String: lastError, Valid: lastError != ""},
		RunAt:     pgconv.TimeToPgtype(runAt),
	})
}

func (r *NotificationRepository) updateStatus(ctx context.Context, tx query.DBTX, params query.UpdateNotificationJobStatusParams) error {
	err := r.queries.UpdateNotificationJobStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}

	return nil
}
