package readstore

import (
	"context"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/shared"
)

type NotificationReadQueries interface {
	ClaimDueNotificationJobs(ctx context.Context, db query.DBTX, arg query.ClaimDueNotificationJobsParams) ([]query.NotificationJobs, error)
}

type NotificationReadStore struct {
	queries NotificationReadQueries
}

func NewNotificationReadStore(queries NotificationReadQueries) *NotificationReadStore {
	return &NotificationReadStore{
		queries: queries,
	}
}

// ClaimDue locks up to limit due jobs. tx must be a transaction; the locks
// are released on commit, after the caller has recorded the outcome.
func (s *NotificationReadStore) ClaimDue(ctx context.Context, tx query.DBTX, now time.Time, limit int32) ([]*shared.OutboxJob, error) {
	rows, err := s.queries.ClaimDueNotificationJobs(ctx, tx, query.ClaimDueNotificationJobsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	result := make([]*shared.OutboxJob, len(rows))
	for i, row := range rows {
		result[i] = toOutboxJobFromRow(row)
	}

	return result, nil
}

func toOutboxJobFromRow(row query.NotificationJobs) *shared.OutboxJob {
	return &shared.OutboxJob{
		ID:        row.ID,
		Kind:      row.Kind,
		Topic:     row.Topic,
		DedupeKey: pgconv.StringPtrFromPgtype(row.DedupeKey),
		Payload:   row.Payload,
		Attempts:  row.Attempts,
		RunAt:     row.RunAt.Time,
		CreatedAt: row.CreatedAt.Time,
	}
}
