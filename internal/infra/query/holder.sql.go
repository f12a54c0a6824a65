package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const recurringTemplateColumns = `id, resource_id, day_of_week, start_time, end_time, valid_from, valid_until, is_active, label`

func collectRecurringTemplates(rows pgx.Rows, err error) ([]RecurringTemplates, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RecurringTemplates
	for rows.Next() {
		var i RecurringTemplates
		if err := rows.Scan(
			&i.ID,
			&i.ResourceID,
			&i.DayOfWeek,
			&i.StartTime,
			&i.EndTime,
			&i.ValidFrom,
			&i.ValidUntil,
			&i.IsActive,
			&i.Label,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRecurringTemplatesForResource = `-- name: ListRecurringTemplatesForResource :many
SELECT ` + recurringTemplateColumns + `
FROM recurring_templates
WHERE resource_id = $1 AND day_of_week = $2 AND is_active
ORDER BY start_time`

type ListRecurringTemplatesForResourceParams struct {
	ResourceID uuid.UUID
	DayOfWeek  int16
}

func (q *Queries) ListRecurringTemplatesForResource(ctx context.Context, db DBTX, arg ListRecurringTemplatesForResourceParams) ([]RecurringTemplates, error) {
	return collectRecurringTemplates(db.Query(ctx, listRecurringTemplatesForResource, arg.ResourceID, arg.DayOfWeek))
}

const listRecurringTemplatesForWeekday = `-- name: ListRecurringTemplatesForWeekday :many
SELECT ` + recurringTemplateColumns + `
FROM recurring_templates
WHERE day_of_week = $1 AND is_active
ORDER BY resource_id, start_time`

func (q *Queries) ListRecurringTemplatesForWeekday(ctx context.Context, db DBTX, dayOfWeek int16) ([]RecurringTemplates, error) {
	return collectRecurringTemplates(db.Query(ctx, listRecurringTemplatesForWeekday, dayOfWeek))
}

func collectScheduledSessions(rows pgx.Rows, err error) ([]ScheduledSessions, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ScheduledSessions
	for rows.Next() {
		var i ScheduledSessions
		if err := rows.Scan(
			&i.ID,
			&i.ResourceID,
			&i.Date,
			&i.StartTime,
			&i.EndTime,
			&i.Title,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listScheduledSessionsForResource = `-- name: ListScheduledSessionsForResource :many
SELECT id, resource_id, date, start_time, end_time, title
FROM scheduled_sessions
WHERE resource_id = $1 AND date = $2
ORDER BY start_time`

type ListScheduledSessionsForResourceParams struct {
	ResourceID uuid.UUID
	Date       pgtype.Date
}

func (q *Queries) ListScheduledSessionsForResource(ctx context.Context, db DBTX, arg ListScheduledSessionsForResourceParams) ([]ScheduledSessions, error) {
	return collectScheduledSessions(db.Query(ctx, listScheduledSessionsForResource, arg.ResourceID, arg.Date))
}

const listScheduledSessionsByDate = `-- name: ListScheduledSessionsByDate :many
SELECT id, resource_id, date, start_time, end_time, title
FROM scheduled_sessions
WHERE date = $1
ORDER BY resource_id, start_time`

func (q *Queries) ListScheduledSessionsByDate(ctx context.Context, db DBTX, date pgtype.Date) ([]ScheduledSessions, error) {
	return collectScheduledSessions(db.Query(ctx, listScheduledSessionsByDate, date))
}
