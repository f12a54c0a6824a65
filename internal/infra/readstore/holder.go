package readstore

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/internal/infra/repository/converter"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type HolderReadQueries interface {
	ListActiveReservationsByResourceDate(ctx context.Context, db query.DBTX, arg query.ListActiveReservationsByResourceDateParams) ([]query.Reservations, error)
	ListRecurringTemplatesForResource(ctx context.Context, db query.DBTX, arg query.ListRecurringTemplatesForResourceParams) ([]query.RecurringTemplates, error)
	ListRecurringTemplatesForWeekday(ctx context.Context, db query.DBTX, dayOfWeek int16) ([]query.RecurringTemplates, error)
	ListScheduledSessionsForResource(ctx context.Context, db query.DBTX, arg query.ListScheduledSessionsForResourceParams) ([]query.ScheduledSessions, error)
	ListScheduledSessionsByDate(ctx context.Context, db query.DBTX, date pgtype.Date) ([]query.ScheduledSessions, error)
}

// HolderReadStore reads the three holder kinds. Recurring templates and
// scheduled sessions are owned elsewhere and only ever read here.
type HolderReadStore struct {
	queries HolderReadQueries
	db      query.DBTX
}

func NewHolderReadStore(queries HolderReadQueries, db query.DBTX) *HolderReadStore {
	return &HolderReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *HolderReadStore) ActiveBookings(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]reservation.BookedInterval, error) {
	rows, err := s.queries.ListActiveReservationsByResourceDate(ctx, s.db, query.ListActiveReservationsByResourceDateParams{
		ResourceID: resourceID,
		Date:       pgconv.DateToPgtype(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}

	out := make([]reservation.BookedInterval, len(rows))
	for i, row := range rows {
		out[i] = converter.BookedIntervalFromInfra(row)
	}
	return out, nil
}

func (s *HolderReadStore) RecurringTemplates(ctx context.Context, resourceID uuid.UUID, weekday time.Weekday) ([]reservation.RecurringTemplate, error) {
	rows, err := s.queries.ListRecurringTemplatesForResource(ctx, s.db, query.ListRecurringTemplatesForResourceParams{
		ResourceID: resourceID,
		DayOfWeek:  converter.DayOfWeek(weekday),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recurring templates", err)
	}

	return toRecurringTemplates(rows), nil
}

func (s *HolderReadStore) ScheduledSessions(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]reservation.ScheduledSession, error) {
	rows, err := s.queries.ListScheduledSessionsForResource(ctx, s.db, query.ListScheduledSessionsForResourceParams{
		ResourceID: resourceID,
		Date:       pgconv.DateToPgtype(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list scheduled sessions", err)
	}

	return toScheduledSessions(rows), nil
}

// RecurringTemplatesOn returns the templates of every resource for weekday.
func (s *HolderReadStore) RecurringTemplatesOn(ctx context.Context, weekday time.Weekday) ([]reservation.RecurringTemplate, error) {
	rows, err := s.queries.ListRecurringTemplatesForWeekday(ctx, s.db, converter.DayOfWeek(weekday))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recurring templates for weekday", err)
	}

	return toRecurringTemplates(rows), nil
}

func (s *HolderReadStore) ScheduledSessionsOn(ctx context.Context, date time.Time) ([]reservation.ScheduledSession, error) {
	rows, err := s.queries.ListScheduledSessionsByDate(ctx, s.db, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list scheduled sessions for date", err)
	}

	return toScheduledSessions(rows), nil
}

func toRecurringTemplates(rows []query.RecurringTemplates) []reservation.RecurringTemplate {
	out := make([]reservation.RecurringTemplate, len(rows))
	for i, row := range rows {
		out[i] = converter.RecurringTemplateFromInfra(row)
	}
	return out
}

func toScheduledSessions(rows []query.ScheduledSessions) []reservation.ScheduledSession {
	out := make([]reservation.ScheduledSession, len(rows))
	for i, row := range rows {
		out[i] = converter.ScheduledSessionFromInfra(row)
	}
	return out
}
