package shared

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra/query"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// AutoCommit: Repositories bound to the pool, every statement commits on its own
	AutoCommit() Tx
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() query.DBTX
}

// HolderReader returns everything that can occupy a unit on a resource and date.
// Results are never cached; each call reads storage.
type HolderReader interface {
	ActiveBookings(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]reservation.BookedInterval, error)
	RecurringTemplates(ctx context.Context, resourceID uuid.UUID, weekday time.Weekday) ([]reservation.RecurringTemplate, error)
	ScheduledSessions(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]reservation.ScheduledSession, error)
}

type CommandReads interface {
	HolderReader
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ReservationsBySession(ctx context.Context, sessionID string) ([]*reservation.Reservation, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx query.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	DeleteByIDs(ctx context.Context, tx query.DBTX, ids []uuid.UUID) (int64, error)
	Cancel(ctx context.Context, tx query.DBTX, res *reservation.Reservation) error
}

type NotificationRepository interface {
	// CreateJob reports false when a job with the same dedupe key already exists.
	CreateJob(ctx context.Context, tx query.DBTX, job NotificationJob) (bool, error)
}
