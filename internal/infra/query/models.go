package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservations struct {
	ID               uuid.UUID
	ResourceID       uuid.UUID
	Date             pgtype.Date
	StartTime        pgtype.Time
	EndTime          pgtype.Time
	Category         string
	AmountCents      int64
	Status           string
	PaymentStatus    string
	PaymentMethod    string
	PaymentSessionID pgtype.Text
	UserID           pgtype.UUID
	ContactName      pgtype.Text
	ContactPhone     pgtype.Text
	ContactEmail     pgtype.Text
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type Resources struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type RecurringTemplates struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	DayOfWeek  int16
	StartTime  pgtype.Time
	EndTime    pgtype.Time
	ValidFrom  pgtype.Date
	ValidUntil pgtype.Date
	IsActive   bool
	Label      pgtype.Text
}

type ScheduledSessions struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Date       pgtype.Date
	StartTime  pgtype.Time
	EndTime    pgtype.Time
	Title      pgtype.Text
}

type NotificationJobs struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	DedupeKey pgtype.Text
	Payload   []byte
	Status    string
	Attempts  int32
	LastError pgtype.Text
	RunAt     pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
