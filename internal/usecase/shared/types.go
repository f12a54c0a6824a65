package shared

import (
	"time"

	"github.com/google/uuid"
)

type ResourceSnapshot struct {
	ID     uuid.UUID
	Name   string
	Active bool
}

// Notification kinds written to the outbox.
const (
	JobReservationCreated     = "reservation_created"
	JobReservationConfirmed   = "reservation_confirmed"
	JobReservationCancelled   = "reservation_cancelled"
	JobReconciliationConflict = "reconciliation_conflict"
)

type NotificationJob struct {
	Kind      string
	Topic     string
	DedupeKey *string
	Payload   []byte
	RunAt     time.Time
}

// OutboxJob is a claimed notification job awaiting relay.
type OutboxJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	DedupeKey *string
	Payload   []byte
	Attempts  int32
	RunAt     time.Time
	CreatedAt time.Time
}
