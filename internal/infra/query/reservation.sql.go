package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, resource_id, date, start_time, end_time, category, amount_cents,
       status, payment_status, payment_method, payment_session_id,
       user_id, contact_name, contact_phone, contact_email, created_at, updated_at`

func scanReservation(row pgx.Row) (Reservations, error) {
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.Date,
		&i.StartTime,
		&i.EndTime,
		&i.Category,
		&i.AmountCents,
		&i.Status,
		&i.PaymentStatus,
		&i.PaymentMethod,
		&i.PaymentSessionID,
		&i.UserID,
		&i.ContactName,
		&i.ContactPhone,
		&i.ContactEmail,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectReservations(rows pgx.Rows, err error) ([]Reservations, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Reservations
	for rows.Next() {
		i, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createReservation = `-- name: CreateReservation :one
INSERT INTO reservations (
    id, resource_id, date, start_time, end_time, category, amount_cents,
    status, payment_status, payment_method, payment_session_id,
    user_id, contact_name, contact_phone, contact_email, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16
)
RETURNING id`

type CreateReservationParams struct {
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
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.ResourceID,
		arg.Date,
		arg.StartTime,
		arg.EndTime,
		arg.Category,
		arg.AmountCents,
		arg.Status,
		arg.PaymentStatus,
		arg.PaymentMethod,
		arg.PaymentSessionID,
		arg.UserID,
		arg.ContactName,
		arg.ContactPhone,
		arg.ContactEmail,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const deleteReservationsByIDs = `-- name: DeleteReservationsByIDs :execrows
DELETE FROM reservations WHERE id = ANY($1::uuid[])`

func (q *Queries) DeleteReservationsByIDs(ctx context.Context, db DBTX, ids []uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteReservationsByIDs, ids)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const cancelReservation = `-- name: CancelReservation :execrows
UPDATE reservations
SET status = 'cancelled', updated_at = $2
WHERE id = $1 AND status <> 'cancelled'`

type CancelReservationParams struct {
	ID        uuid.UUID
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) CancelReservation(ctx context.Context, db DBTX, arg CancelReservationParams) (int64, error) {
	result, err := db.Exec(ctx, cancelReservation, arg.ID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReservationByID = `-- name: GetReservationByID :one
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

const listReservationsBySession = `-- name: ListReservationsBySession :many
SELECT ` + reservationColumns + `
FROM reservations
WHERE payment_session_id = $1 AND status <> 'cancelled'
ORDER BY date, start_time, resource_id`

func (q *Queries) ListReservationsBySession(ctx context.Context, db DBTX, sessionID string) ([]Reservations, error) {
	return collectReservations(db.Query(ctx, listReservationsBySession, sessionID))
}

const listActiveReservationsByResourceDate = `-- name: ListActiveReservationsByResourceDate :many
SELECT ` + reservationColumns + `
FROM reservations
WHERE resource_id = $1 AND date = $2 AND status <> 'cancelled'
ORDER BY start_time`

type ListActiveReservationsByResourceDateParams struct {
	ResourceID uuid.UUID
	Date       pgtype.Date
}

func (q *Queries) ListActiveReservationsByResourceDate(ctx context.Context, db DBTX, arg ListActiveReservationsByResourceDateParams) ([]Reservations, error) {
	return collectReservations(db.Query(ctx, listActiveReservationsByResourceDate, arg.ResourceID, arg.Date))
}

const listActiveReservationsByDate = `-- name: ListActiveReservationsByDate :many
SELECT ` + reservationColumns + `
FROM reservations
WHERE date = $1 AND status <> 'cancelled'
ORDER BY resource_id, start_time`

func (q *Queries) ListActiveReservationsByDate(ctx context.Context, db DBTX, date pgtype.Date) ([]Reservations, error) {
	return collectReservations(db.Query(ctx, listActiveReservationsByDate, date))
}

const listReservationsByUser = `-- name: ListReservationsByUser :many
SELECT ` + reservationColumns + `
FROM reservations
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

type ListReservationsByUserParams struct {
	UserID uuid.UUID
	Limit  int32
}

func (q *Queries) ListReservationsByUser(ctx context.Context, db DBTX, arg ListReservationsByUserParams) ([]Reservations, error) {
	return collectReservations(db.Query(ctx, listReservationsByUser, arg.UserID, arg.Limit))
}
