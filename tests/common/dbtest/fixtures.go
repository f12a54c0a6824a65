//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestResource(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO resources (name, is_active) VALUES ($1, true) RETURNING id", name).Scan(&id)
	require.NoError(t, err)
	return id
}

func DeactivateResource(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE resources SET is_active = false WHERE id = $1", id)
	require.NoError(t, err)
}

// CreateRecurringTemplate holds [start, end) on every weekday from validFrom on, open-ended.
func CreateRecurringTemplate(t *testing.T, db DBLike, resourceID uuid.UUID, weekday time.Weekday, start, end string, validFrom time.Time) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO recurring_templates (resource_id, day_of_week, start_time, end_time, valid_from, label)
		VALUES ($1, $2, $3, $4, $5, 'league night') RETURNING id`,
		resourceID, int16(weekday), start, end, validFrom).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateScheduledSession(t *testing.T, db DBLike, resourceID uuid.UUID, date time.Time, start, end string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO scheduled_sessions (resource_id, date, start_time, end_time, title)
		VALUES ($1, $2, $3, $4, 'coaching') RETURNING id`,
		resourceID, date, start, end).Scan(&id)
	require.NoError(t, err)
	return id
}

func CountActiveReservations(t *testing.T, db DBLike, resourceID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE resource_id = $1 AND status <> 'cancelled'", resourceID).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountReservationsBySession(t *testing.T, db DBLike, sessionID string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE payment_session_id = $1", sessionID).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountJobs(t *testing.T, db DBLike, kind, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE kind = $1 AND status = $2", kind, status).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except the migration ledger
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
