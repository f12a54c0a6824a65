package query

import (
	"context"

	"github.com/google/uuid"
)

const getResourceByID = `-- name: GetResourceByID :one
SELECT id, name, is_active, created_at, updated_at
FROM resources
WHERE id = $1`

func (q *Queries) GetResourceByID(ctx context.Context, db DBTX, id uuid.UUID) (Resources, error) {
	row := db.QueryRow(ctx, getResourceByID, id)
	var i Resources
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listActiveResources = `-- name: ListActiveResources :many
SELECT id, name, is_active, created_at, updated_at
FROM resources
WHERE is_active
ORDER BY name`

func (q *Queries) ListActiveResources(ctx context.Context, db DBTX) ([]Resources, error) {
	rows, err := db.Query(ctx, listActiveResources)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Resources
	for rows.Next() {
		var i Resources
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.IsActive,
			&i.CreatedAt,
			&i.UpdatedAt,
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
