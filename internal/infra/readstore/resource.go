package readstore

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ResourceReadQueries interface {
	GetResourceByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Resources, error)
	ListActiveResources(ctx context.Context, db query.DBTX) ([]query.Resources, error)
}

type ResourceReadStore struct {
	queries ResourceReadQueries
}

func NewResourceReadStore(queries ResourceReadQueries) *ResourceReadStore {
	return &ResourceReadStore{
		queries: queries,
	}
}

func (r *ResourceReadStore) FindActive(ctx context.Context, db query.DBTX) ([]*shared.ResourceSnapshot, error) {
	rows, err := r.queries.ListActiveResources(ctx, db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active resources", err)
	}

	result := make([]*shared.ResourceSnapshot, len(rows))
	for i, row := range rows {
		result[i] = toResourceSnapshotFromRow(row)
	}

	return result, nil
}

func (r *ResourceReadStore) FindByID(ctx context.Context, db query.DBTX, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	row, err := r.queries.GetResourceByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	return toResourceSnapshotFromRow(row), nil
}

func toResourceSnapshotFromRow(row query.Resources) *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:     row.ID,
		Name:   row.Name,
		Active: row.IsActive,
	}
}
