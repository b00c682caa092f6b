package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

type CacheMetadataRepository struct {
	db *sqlx.DB
}

func NewCacheMetadataRepository(db *sqlx.DB) *CacheMetadataRepository {
	return &CacheMetadataRepository{db: db}
}

type cacheMetadataTableModel struct {
	Key             string    `db:"cache_key"`
	LastInvalidated time.Time `db:"last_invalidated"`
	DependencyType  string    `db:"dependency_type"`
}

func (r *CacheMetadataRepository) List(ctx context.Context) ([]aggregate.CacheMetadata, error) {
	query, args, err := qb.Select("*").From("cache_metadata").OrderBy("cache_key").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select cache metadata query: %w", err)
	}

	var rows []cacheMetadataTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select cache metadata: %w", err)
	}

	out := make([]aggregate.CacheMetadata, 0, len(rows))
	for _, row := range rows {
		out = append(out, aggregate.CacheMetadata{
			Key:             row.Key,
			LastInvalidated: row.LastInvalidated,
			DependencyType:  row.DependencyType,
		})
	}
	return out, nil
}

func (r *CacheMetadataRepository) Upsert(ctx context.Context, key string, invalidatedAt time.Time, dependencyType string) error {
	model := cacheMetadataInsertModel{
		Key:             key,
		LastInvalidated: invalidatedAt,
		DependencyType:  dependencyType,
	}
	query, args, err := qb.InsertModel("cache_metadata", model, `ON CONFLICT (cache_key)
DO UPDATE SET
    last_invalidated = EXCLUDED.last_invalidated,
    dependency_type = EXCLUDED.dependency_type`)
	if err != nil {
		return fmt.Errorf("build upsert cache metadata query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert cache metadata %s: %w", key, err)
	}
	return nil
}
