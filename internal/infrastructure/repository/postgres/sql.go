package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// defaultReplaceTimeout bounds every wholesale table swap so a wedged
// rebuild cannot hold locks indefinitely.
const defaultReplaceTimeout = 60 * time.Second

// inReplaceTx runs fn inside one bounded transaction. Rollback on any error
// leaves the previous table contents untouched.
func inReplaceTx(ctx context.Context, db *sqlx.DB, timeout time.Duration, name string, fn func(tx *sqlx.Tx) error) error {
	if timeout <= 0 {
		timeout = defaultReplaceTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin %s tx", name)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit %s tx", name)
	}
	return nil
}

// clearTable deletes every row, the first half of a wholesale swap.
func clearTable(ctx context.Context, tx *sqlx.Tx, table string) error {
	query, args, err := qb.DeleteFrom(table).ToSQL()
	if err != nil {
		return errors.Wrapf(err, "build clear %s query", table)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "clear %s", table)
	}
	return nil
}

type cacheMetadataInsertModel struct {
	Key             string    `db:"cache_key"`
	LastInvalidated time.Time `db:"last_invalidated"`
	DependencyType  string    `db:"dependency_type"`
}

// stampCache upserts the cache_metadata row for a key inside the same
// transaction as the table swap it describes.
func stampCache(ctx context.Context, tx *sqlx.Tx, key string, at time.Time) error {
	model := cacheMetadataInsertModel{
		Key:             key,
		LastInvalidated: at,
		DependencyType:  aggregate.DependencyTypeFor(key),
	}
	query, args, err := qb.InsertModel("cache_metadata", model, `ON CONFLICT (cache_key)
DO UPDATE SET
    last_invalidated = EXCLUDED.last_invalidated,
    dependency_type = EXCLUDED.dependency_type`)
	if err != nil {
		return errors.Wrapf(err, "build stamp cache %s query", key)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "stamp cache %s", key)
	}
	return nil
}
