package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

// SeasonRepository owns both season tables. Half-season rows are swapped
// wholesale; full-season rows are swapped per recomputed year so untouched
// closed seasons keep their rows.
type SeasonRepository struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

func NewSeasonRepository(db *sqlx.DB, txTimeout time.Duration) *SeasonRepository {
	return &SeasonRepository{db: db, txTimeout: txTimeout}
}

func (r *SeasonRepository) ListHalfSeason(ctx context.Context) ([]aggregate.SeasonRow, error) {
	return r.list(ctx, "aggregated_half_season_stats")
}

func (r *SeasonRepository) ListSeasons(ctx context.Context) ([]aggregate.SeasonRow, error) {
	return r.list(ctx, "aggregated_season_stats")
}

func (r *SeasonRepository) list(ctx context.Context, table string) ([]aggregate.SeasonRow, error) {
	query, args, err := qb.Select("*").From(table).
		OrderBy("year DESC", "half", "fantasy_points DESC", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	var rows []seasonStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	out := make([]aggregate.SeasonRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonRowFromModel(row))
	}
	return out, nil
}

func (r *SeasonRepository) ReplaceHalfSeason(ctx context.Context, rows []aggregate.SeasonRow, invalidatedAt time.Time) error {
	return inReplaceTx(ctx, r.db, r.txTimeout, "replace half-season stats", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "aggregated_half_season_stats"); err != nil {
			return err
		}
		if err := insertSeasonRows(ctx, tx, "aggregated_half_season_stats", rows); err != nil {
			return err
		}
		return stampCache(ctx, tx, aggregate.KeyHalfSeasonStats, invalidatedAt)
	})
}

func (r *SeasonRepository) ReplaceSeasons(ctx context.Context, years []int, rows []aggregate.SeasonRow, invalidatedAt time.Time) error {
	return inReplaceTx(ctx, r.db, r.txTimeout, "replace season stats", func(tx *sqlx.Tx) error {
		if len(years) > 0 {
			query, args, err := qb.DeleteFrom("aggregated_season_stats").
				Where(qb.Expr("year = ANY(?)", pq.Array(years))).
				ToSQL()
			if err != nil {
				return errors.Wrap(err, "build clear season stats query")
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrap(err, "clear season stats")
			}
		}
		if err := insertSeasonRows(ctx, tx, "aggregated_season_stats", rows); err != nil {
			return err
		}
		return stampCache(ctx, tx, aggregate.KeySeasonStats, invalidatedAt)
	})
}

func insertSeasonRows(ctx context.Context, tx *sqlx.Tx, table string, rows []aggregate.SeasonRow) error {
	for _, row := range rows {
		query, args, err := qb.InsertModel(table, seasonRowToModel(row), "")
		if err != nil {
			return errors.Wrapf(err, "build insert %s query", table)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert %s player=%s year=%d half=%d", table, row.PlayerID, row.Year, row.Half)
		}
	}
	return nil
}
