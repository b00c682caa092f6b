package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

// AllTimeRepository owns the lifetime stats table and the hall of fame
// boards; both are swapped together in one transaction.
type AllTimeRepository struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

func NewAllTimeRepository(db *sqlx.DB, txTimeout time.Duration) *AllTimeRepository {
	return &AllTimeRepository{db: db, txTimeout: txTimeout}
}

func (r *AllTimeRepository) ListStats(ctx context.Context) ([]aggregate.AllTimeRow, error) {
	query, args, err := qb.Select("*").From("aggregated_all_time_stats").
		OrderBy("fantasy_points DESC", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all-time stats query: %w", err)
	}

	var rows []allTimeStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all-time stats: %w", err)
	}

	out := make([]aggregate.AllTimeRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, aggregate.AllTimeRow{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Stats:    statLineFromColumns(row),
		})
	}
	return out, nil
}

func (r *AllTimeRepository) ListHallOfFame(ctx context.Context) ([]aggregate.HallOfFameEntry, error) {
	query, args, err := qb.Select("*").From("aggregated_hall_of_fame").
		OrderBy("category", "rank", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select hall of fame query: %w", err)
	}

	var rows []hallOfFameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select hall of fame: %w", err)
	}

	out := make([]aggregate.HallOfFameEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, aggregate.HallOfFameEntry{
			Category: aggregate.HallOfFameCategory(row.Category),
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Value:    row.Value,
			Rank:     row.Rank,
		})
	}
	return out, nil
}

func (r *AllTimeRepository) Replace(ctx context.Context, rows []aggregate.AllTimeRow, entries []aggregate.HallOfFameEntry, invalidatedAt time.Time) error {
	return inReplaceTx(ctx, r.db, r.txTimeout, "replace all-time stats", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "aggregated_all_time_stats"); err != nil {
			return err
		}
		if err := clearTable(ctx, tx, "aggregated_hall_of_fame"); err != nil {
			return err
		}

		for _, row := range rows {
			model := allTimeStatsTableModel{PlayerID: row.PlayerID, Name: row.Name}
			statLineToColumns(&model, row.Stats)
			query, args, err := qb.InsertModel("aggregated_all_time_stats", model, "")
			if err != nil {
				return errors.Wrap(err, "build insert all-time stats query")
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "insert all-time stats player=%s", row.PlayerID)
			}
		}

		for _, entry := range entries {
			model := hallOfFameTableModel{
				Category: string(entry.Category),
				PlayerID: entry.PlayerID,
				Name:     entry.Name,
				Value:    entry.Value,
				Rank:     entry.Rank,
			}
			query, args, err := qb.InsertModel("aggregated_hall_of_fame", model, "")
			if err != nil {
				return errors.Wrap(err, "build insert hall of fame query")
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "insert hall of fame player=%s category=%s", entry.PlayerID, entry.Category)
			}
		}

		if err := stampCache(ctx, tx, aggregate.KeyAllTimeStats, invalidatedAt); err != nil {
			return err
		}
		return stampCache(ctx, tx, aggregate.KeyHallOfFame, invalidatedAt)
	})
}
