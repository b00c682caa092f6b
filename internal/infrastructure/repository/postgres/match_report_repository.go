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

// MatchReportRepository owns the single-row report table and the current
// streaks table.
type MatchReportRepository struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

func NewMatchReportRepository(db *sqlx.DB, txTimeout time.Duration) *MatchReportRepository {
	return &MatchReportRepository{db: db, txTimeout: txTimeout}
}

func (r *MatchReportRepository) Get(ctx context.Context) (aggregate.MatchReport, bool, error) {
	query, args, err := qb.Select("*").From("aggregated_match_report").Limit(1).ToSQL()
	if err != nil {
		return aggregate.MatchReport{}, false, fmt.Errorf("build select match report query: %w", err)
	}

	var row matchReportTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return aggregate.MatchReport{}, false, nil
		}
		return aggregate.MatchReport{}, false, fmt.Errorf("select match report: %w", err)
	}

	report, err := matchReportFromModel(row)
	if err != nil {
		return aggregate.MatchReport{}, false, err
	}
	return report, true, nil
}

func (r *MatchReportRepository) ListCurrentStreaks(ctx context.Context) ([]aggregate.CurrentStreaksRow, error) {
	query, args, err := qb.Select("*").From("aggregated_current_streaks").
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select current streaks query: %w", err)
	}

	var rows []currentStreaksTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select current streaks: %w", err)
	}

	out := make([]aggregate.CurrentStreaksRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, aggregate.CurrentStreaksRow{
			PlayerID:             row.PlayerID,
			Name:                 row.Name,
			WinStreak:            row.WinStreak,
			LossStreak:           row.LossStreak,
			UnbeatenStreak:       row.UnbeatenStreak,
			WinlessStreak:        row.WinlessStreak,
			ScoringStreak:        row.ScoringStreak,
			GoalsInScoringStreak: row.GoalsInScoringStreak,
		})
	}
	return out, nil
}

func (r *MatchReportRepository) Replace(ctx context.Context, report aggregate.MatchReport, streaks []aggregate.CurrentStreaksRow, invalidatedAt time.Time) error {
	model, err := matchReportToModel(report)
	if err != nil {
		return err
	}

	return inReplaceTx(ctx, r.db, r.txTimeout, "replace match report", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "aggregated_match_report"); err != nil {
			return err
		}
		if err := clearTable(ctx, tx, "aggregated_current_streaks"); err != nil {
			return err
		}

		query, args, err := qb.InsertModel("aggregated_match_report", model, "")
		if err != nil {
			return errors.Wrap(err, "build insert match report query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert match report match=%s", report.MatchID)
		}

		for _, streak := range streaks {
			streakModel := currentStreaksTableModel{
				PlayerID:             streak.PlayerID,
				Name:                 streak.Name,
				WinStreak:            streak.WinStreak,
				LossStreak:           streak.LossStreak,
				UnbeatenStreak:       streak.UnbeatenStreak,
				WinlessStreak:        streak.WinlessStreak,
				ScoringStreak:        streak.ScoringStreak,
				GoalsInScoringStreak: streak.GoalsInScoringStreak,
			}
			query, args, err := qb.InsertModel("aggregated_current_streaks", streakModel, "")
			if err != nil {
				return errors.Wrap(err, "build insert current streaks query")
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "insert current streaks player=%s", streak.PlayerID)
			}
		}

		if err := stampCache(ctx, tx, aggregate.KeyMatchReport, invalidatedAt); err != nil {
			return err
		}
		return stampCache(ctx, tx, aggregate.KeyCurrentStreaks, invalidatedAt)
	})
}
