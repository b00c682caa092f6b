package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

type RecentFormRepository struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

func NewRecentFormRepository(db *sqlx.DB, txTimeout time.Duration) *RecentFormRepository {
	return &RecentFormRepository{db: db, txTimeout: txTimeout}
}

type recentFormTableModel struct {
	PlayerID string `db:"player_id"`
	Name     string `db:"name"`
	Matches  []byte `db:"matches"`
}

func (r *RecentFormRepository) GetByPlayer(ctx context.Context, playerID string) (aggregate.RecentFormRow, bool, error) {
	query, args, err := qb.Select("*").From("aggregated_recent_performance").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return aggregate.RecentFormRow{}, false, fmt.Errorf("build select recent form query: %w", err)
	}

	var row recentFormTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return aggregate.RecentFormRow{}, false, nil
		}
		return aggregate.RecentFormRow{}, false, fmt.Errorf("select recent form %s: %w", playerID, err)
	}

	out := aggregate.RecentFormRow{PlayerID: row.PlayerID, Name: row.Name}
	if err := sonic.Unmarshal(row.Matches, &out.Matches); err != nil {
		return aggregate.RecentFormRow{}, false, errors.Wrapf(err, "unmarshal recent form %s", playerID)
	}
	return out, true, nil
}

func (r *RecentFormRepository) Replace(ctx context.Context, rows []aggregate.RecentFormRow, invalidatedAt time.Time) error {
	return inReplaceTx(ctx, r.db, r.txTimeout, "replace recent form", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "aggregated_recent_performance"); err != nil {
			return err
		}

		for _, row := range rows {
			model := recentFormTableModel{PlayerID: row.PlayerID, Name: row.Name}
			var err error
			if model.Matches, err = sonic.Marshal(row.Matches); err != nil {
				return errors.Wrapf(err, "marshal recent form player=%s", row.PlayerID)
			}
			query, args, err := qb.InsertModel("aggregated_recent_performance", model, "")
			if err != nil {
				return errors.Wrap(err, "build insert recent form query")
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "insert recent form player=%s", row.PlayerID)
			}
		}

		return stampCache(ctx, tx, aggregate.KeyRecentPerformance, invalidatedAt)
	})
}
