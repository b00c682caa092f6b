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

// HonoursRepository owns the season honours table and the single-row
// records document.
type HonoursRepository struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

func NewHonoursRepository(db *sqlx.DB, txTimeout time.Duration) *HonoursRepository {
	return &HonoursRepository{db: db, txTimeout: txTimeout}
}

type honourSeasonTableModel struct {
	Year          int    `db:"year"`
	SeasonWinners []byte `db:"season_winners"`
	TopScorers    []byte `db:"top_scorers"`
}

type recordsTableModel struct {
	Document []byte `db:"document"`
}

func (r *HonoursRepository) ListHonours(ctx context.Context) ([]aggregate.HonourSeason, error) {
	query, args, err := qb.Select("*").From("aggregated_season_honours").
		OrderBy("year DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season honours query: %w", err)
	}

	var rows []honourSeasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season honours: %w", err)
	}

	out := make([]aggregate.HonourSeason, 0, len(rows))
	for _, row := range rows {
		season := aggregate.HonourSeason{Year: row.Year}
		if err := sonic.Unmarshal(row.SeasonWinners, &season.SeasonWinners); err != nil {
			return nil, errors.Wrapf(err, "unmarshal season winners year=%d", row.Year)
		}
		if err := sonic.Unmarshal(row.TopScorers, &season.TopScorers); err != nil {
			return nil, errors.Wrapf(err, "unmarshal top scorers year=%d", row.Year)
		}
		out = append(out, season)
	}
	return out, nil
}

func (r *HonoursRepository) GetRecords(ctx context.Context) (aggregate.Records, bool, error) {
	query, args, err := qb.Select("*").From("aggregated_records").Limit(1).ToSQL()
	if err != nil {
		return aggregate.Records{}, false, fmt.Errorf("build select records query: %w", err)
	}

	var row recordsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return aggregate.Records{}, false, nil
		}
		return aggregate.Records{}, false, fmt.Errorf("select records: %w", err)
	}

	var records aggregate.Records
	if err := sonic.Unmarshal(row.Document, &records); err != nil {
		return aggregate.Records{}, false, errors.Wrap(err, "unmarshal records")
	}
	return records, true, nil
}

func (r *HonoursRepository) Replace(ctx context.Context, honours []aggregate.HonourSeason, records aggregate.Records, invalidatedAt time.Time) error {
	recordsDoc, err := sonic.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "marshal records")
	}

	return inReplaceTx(ctx, r.db, r.txTimeout, "replace honours", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "aggregated_season_honours"); err != nil {
			return err
		}
		if err := clearTable(ctx, tx, "aggregated_records"); err != nil {
			return err
		}

		for _, season := range honours {
			model := honourSeasonTableModel{Year: season.Year}
			if model.SeasonWinners, err = sonic.Marshal(season.SeasonWinners); err != nil {
				return errors.Wrapf(err, "marshal season winners year=%d", season.Year)
			}
			if model.TopScorers, err = sonic.Marshal(season.TopScorers); err != nil {
				return errors.Wrapf(err, "marshal top scorers year=%d", season.Year)
			}
			query, args, err := qb.InsertModel("aggregated_season_honours", model, "")
			if err != nil {
				return errors.Wrap(err, "build insert season honours query")
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "insert season honours year=%d", season.Year)
			}
		}

		query, args, err := qb.InsertModel("aggregated_records", recordsTableModel{Document: recordsDoc}, "")
		if err != nil {
			return errors.Wrap(err, "build insert records query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "insert records")
		}

		if err := stampCache(ctx, tx, aggregate.KeySeasonHonours, invalidatedAt); err != nil {
			return err
		}
		return stampCache(ctx, tx, aggregate.KeyRecords, invalidatedAt)
	})
}
