package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchvault/fiveaside/internal/domain/match"
	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

// MatchRepository reads the raw fact tables. Aggregation never writes them.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

var playerMatchSelectColumns = []string{
	"pm.match_id",
	"pm.player_id",
	"m.match_date",
	"pm.team",
	"pm.goals",
	"pm.result",
	"pm.heavy_win",
	"pm.heavy_loss",
	"pm.clean_sheet",
	"CASE WHEN pm.team = 'A' THEN m.team_a_score ELSE m.team_b_score END AS score_for",
	"CASE WHEN pm.team = 'A' THEN m.team_b_score ELSE m.team_a_score END AS score_against",
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match %s: %w", matchID, err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) GetLatest(ctx context.Context) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		OrderBy("match_date DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select latest match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select latest match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListPlayerMatches(ctx context.Context, f match.Filter) ([]match.PlayerMatch, error) {
	conditions := []qb.Condition{
		qb.Expr("pm.match_id = m.id"),
		qb.Expr("pm.player_id = p.id"),
		qb.Eq("p.is_ringer", false),
	}
	if !f.IncludeRetired {
		conditions = append(conditions, qb.Eq("p.is_retired", false))
	}
	if f.From != nil {
		conditions = append(conditions, qb.Expr("m.match_date >= ?", *f.From))
	}
	if f.To != nil {
		conditions = append(conditions, qb.Expr("m.match_date <= ?", *f.To))
	}
	if len(f.PlayerIDs) > 0 {
		ids := make([]any, 0, len(f.PlayerIDs))
		for _, id := range f.PlayerIDs {
			ids = append(ids, id)
		}
		conditions = append(conditions, qb.In("pm.player_id", ids))
	}

	query, args, err := qb.Select(playerMatchSelectColumns...).
		From("player_matches pm, matches m, players p").
		Where(conditions...).
		OrderBy("pm.player_id", "m.match_date", "pm.match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player matches query: %w", err)
	}

	var rows []playerMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player matches: %w", err)
	}

	out := make([]match.PlayerMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.PlayerMatch{
			MatchID:      row.MatchID,
			PlayerID:     row.PlayerID,
			Date:         row.MatchDate,
			Team:         match.Team(row.Team),
			Goals:        row.Goals,
			Result:       match.Result(row.Result),
			HeavyWin:     row.HeavyWin,
			HeavyLoss:    row.HeavyLoss,
			CleanSheet:   row.CleanSheet,
			ScoreFor:     row.ScoreFor,
			ScoreAgainst: row.ScoreAgainst,
		})
	}
	return out, nil
}

func (r *MatchRepository) ListParticipations(ctx context.Context, matchID string) ([]match.Participation, error) {
	query, args, err := qb.Select("*").From("player_matches").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participations query: %w", err)
	}

	var rows []participationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participations for %s: %w", matchID, err)
	}

	out := make([]match.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Participation{
			MatchID:    row.MatchID,
			PlayerID:   row.PlayerID,
			Team:       match.Team(row.Team),
			Goals:      row.Goals,
			Result:     match.Result(row.Result),
			HeavyWin:   row.HeavyWin,
			HeavyLoss:  row.HeavyLoss,
			CleanSheet: row.CleanSheet,
			UpdatedAt:  row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *MatchRepository) LastParticipationUpdate(ctx context.Context, year int) (time.Time, bool, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	query, args, err := qb.Select("MAX(pm.updated_at) AS last_updated").
		From("player_matches pm, matches m").
		Where(
			qb.Expr("pm.match_id = m.id"),
			qb.Expr("m.match_date >= ?", yearStart),
			qb.Expr("m.match_date < ?", yearEnd),
		).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build last participation update query: %w", err)
	}

	var last sql.NullTime
	if err := r.db.GetContext(ctx, &last, query, args...); err != nil {
		return time.Time{}, false, fmt.Errorf("select last participation update for %d: %w", year, err)
	}
	if !last.Valid {
		return time.Time{}, false, nil
	}
	return last.Time, true, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.ID,
		Date:       row.MatchDate,
		TeamAScore: row.TeamAScore,
		TeamBScore: row.TeamBScore,
	}
}
