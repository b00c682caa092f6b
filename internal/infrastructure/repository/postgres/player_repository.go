package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchvault/fiveaside/internal/domain/player"
	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListCurrent(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("is_ringer", false),
			qb.Eq("is_retired", false),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select current players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select current players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListCurrentPage(ctx context.Context, afterID string, limit int) ([]player.Player, error) {
	builder := qb.Select("*").From("players").
		Where(
			qb.Eq("is_ringer", false),
			qb.Eq("is_retired", false),
			qb.Expr("id > ?", afterID),
		).
		OrderBy("id").
		Limit(limit)
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player page query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player page: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player %s: %w", playerID, err)
	}
	return playerFromRow(row), true, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.ID,
		Name:      row.Name,
		IsRinger:  row.IsRinger,
		IsRetired: row.IsRetired,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
