package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/matchvault/fiveaside/internal/platform/querybuilder"
)

type AppConfigRepository struct {
	db *sqlx.DB
}

func NewAppConfigRepository(db *sqlx.DB) *AppConfigRepository {
	return &AppConfigRepository{db: db}
}

type appConfigTableModel struct {
	Key   string `db:"config_key"`
	Value string `db:"config_value"`
}

func (r *AppConfigRepository) GetAll(ctx context.Context) (map[string]string, error) {
	query, args, err := qb.Select("config_key", "config_value").From("app_config").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select app config query: %w", err)
	}

	var rows []appConfigTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select app config: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}
