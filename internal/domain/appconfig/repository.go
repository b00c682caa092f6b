package appconfig

import (
	"context"
	"fmt"

	"github.com/matchvault/fiveaside/internal/platform/logging"
)

type Repository interface {
	GetAll(ctx context.Context) (map[string]string, error)
}

// Load fetches the raw key/value rows and types them. Orchestrators call
// this at the start of every run; there is no long-lived settings cache.
func Load(ctx context.Context, repo Repository, logger *logging.Logger) (Settings, error) {
	values, err := repo.GetAll(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("load app config: %w", err)
	}
	return FromValues(ctx, values, logger), nil
}
