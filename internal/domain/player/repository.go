package player

import "context"

type Repository interface {
	ListAll(ctx context.Context) ([]Player, error)
	ListCurrent(ctx context.Context) ([]Player, error)
	// ListCurrentPage returns current players ordered by id, starting after
	// afterID. Used for cursor-paged batch jobs.
	ListCurrentPage(ctx context.Context, afterID string, limit int) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
