package match

import (
	"context"
	"time"
)

// Filter narrows fact reads. Zero value means all non-ringer history.
type Filter struct {
	From           *time.Time
	To             *time.Time
	PlayerIDs      []string
	IncludeRetired bool
}

// Repository is the read-only fact store. Aggregation never mutates raw
// match history.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	GetLatest(ctx context.Context) (Match, bool, error)
	// ListPlayerMatches returns joined fact rows for non-ringer players,
	// ordered by player id then match date ascending.
	ListPlayerMatches(ctx context.Context, f Filter) ([]PlayerMatch, error)
	ListParticipations(ctx context.Context, matchID string) ([]Participation, error)
	// LastParticipationUpdate reports the most recent updated_at among
	// participation rows whose match falls in the given calendar year.
	LastParticipationUpdate(ctx context.Context, year int) (time.Time, bool, error)
}
