package aggregate

import (
	"context"
	"time"
)

// Replace methods swap a derived table's full contents and stamp the
// corresponding cache_metadata row inside one transaction, so readers see
// either the fully-old or fully-new state.

type AllTimeRepository interface {
	ListStats(ctx context.Context) ([]AllTimeRow, error)
	ListHallOfFame(ctx context.Context) ([]HallOfFameEntry, error)
	Replace(ctx context.Context, rows []AllTimeRow, entries []HallOfFameEntry, invalidatedAt time.Time) error
}

type SeasonRepository interface {
	ListHalfSeason(ctx context.Context) ([]SeasonRow, error)
	ListSeasons(ctx context.Context) ([]SeasonRow, error)
	ReplaceHalfSeason(ctx context.Context, rows []SeasonRow, invalidatedAt time.Time) error
	// ReplaceSeasons swaps rows for the given years only; untouched years
	// keep their existing rows (the skip optimization for closed seasons).
	ReplaceSeasons(ctx context.Context, years []int, rows []SeasonRow, invalidatedAt time.Time) error
}

type MatchReportRepository interface {
	Get(ctx context.Context) (MatchReport, bool, error)
	ListCurrentStreaks(ctx context.Context) ([]CurrentStreaksRow, error)
	Replace(ctx context.Context, report MatchReport, streaks []CurrentStreaksRow, invalidatedAt time.Time) error
}

type HonoursRepository interface {
	ListHonours(ctx context.Context) ([]HonourSeason, error)
	GetRecords(ctx context.Context) (Records, bool, error)
	Replace(ctx context.Context, honours []HonourSeason, records Records, invalidatedAt time.Time) error
}

type RecentFormRepository interface {
	GetByPlayer(ctx context.Context, playerID string) (RecentFormRow, bool, error)
	Replace(ctx context.Context, rows []RecentFormRow, invalidatedAt time.Time) error
}

type CacheMetadataRepository interface {
	List(ctx context.Context) ([]CacheMetadata, error)
	Upsert(ctx context.Context, key string, invalidatedAt time.Time, dependencyType string) error
}
