package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/platform/cache"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// readCachePrefix namespaces the read-through cache entries so a rebuild can
// drop them all without touching unrelated keys.
const readCachePrefix = "stats:"

// StatsQueryService serves the derived tables to the API with a read-through
// cache in front of the repositories. Writers never go through here.
type StatsQueryService struct {
	allTimeRepo  aggregate.AllTimeRepository
	seasonRepo   aggregate.SeasonRepository
	reportRepo   aggregate.MatchReportRepository
	honoursRepo  aggregate.HonoursRepository
	formRepo     aggregate.RecentFormRepository
	metadataRepo aggregate.CacheMetadataRepository
	cache        *cache.Store
	logger       *logging.Logger
}

func NewStatsQueryService(
	allTimeRepo aggregate.AllTimeRepository,
	seasonRepo aggregate.SeasonRepository,
	reportRepo aggregate.MatchReportRepository,
	honoursRepo aggregate.HonoursRepository,
	formRepo aggregate.RecentFormRepository,
	metadataRepo aggregate.CacheMetadataRepository,
	store *cache.Store,
	logger *logging.Logger,
) *StatsQueryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsQueryService{
		allTimeRepo:  allTimeRepo,
		seasonRepo:   seasonRepo,
		reportRepo:   reportRepo,
		honoursRepo:  honoursRepo,
		formRepo:     formRepo,
		metadataRepo: metadataRepo,
		cache:        store,
		logger:       logger,
	}
}

func (s *StatsQueryService) AllTimeStats(ctx context.Context) ([]aggregate.AllTimeRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.AllTimeStats")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeyAllTimeStats, func(ctx context.Context) ([]aggregate.AllTimeRow, error) {
		return s.allTimeRepo.ListStats(ctx)
	})
}

func (s *StatsQueryService) HallOfFame(ctx context.Context) ([]aggregate.HallOfFameEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.HallOfFame")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeyHallOfFame, func(ctx context.Context) ([]aggregate.HallOfFameEntry, error) {
		return s.allTimeRepo.ListHallOfFame(ctx)
	})
}

func (s *StatsQueryService) HalfSeasonStats(ctx context.Context) ([]aggregate.SeasonRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.HalfSeasonStats")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeyHalfSeasonStats, func(ctx context.Context) ([]aggregate.SeasonRow, error) {
		return s.seasonRepo.ListHalfSeason(ctx)
	})
}

func (s *StatsQueryService) SeasonStats(ctx context.Context) ([]aggregate.SeasonRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.SeasonStats")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeySeasonStats, func(ctx context.Context) ([]aggregate.SeasonRow, error) {
		return s.seasonRepo.ListSeasons(ctx)
	})
}

func (s *StatsQueryService) MatchReport(ctx context.Context) (aggregate.MatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.MatchReport")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeyMatchReport, func(ctx context.Context) (aggregate.MatchReport, error) {
		report, found, err := s.reportRepo.Get(ctx)
		if err != nil {
			return aggregate.MatchReport{}, err
		}
		if !found {
			return aggregate.MatchReport{}, fmt.Errorf("match report: %w", ErrNotFound)
		}
		return report, nil
	})
}

func (s *StatsQueryService) CurrentStreaks(ctx context.Context) ([]aggregate.CurrentStreaksRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.CurrentStreaks")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeyCurrentStreaks, func(ctx context.Context) ([]aggregate.CurrentStreaksRow, error) {
		return s.reportRepo.ListCurrentStreaks(ctx)
	})
}

func (s *StatsQueryService) Honours(ctx context.Context) ([]aggregate.HonourSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.Honours")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeySeasonHonours, func(ctx context.Context) ([]aggregate.HonourSeason, error) {
		return s.honoursRepo.ListHonours(ctx)
	})
}

func (s *StatsQueryService) Records(ctx context.Context) (aggregate.Records, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.Records")
	defer span.End()

	return queryCached(ctx, s.cache, aggregate.KeyRecords, func(ctx context.Context) (aggregate.Records, error) {
		records, found, err := s.honoursRepo.GetRecords(ctx)
		if err != nil {
			return aggregate.Records{}, err
		}
		if !found {
			return aggregate.Records{}, fmt.Errorf("records: %w", ErrNotFound)
		}
		return records, nil
	})
}

func (s *StatsQueryService) RecentForm(ctx context.Context, playerID string) (aggregate.RecentFormRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.RecentForm")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return aggregate.RecentFormRow{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	key := aggregate.KeyRecentPerformance + ":" + playerID
	return queryCachedKey(ctx, s.cache, key, aggregate.KeyRecentPerformance, func(ctx context.Context) (aggregate.RecentFormRow, error) {
		row, found, err := s.formRepo.GetByPlayer(ctx, playerID)
		if err != nil {
			return aggregate.RecentFormRow{}, err
		}
		if !found {
			return aggregate.RecentFormRow{}, fmt.Errorf("recent form for player %q: %w", playerID, ErrNotFound)
		}
		return row, nil
	})
}

// CacheMetadata reports the freshness stamps; it is never cached itself
// because stale freshness data defeats the point.
func (s *StatsQueryService) CacheMetadata(ctx context.Context) ([]aggregate.CacheMetadata, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.CacheMetadata")
	defer span.End()

	items, err := s.metadataRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cache metadata: %w", err)
	}
	return items, nil
}

// Invalidate drops every read-through cache entry. Called after the derived
// tables have been rebuilt so the next read sees the new data immediately.
func (s *StatsQueryService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, readCachePrefix)
	s.logger.InfoContext(ctx, "read cache invalidated")
}

func queryCached[T any](ctx context.Context, store *cache.Store, key string, loader func(context.Context) (T, error)) (T, error) {
	return queryCachedKey(ctx, store, key, key, loader)
}

func queryCachedKey[T any](ctx context.Context, store *cache.Store, key, dependencyKey string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if store == nil {
		return loader(ctx)
	}

	value, err := store.GetOrLoad(ctx, readCachePrefix+key, aggregate.DependencyTypeFor(dependencyKey), func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %q holds %T", key, value)
	}
	return typed, nil
}
