package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/domain/stats"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// AllTimeStatsService rebuilds the lifetime leaderboard table and the hall
// of fame boards derived from it.
type AllTimeStatsService struct {
	configRepo  appconfig.Repository
	playerRepo  player.Repository
	matchRepo   match.Repository
	allTimeRepo aggregate.AllTimeRepository
	logger      *logging.Logger
	now         func() time.Time
}

func NewAllTimeStatsService(
	configRepo appconfig.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	allTimeRepo aggregate.AllTimeRepository,
	logger *logging.Logger,
) *AllTimeStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AllTimeStatsService{
		configRepo:  configRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		allTimeRepo: allTimeRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Recalculate recomputes every player's lifetime line from the raw facts
// and swaps the derived tables wholesale. Retired players stay in, ringers
// never appear.
func (s *AllTimeStatsService) Recalculate(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "AllTimeStatsService.Recalculate")
	defer span.End()

	settings, err := appconfig.Load(ctx, s.configRepo, s.logger)
	if err != nil {
		return err
	}

	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		if p.CountsForAggregates() {
			names[p.ID] = p.Name
		}
	}

	facts, err := s.matchRepo.ListPlayerMatches(ctx, match.Filter{IncludeRetired: true})
	if err != nil {
		return fmt.Errorf("list player matches: %w", err)
	}
	histories := groupByPlayer(ctx, facts, s.logger)

	rows := make([]aggregate.AllTimeRow, 0, len(histories))
	for _, playerID := range sortedPlayerIDs(histories) {
		name, ok := names[playerID]
		if !ok {
			continue
		}
		rows = append(rows, aggregate.AllTimeRow{
			PlayerID: playerID,
			Name:     name,
			Stats:    buildStatLine(histories[playerID], settings),
		})
	}

	entries := buildHallOfFame(rows, settings)

	if err := s.allTimeRepo.Replace(ctx, rows, entries, s.now()); err != nil {
		return fmt.Errorf("replace all-time stats: %w", err)
	}

	s.logger.InfoContext(ctx, "all-time stats rebuilt",
		"players", len(rows), "hallOfFameEntries", len(entries))
	return nil
}

// buildHallOfFame ranks the lifetime lines into the three hall of fame
// boards. Goals and fantasy totals are whole numbers; win percentage keeps
// its fixed-point scaling so ties compare exactly.
func buildHallOfFame(rows []aggregate.AllTimeRow, settings appconfig.Settings) []aggregate.HallOfFameEntry {
	boards := []struct {
		category aggregate.HallOfFameCategory
		value    func(aggregate.StatLine) int64
	}{
		{aggregate.HallOfFameMostGoals, func(l aggregate.StatLine) int64 { return int64(l.Goals) }},
		{aggregate.HallOfFameBestWinPct, func(l aggregate.StatLine) int64 { return l.WinPercentage }},
		{aggregate.HallOfFameMostFantasy, func(l aggregate.StatLine) int64 { return int64(l.FantasyPoints) }},
	}

	var entries []aggregate.HallOfFameEntry
	for _, board := range boards {
		candidates := make([]stats.RankEntry, 0, len(rows))
		for _, row := range rows {
			candidates = append(candidates, stats.RankEntry{
				PlayerID:    row.PlayerID,
				Name:        row.Name,
				GamesPlayed: row.Stats.GamesPlayed,
				Value:       board.value(row.Stats),
				HasValue:    true,
			})
		}
		for _, ranked := range stats.DenseRank(candidates, settings.HallOfFameMinGames, settings.LeaderboardLimit) {
			entries = append(entries, aggregate.HallOfFameEntry{
				Category: board.category,
				PlayerID: ranked.PlayerID,
				Name:     ranked.Name,
				Value:    ranked.Value,
				Rank:     ranked.Rank,
			})
		}
	}
	return entries
}
