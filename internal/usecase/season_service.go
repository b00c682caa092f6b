package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// SeasonStatsService rebuilds the half-season table for the current year
// and the full-season table for every year that still needs it. Closed
// years whose facts have not moved recently are left untouched.
type SeasonStatsService struct {
	configRepo appconfig.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	seasonRepo aggregate.SeasonRepository
	logger     *logging.Logger
	now        func() time.Time
}

func NewSeasonStatsService(
	configRepo appconfig.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	seasonRepo aggregate.SeasonRepository,
	logger *logging.Logger,
) *SeasonStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonStatsService{
		configRepo: configRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		seasonRepo: seasonRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SeasonStatsService) Recalculate(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "SeasonStatsService.Recalculate")
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
	if len(facts) == 0 {
		s.logger.InfoContext(ctx, "no match history, season tables left empty")
		return nil
	}

	now := s.now()
	currentYear := now.Year()

	halfRows := s.buildHalfSeasonRows(ctx, facts, names, settings, currentYear)
	if err := s.seasonRepo.ReplaceHalfSeason(ctx, halfRows, now); err != nil {
		return fmt.Errorf("replace half-season stats: %w", err)
	}

	firstYear := facts[0].Date.Year()
	for _, pm := range facts {
		if y := pm.Date.Year(); !pm.Date.IsZero() && y < firstYear {
			firstYear = y
		}
	}

	var years []int
	for year := firstYear; year <= currentYear; year++ {
		recompute := year == currentYear
		if !recompute {
			lastModified, hasRows, err := s.matchRepo.LastParticipationUpdate(ctx, year)
			if err != nil {
				return fmt.Errorf("check participation updates for %d: %w", year, err)
			}
			recompute = needsRecompute(lastModified, hasRows, now, settings.SeasonRecomputeWindowDays)
		}
		if recompute {
			years = append(years, year)
		} else {
			s.logger.DebugContext(ctx, "season unchanged, skipping recompute", "year", year)
		}
	}

	var rows []aggregate.SeasonRow
	for _, year := range years {
		rows = append(rows, s.buildSeasonRows(ctx, facts, names, settings, year)...)
	}
	if err := s.seasonRepo.ReplaceSeasons(ctx, years, rows, now); err != nil {
		return fmt.Errorf("replace season stats: %w", err)
	}

	s.logger.InfoContext(ctx, "season stats rebuilt",
		"halfSeasonRows", len(halfRows), "seasonsRecomputed", len(years), "seasonRows", len(rows))
	return nil
}

// buildHalfSeasonRows computes both calendar halves of the given year.
// A half with no matches yields no rows.
func (s *SeasonStatsService) buildHalfSeasonRows(ctx context.Context, facts []match.PlayerMatch, names map[string]string, settings appconfig.Settings, year int) []aggregate.SeasonRow {
	var rows []aggregate.SeasonRow
	for half := 1; half <= 2; half++ {
		start, end := halfBounds(year, half)
		rows = append(rows, s.buildWindowRows(ctx, facts, names, settings, year, half, start, end)...)
	}
	return rows
}

func (s *SeasonStatsService) buildSeasonRows(ctx context.Context, facts []match.PlayerMatch, names map[string]string, settings appconfig.Settings, year int) []aggregate.SeasonRow {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.buildWindowRows(ctx, facts, names, settings, year, 0, start, end)
}

func (s *SeasonStatsService) buildWindowRows(ctx context.Context, facts []match.PlayerMatch, names map[string]string, settings appconfig.Settings, year, half int, start, end time.Time) []aggregate.SeasonRow {
	windowed := make([]match.PlayerMatch, 0, len(facts))
	for _, pm := range facts {
		if !pm.Date.Before(start) && pm.Date.Before(end) {
			windowed = append(windowed, pm)
		}
	}
	histories := groupByPlayer(ctx, windowed, s.logger)

	rows := make([]aggregate.SeasonRow, 0, len(histories))
	for _, playerID := range sortedPlayerIDs(histories) {
		name, ok := names[playerID]
		if !ok {
			continue
		}
		rows = append(rows, aggregate.SeasonRow{
			PlayerID:    playerID,
			Name:        name,
			Year:        year,
			Half:        half,
			PeriodStart: start,
			PeriodEnd:   end,
			Stats:       buildStatLine(histories[playerID], settings),
		})
	}
	return rows
}

// halfBounds returns the [start, end) window of a calendar half.
func halfBounds(year, half int) (time.Time, time.Time) {
	if half == 1 {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// needsRecompute decides whether a closed season's table is stale. A year
// with no participation rows has nothing to rebuild; otherwise any fact
// touched inside the lookback window forces a recompute.
func needsRecompute(lastModified time.Time, hasRows bool, now time.Time, windowDays int) bool {
	if !hasRows {
		return false
	}
	if windowDays <= 0 {
		windowDays = 14
	}
	return !lastModified.Before(now.AddDate(0, 0, -windowDays))
}
