package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/domain/stats"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// MatchReportService rebuilds the single-row latest-match report and the
// current streaks table in one transactional swap.
type MatchReportService struct {
	configRepo appconfig.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	reportRepo aggregate.MatchReportRepository
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchReportService(
	configRepo appconfig.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	reportRepo aggregate.MatchReportRepository,
	logger *logging.Logger,
) *MatchReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchReportService{
		configRepo: configRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		reportRepo: reportRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Rebuild regenerates the report for the given match. An empty matchID
// means the most recently recorded match.
func (s *MatchReportService) Rebuild(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "MatchReportService.Rebuild")
	defer span.End()

	settings, err := appconfig.Load(ctx, s.configRepo, s.logger)
	if err != nil {
		return err
	}

	var (
		m  match.Match
		ok bool
	)
	if matchID == "" {
		m, ok, err = s.matchRepo.GetLatest(ctx)
	} else {
		m, ok, err = s.matchRepo.GetByID(ctx, matchID)
	}
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return fmt.Errorf("match %q: %w", matchID, ErrNotFound)
	}

	participations, err := s.matchRepo.ListParticipations(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list participations: %w", err)
	}

	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	names := make(map[string]string, len(players))
	current := make(map[string]bool, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
		current[p.ID] = p.IsCurrent()
	}

	facts, err := s.matchRepo.ListPlayerMatches(ctx, match.Filter{IncludeRetired: true})
	if err != nil {
		return fmt.Errorf("list player matches: %w", err)
	}
	histories := groupByPlayer(ctx, facts, s.logger)

	report := aggregate.MatchReport{
		MatchID:    m.ID,
		MatchDate:  m.Date,
		TeamAScore: m.TeamAScore,
		TeamBScore: m.TeamBScore,
		Config:     settings,
	}
	s.fillRosters(&report, participations, names)
	s.fillMilestones(&report, participations, histories, names, settings)
	s.fillLeaderChanges(&report, histories, names, settings, m.Date)

	streaks := s.buildCurrentStreaks(histories, names, current, settings)

	if err := s.reportRepo.Replace(ctx, report, streaks, s.now()); err != nil {
		return fmt.Errorf("replace match report: %w", err)
	}

	s.logger.InfoContext(ctx, "match report rebuilt",
		"matchId", m.ID, "participants", len(participations), "streakRows", len(streaks))
	return nil
}

func (s *MatchReportService) fillRosters(report *aggregate.MatchReport, participations []match.Participation, names map[string]string) {
	for _, p := range participations {
		name := names[p.PlayerID]
		if name == "" {
			name = p.PlayerID
		}
		if p.Team == match.TeamA {
			report.TeamAPlayers = append(report.TeamAPlayers, name)
		} else {
			report.TeamBPlayers = append(report.TeamBPlayers, name)
		}
	}
	sort.Strings(report.TeamAPlayers)
	sort.Strings(report.TeamBPlayers)
	report.TeamAScorers = formatScorers(participations, names, match.TeamA)
	report.TeamBScorers = formatScorers(participations, names, match.TeamB)
}

// formatScorers renders one team's scorer list as "Ana (3), Ben". A single
// goal omits the count.
func formatScorers(participations []match.Participation, names map[string]string, team match.Team) string {
	type scorer struct {
		name  string
		goals int
	}
	scorers := make([]scorer, 0, len(participations))
	for _, p := range participations {
		if p.Team != team || p.Goals <= 0 {
			continue
		}
		name := names[p.PlayerID]
		if name == "" {
			name = p.PlayerID
		}
		scorers = append(scorers, scorer{name: name, goals: p.Goals})
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].goals != scorers[j].goals {
			return scorers[i].goals > scorers[j].goals
		}
		return scorers[i].name < scorers[j].name
	})

	parts := make([]string, 0, len(scorers))
	for _, sc := range scorers {
		if sc.goals == 1 {
			parts = append(parts, sc.name)
		} else {
			parts = append(parts, fmt.Sprintf("%s (%d)", sc.name, sc.goals))
		}
	}
	return strings.Join(parts, ", ")
}

// fillMilestones checks career totals for this match's participants only.
// A milestone fires when the total landed exactly on a multiple of the
// configured threshold.
func (s *MatchReportService) fillMilestones(report *aggregate.MatchReport, participations []match.Participation, histories map[string][]match.PlayerMatch, names map[string]string, settings appconfig.Settings) {
	ordered := make([]string, 0, len(participations))
	for _, p := range participations {
		ordered = append(ordered, p.PlayerID)
	}
	sort.Strings(ordered)

	for _, playerID := range ordered {
		history := histories[playerID]
		games := len(history)
		goals := 0
		for _, pm := range history {
			goals += pm.Goals
		}
		if stats.IsMilestone(games, settings.GameMilestoneThreshold) {
			report.GameMilestones = append(report.GameMilestones, stats.Milestone{
				PlayerID: playerID,
				Name:     names[playerID],
				Type:     stats.MilestoneGames,
				Total:    games,
			})
		}
		if stats.IsMilestone(goals, settings.GoalMilestoneThreshold) {
			report.GoalMilestones = append(report.GoalMilestones, stats.Milestone{
				PlayerID: playerID,
				Name:     names[playerID],
				Type:     stats.MilestoneGoals,
				Total:    goals,
			})
		}
	}
}

// fillLeaderChanges compares the goal and fantasy leaders before and after
// the match, for both the season and half-season windows.
func (s *MatchReportService) fillLeaderChanges(report *aggregate.MatchReport, histories map[string][]match.PlayerMatch, names map[string]string, settings appconfig.Settings, matchDate time.Time) {
	seasonStart := time.Date(matchDate.Year(), time.January, 1, 0, 0, 0, 0, matchDate.Location())
	half := 1
	if matchDate.Month() >= time.July {
		half = 2
	}
	halfStart, _ := halfBounds(matchDate.Year(), half)

	after := endOfDay(matchDate)
	before := after.AddDate(0, 0, -1)

	goals := func(pm match.PlayerMatch) int { return pm.Goals }
	fantasy := func(pm match.PlayerMatch) int { return stats.FantasyPoints(pm.Outcome(), settings.Fantasy) }

	report.SeasonGoalLeaders = stats.ClassifyLeaderChange(
		s.leaderAt(histories, names, seasonStart, before, goals),
		s.leaderAt(histories, names, seasonStart, after, goals),
	)
	report.SeasonFantasyLeaders = stats.ClassifyLeaderChange(
		s.leaderAt(histories, names, seasonStart, before, fantasy),
		s.leaderAt(histories, names, seasonStart, after, fantasy),
	)
	report.HalfSeasonGoalLeaders = stats.ClassifyLeaderChange(
		s.leaderAt(histories, names, halfStart, before, goals),
		s.leaderAt(histories, names, halfStart, after, goals),
	)
	report.HalfSeasonFantasyLeaders = stats.ClassifyLeaderChange(
		s.leaderAt(histories, names, halfStart, before, fantasy),
		s.leaderAt(histories, names, halfStart, after, fantasy),
	)
}

// leaderAt finds the top player for a metric summed over [start, cutoff].
// Ties keep the first player in ascending id order. Nil means nobody has a
// positive total yet.
func (s *MatchReportService) leaderAt(histories map[string][]match.PlayerMatch, names map[string]string, start, cutoff time.Time, metric func(match.PlayerMatch) int) *stats.Leader {
	var leader *stats.Leader
	for _, playerID := range sortedPlayerIDs(histories) {
		total := 0
		for _, pm := range histories[playerID] {
			if pm.Date.Before(start) || pm.Date.After(cutoff) {
				continue
			}
			total += metric(pm)
		}
		if total <= 0 {
			continue
		}
		if leader == nil || total > leader.Value {
			leader = &stats.Leader{PlayerID: playerID, Name: names[playerID], Value: total}
		}
	}
	return leader
}

// buildCurrentStreaks snapshots the open streaks of every current player
// with at least one match, bounded by the configured lookback window.
func (s *MatchReportService) buildCurrentStreaks(histories map[string][]match.PlayerMatch, names map[string]string, current map[string]bool, settings appconfig.Settings) []aggregate.CurrentStreaksRow {
	var rows []aggregate.CurrentStreaksRow
	for _, playerID := range sortedPlayerIDs(histories) {
		if !current[playerID] || len(histories[playerID]) == 0 {
			continue
		}
		history := histories[playerID]
		window := settings.CurrentStreakWindow
		scoringLen, scoringGoals := stats.CurrentScoringStreak(history, window)
		rows = append(rows, aggregate.CurrentStreaksRow{
			PlayerID:             playerID,
			Name:                 names[playerID],
			WinStreak:            stats.CurrentStreak(history, stats.Won, window),
			LossStreak:           stats.CurrentStreak(history, stats.Lost, window),
			UnbeatenStreak:       stats.CurrentStreak(history, stats.Unbeaten, window),
			WinlessStreak:        stats.CurrentStreak(history, stats.Winless, window),
			ScoringStreak:        scoringLen,
			GoalsInScoringStreak: scoringGoals,
		})
	}
	return rows
}
