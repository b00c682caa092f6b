package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/domain/stats"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// HonoursService rebuilds the per-season honours board (closed years only)
// and the all-time records sheet.
type HonoursService struct {
	configRepo  appconfig.Repository
	playerRepo  player.Repository
	matchRepo   match.Repository
	honoursRepo aggregate.HonoursRepository
	logger      *logging.Logger
	now         func() time.Time
}

func NewHonoursService(
	configRepo appconfig.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	honoursRepo aggregate.HonoursRepository,
	logger *logging.Logger,
) *HonoursService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HonoursService{
		configRepo:  configRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		honoursRepo: honoursRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *HonoursService) Recalculate(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "HonoursService.Recalculate")
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
		s.logger.InfoContext(ctx, "no match history, honours tables left empty")
		return nil
	}
	histories := groupByPlayer(ctx, facts, s.logger)

	honours := s.buildHonours(ctx, facts, names, settings)
	records := s.buildRecords(ctx, facts, histories, names, settings)

	if err := s.honoursRepo.Replace(ctx, honours, records, s.now()); err != nil {
		return fmt.Errorf("replace honours: %w", err)
	}

	s.logger.InfoContext(ctx, "honours rebuilt",
		"seasons", len(honours), "goalRecordHolders", len(records.MostGoalsInGame))
	return nil
}

// buildHonours awards the fantasy and top-scorer podiums for every finished
// calendar year. The in-progress year never gets a row.
func (s *HonoursService) buildHonours(ctx context.Context, facts []match.PlayerMatch, names map[string]string, settings appconfig.Settings) []aggregate.HonourSeason {
	type totals struct {
		games, goals, points int
	}
	byYear := make(map[int]map[string]*totals)
	for _, pm := range facts {
		if pm.Date.IsZero() {
			continue
		}
		if _, ok := names[pm.PlayerID]; !ok {
			continue
		}
		year := pm.Date.Year()
		if byYear[year] == nil {
			byYear[year] = make(map[string]*totals)
		}
		t := byYear[year][pm.PlayerID]
		if t == nil {
			t = &totals{}
			byYear[year][pm.PlayerID] = t
		}
		t.games++
		t.goals += pm.Goals
		t.points += stats.FantasyPoints(pm.Outcome(), settings.Fantasy)
	}

	currentYear := s.now().Year()
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		if year < currentYear {
			years = append(years, year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	honours := make([]aggregate.HonourSeason, 0, len(years))
	for _, year := range years {
		playerTotals := byYear[year]
		points := make(map[string]int, len(playerTotals))
		goals := make(map[string]int, len(playerTotals))
		for playerID, t := range playerTotals {
			if t.games < settings.HonoursMinGames {
				continue
			}
			points[playerID] = t.points
			goals[playerID] = t.goals
		}
		winners := buildPodium(points, names)
		scorers := buildPodium(goals, names)
		if winners.Winner == "" && scorers.Winner == "" {
			s.logger.DebugContext(ctx, "no qualifying players for season honours", "year", year)
			continue
		}
		honours = append(honours, aggregate.HonourSeason{
			Year:          year,
			SeasonWinners: winners,
			TopScorers:    scorers,
		})
	}
	return honours
}

// buildPodium turns per-player totals into winner, runners-up and third
// place. The top value group's first player (ascending id) is the winner;
// anyone tied with the winner joins the runners-up, and distinct value
// groups fill the remaining steps.
func buildPodium(totals map[string]int, names map[string]string) aggregate.Podium {
	type entry struct {
		playerID string
		value    int
	}
	entries := make([]entry, 0, len(totals))
	for playerID, value := range totals {
		entries = append(entries, entry{playerID: playerID, value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].playerID < entries[j].playerID
	})
	if len(entries) == 0 {
		return aggregate.Podium{}
	}

	var groups [][]entry
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1][0].value == e.value {
			groups[n-1] = append(groups[n-1], e)
		} else {
			groups = append(groups, []entry{e})
		}
	}

	podium := aggregate.Podium{
		Winner:      names[groups[0][0].playerID],
		WinnerValue: groups[0][0].value,
	}
	for _, e := range groups[0][1:] {
		podium.RunnersUp = append(podium.RunnersUp, names[e.playerID])
	}
	next := 1
	if len(podium.RunnersUp) == 0 && len(groups) > next {
		for _, e := range groups[next] {
			podium.RunnersUp = append(podium.RunnersUp, names[e.playerID])
		}
		next++
	}
	if len(groups) > next {
		for _, e := range groups[next] {
			podium.Third = append(podium.Third, names[e.playerID])
		}
	}
	return podium
}

// buildRecords computes the all-time records sheet. Every record keeps all
// tied holders.
func (s *HonoursService) buildRecords(ctx context.Context, facts []match.PlayerMatch, histories map[string][]match.PlayerMatch, names map[string]string, settings appconfig.Settings) aggregate.Records {
	records := aggregate.Records{
		Streaks: make(map[stats.StreakType][]stats.StreakHolder),
	}

	bestGoals := 0
	for _, pm := range facts {
		if pm.Goals > bestGoals {
			bestGoals = pm.Goals
		}
	}
	if bestGoals > 0 {
		for _, pm := range facts {
			if pm.Goals == bestGoals {
				records.MostGoalsInGame = append(records.MostGoalsInGame, aggregate.GoalsRecord{
					PlayerID:  pm.PlayerID,
					Name:      names[pm.PlayerID],
					Goals:     pm.Goals,
					MatchDate: pm.Date,
				})
			}
		}
		sort.Slice(records.MostGoalsInGame, func(i, j int) bool {
			a, b := records.MostGoalsInGame[i], records.MostGoalsInGame[j]
			if !a.MatchDate.Equal(b.MatchDate) {
				return a.MatchDate.Before(b.MatchDate)
			}
			return a.PlayerID < b.PlayerID
		})
	}

	records.BiggestVictory = s.biggestVictories(ctx, facts, names)

	for _, streakType := range []stats.StreakType{
		stats.StreakWin, stats.StreakLoss, stats.StreakUnbeaten, stats.StreakWinless, stats.StreakScoring,
	} {
		minLength := settings.StreakThreshold
		if streakType == stats.StreakScoring {
			minLength = 1
		}
		holders := stats.BestStreaks(histories, names, stats.PredicateFor(streakType), minLength)
		if len(holders) > 0 {
			records.Streaks[streakType] = holders
		}
	}

	return records
}

// biggestVictories reconstructs per-match scorelines from the fact rows and
// keeps every match tied on the largest winning margin.
func (s *HonoursService) biggestVictories(ctx context.Context, facts []match.PlayerMatch, names map[string]string) []aggregate.VictoryRecord {
	type matchView struct {
		date         time.Time
		winningTeam  match.Team
		winnerScore  int
		loserScore   int
		participants []match.PlayerMatch
	}
	matches := make(map[string]*matchView)
	for _, pm := range facts {
		mv := matches[pm.MatchID]
		if mv == nil {
			mv = &matchView{date: pm.Date}
			matches[pm.MatchID] = mv
		}
		mv.participants = append(mv.participants, pm)
		if pm.Won() {
			mv.winningTeam = pm.Team
			mv.winnerScore = pm.ScoreFor
			mv.loserScore = pm.ScoreAgainst
		}
	}

	bestMargin := 0
	for _, mv := range matches {
		if margin := mv.winnerScore - mv.loserScore; margin > bestMargin {
			bestMargin = margin
		}
	}
	if bestMargin == 0 {
		return nil
	}

	var out []aggregate.VictoryRecord
	for matchID, mv := range matches {
		margin := mv.winnerScore - mv.loserScore
		if margin != bestMargin {
			continue
		}
		out = append(out, aggregate.VictoryRecord{
			MatchID:     matchID,
			MatchDate:   mv.date,
			WinningTeam: mv.winningTeam,
			WinnerScore: mv.winnerScore,
			LoserScore:  mv.loserScore,
			Margin:      margin,
			Scorers:     formatFactScorers(mv.participants, names),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out
}

// formatFactScorers renders all scorers of a match as "Ana (3), Ben",
// goals descending.
func formatFactScorers(participants []match.PlayerMatch, names map[string]string) string {
	type scorer struct {
		name  string
		goals int
	}
	var scorers []scorer
	for _, pm := range participants {
		if pm.Goals <= 0 {
			continue
		}
		name := names[pm.PlayerID]
		if name == "" {
			name = pm.PlayerID
		}
		scorers = append(scorers, scorer{name: name, goals: pm.Goals})
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].goals != scorers[j].goals {
			return scorers[i].goals > scorers[j].goals
		}
		return scorers[i].name < scorers[j].name
	})

	out := ""
	for i, sc := range scorers {
		if i > 0 {
			out += ", "
		}
		if sc.goals == 1 {
			out += sc.name
		} else {
			out += fmt.Sprintf("%s (%d)", sc.name, sc.goals)
		}
	}
	return out
}
