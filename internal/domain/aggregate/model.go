package aggregate

import (
	"time"

	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/stats"
)

// Cache keys for the derived tables. One row in cache_metadata per key.
const (
	KeyAllTimeStats      = "all_time_stats"
	KeyHallOfFame        = "hall_of_fame"
	KeyHalfSeasonStats   = "half_season_stats"
	KeySeasonStats       = "season_stats"
	KeyMatchReport       = "match_report"
	KeyCurrentStreaks    = "current_streaks"
	KeySeasonHonours     = "season_honours"
	KeyRecords           = "records"
	KeyRecentPerformance = "recent_performance"
)

// StatLine is the shared totals-and-rates shape used by all-time and
// season tables. Percentages and per-game rates are fixed-point scaled by
// stats.MetricScale.
type StatLine struct {
	GamesPlayed          int
	Wins                 int
	Draws                int
	Losses               int
	Goals                int
	WinPercentage        int64
	MinutesPerGoal       int64
	HasMinutesPerGoal    bool
	HeavyWins            int
	HeavyWinPercentage   int64
	HeavyLosses          int
	HeavyLossPercentage  int64
	CleanSheets          int
	CleanSheetPercentage int64
	FantasyPoints        int
	PointsPerGame        int64
}

// AllTimeRow is one player's lifetime line.
type AllTimeRow struct {
	PlayerID string
	Name     string
	Stats    StatLine
}

type HallOfFameCategory string

const (
	HallOfFameMostGoals     HallOfFameCategory = "most_goals"
	HallOfFameBestWinPct    HallOfFameCategory = "best_win_percentage"
	HallOfFameMostFantasy   HallOfFameCategory = "most_fantasy_points"
)

type HallOfFameEntry struct {
	Category HallOfFameCategory
	PlayerID string
	Name     string
	Value    int64
	Rank     int
}

// SeasonRow is one player's line for a season window. Half is 1 or 2 for
// the current year's calendar halves and 0 for a full-year row.
type SeasonRow struct {
	PlayerID    string
	Name        string
	Year        int
	Half        int
	PeriodStart time.Time
	PeriodEnd   time.Time
	Stats       StatLine
}

// CurrentStreaksRow is the live streak snapshot for one player. Players
// with no qualifying matches get no row at all.
type CurrentStreaksRow struct {
	PlayerID             string
	Name                 string
	WinStreak            int
	LossStreak           int
	UnbeatenStreak       int
	WinlessStreak        int
	ScoringStreak        int
	GoalsInScoringStreak int
}

// MatchReport is the denormalized snapshot of the most recent match, rich
// enough for the report screen to render without further queries.
type MatchReport struct {
	MatchID                  string
	MatchDate                time.Time
	TeamAScore               int
	TeamBScore               int
	TeamAPlayers             []string
	TeamBPlayers             []string
	TeamAScorers             string
	TeamBScorers             string
	Config                   appconfig.Settings
	GameMilestones           []stats.Milestone
	GoalMilestones           []stats.Milestone
	HalfSeasonGoalLeaders    stats.LeaderChange
	HalfSeasonFantasyLeaders stats.LeaderChange
	SeasonGoalLeaders        stats.LeaderChange
	SeasonFantasyLeaders     stats.LeaderChange
}

// Podium holds a season honour: the winner plus everyone tied at second
// and third.
type Podium struct {
	Winner      string
	WinnerValue int
	RunnersUp   []string
	Third       []string
}

// HonourSeason is the per-closed-year honours row.
type HonourSeason struct {
	Year          int
	SeasonWinners Podium
	TopScorers    Podium
}

// GoalsRecord is one holder of the most-goals-in-a-game record.
type GoalsRecord struct {
	PlayerID  string
	Name      string
	Goals     int
	MatchDate time.Time
}

// VictoryRecord is one biggest-margin match, with its full scorer list.
type VictoryRecord struct {
	MatchID     string
	MatchDate   time.Time
	WinningTeam match.Team
	WinnerScore int
	LoserScore  int
	Margin      int
	Scorers     string
}

// Records is the all-time records sheet. Every list keeps all tied holders.
type Records struct {
	MostGoalsInGame []GoalsRecord
	BiggestVictory  []VictoryRecord
	Streaks         map[stats.StreakType][]stats.StreakHolder
}

// FormMatch is one entry of a player's recent-form snapshot, scores from
// the player's perspective.
type FormMatch struct {
	MatchID      string
	Date         time.Time
	Goals        int
	Result       match.Result
	ScoreFor     int
	ScoreAgainst int
	HeavyWin     bool
	HeavyLoss    bool
	CleanSheet   bool
}

type RecentFormRow struct {
	PlayerID string
	Name     string
	Matches  []FormMatch
}

// CacheMetadata tells downstream readers when a logical cache key was last
// rebuilt; dependency type picks the TTL policy on their side.
type CacheMetadata struct {
	Key             string
	LastInvalidated time.Time
	DependencyType  string
}

// DependencyTypeFor maps a cache key to the dependency class stamped into
// cache_metadata. The strings match the cache store's TTL buckets.
func DependencyTypeFor(key string) string {
	switch key {
	case KeyMatchReport, KeyCurrentStreaks:
		return "match_report"
	case KeyRecentPerformance:
		return "squad_selection"
	default:
		return "match_result"
	}
}
