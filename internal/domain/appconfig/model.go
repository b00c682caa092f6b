package appconfig

import (
	"context"
	"strconv"
	"strings"

	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// Keys in the app_config table. Every consumer tolerates a missing or
// malformed value by falling back to the documented default, with a warning
// logged so misconfiguration stays observable.
const (
	KeyWinPoints                 = "win_points"
	KeyDrawPoints                = "draw_points"
	KeyLossPoints                = "loss_points"
	KeyHeavyWinPoints            = "heavy_win_points"
	KeyCleanSheetWinPoints       = "clean_sheet_win_points"
	KeyHeavyCleanSheetWinPoints  = "heavy_clean_sheet_win_points"
	KeyCleanSheetDrawPoints      = "clean_sheet_draw_points"
	KeyHeavyLossPoints           = "heavy_loss_points"
	KeyStreakThreshold           = "streak_threshold"
	KeyGameMilestoneThreshold    = "game_milestone_threshold"
	KeyGoalMilestoneThreshold    = "goal_milestone_threshold"
	KeyHallOfFameMinGames        = "hall_of_fame_min_games"
	KeyLeaderboardLimit          = "leaderboard_limit"
	KeyHonoursMinGames           = "season_honours_min_games"
	KeyMatchDurationMinutes      = "match_duration_minutes"
	KeyCurrentStreakWindow       = "current_streak_window"
	KeyRecentFormMatches         = "recent_form_matches"
	KeySeasonRecomputeWindowDays = "season_recompute_window_days"
)

// FantasyWeights are the per-outcome point values for the fantasy formula.
type FantasyWeights struct {
	Win                int
	Draw               int
	Loss               int
	HeavyWin           int
	CleanSheetWin      int
	HeavyCleanSheetWin int
	CleanSheetDraw     int
	HeavyLoss          int
}

// Settings is the typed view of the key/value configuration store, loaded
// fresh at the start of every aggregation run.
type Settings struct {
	Fantasy                   FantasyWeights
	StreakThreshold           int
	GameMilestoneThreshold    int
	GoalMilestoneThreshold    int
	HallOfFameMinGames        int
	LeaderboardLimit          int
	HonoursMinGames           int
	MatchDurationMinutes      int
	CurrentStreakWindow       int
	RecentFormMatches         int
	SeasonRecomputeWindowDays int
}

func DefaultSettings() Settings {
	return Settings{
		Fantasy: FantasyWeights{
			Win:                20,
			Draw:               10,
			Loss:               -10,
			HeavyWin:           30,
			CleanSheetWin:      30,
			HeavyCleanSheetWin: 40,
			CleanSheetDraw:     20,
			HeavyLoss:          -20,
		},
		StreakThreshold:           3,
		GameMilestoneThreshold:    50,
		GoalMilestoneThreshold:    50,
		HallOfFameMinGames:        50,
		LeaderboardLimit:          10,
		HonoursMinGames:           10,
		MatchDurationMinutes:      60,
		CurrentStreakWindow:       20,
		RecentFormMatches:         5,
		SeasonRecomputeWindowDays: 14,
	}
}

// FromValues builds Settings from raw key/value rows. Absent or non-numeric
// keys fall back to defaults and are logged, never fatal.
func FromValues(ctx context.Context, values map[string]string, logger *logging.Logger) Settings {
	if logger == nil {
		logger = logging.Default()
	}

	s := DefaultSettings()
	read := func(key string, target *int) {
		raw, ok := values[key]
		if !ok {
			logger.WarnContext(ctx, "config key missing, using default", "config_key", key, "default", *target)
			return
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			logger.WarnContext(ctx, "config value not numeric, using default",
				"config_key", key, "config_value", raw, "default", *target)
			return
		}
		*target = parsed
	}

	read(KeyWinPoints, &s.Fantasy.Win)
	read(KeyDrawPoints, &s.Fantasy.Draw)
	read(KeyLossPoints, &s.Fantasy.Loss)
	read(KeyHeavyWinPoints, &s.Fantasy.HeavyWin)
	read(KeyCleanSheetWinPoints, &s.Fantasy.CleanSheetWin)
	read(KeyHeavyCleanSheetWinPoints, &s.Fantasy.HeavyCleanSheetWin)
	read(KeyCleanSheetDrawPoints, &s.Fantasy.CleanSheetDraw)
	read(KeyHeavyLossPoints, &s.Fantasy.HeavyLoss)
	read(KeyStreakThreshold, &s.StreakThreshold)
	read(KeyGameMilestoneThreshold, &s.GameMilestoneThreshold)
	read(KeyGoalMilestoneThreshold, &s.GoalMilestoneThreshold)
	read(KeyHallOfFameMinGames, &s.HallOfFameMinGames)
	read(KeyLeaderboardLimit, &s.LeaderboardLimit)
	read(KeyHonoursMinGames, &s.HonoursMinGames)
	read(KeyMatchDurationMinutes, &s.MatchDurationMinutes)
	read(KeyCurrentStreakWindow, &s.CurrentStreakWindow)
	read(KeyRecentFormMatches, &s.RecentFormMatches)
	read(KeySeasonRecomputeWindowDays, &s.SeasonRecomputeWindowDays)

	return s
}
