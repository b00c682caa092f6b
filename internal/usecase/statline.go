package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/stats"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// buildStatLine folds a player's match history into cumulative totals and
// derived rates. Rates are stored as fixed-point integers scaled by
// stats.MetricScale so downstream ranking never compares floats.
func buildStatLine(history []match.PlayerMatch, settings appconfig.Settings) aggregate.StatLine {
	var line aggregate.StatLine
	for _, pm := range history {
		line.GamesPlayed++
		line.Goals += pm.Goals
		switch pm.Result {
		case match.ResultWin:
			line.Wins++
			if pm.HeavyWin {
				line.HeavyWins++
			}
		case match.ResultDraw:
			line.Draws++
		case match.ResultLoss:
			line.Losses++
			if pm.HeavyLoss {
				line.HeavyLosses++
			}
		}
		if pm.CleanSheet {
			line.CleanSheets++
		}
		line.FantasyPoints += stats.FantasyPoints(pm.Outcome(), settings.Fantasy)
	}

	if line.GamesPlayed > 0 {
		line.WinPercentage = scaledRatio(line.Wins, line.GamesPlayed)
		line.CleanSheetPercentage = scaledRatio(line.CleanSheets, line.GamesPlayed)
		line.PointsPerGame = int64(line.FantasyPoints) * stats.MetricScale / int64(line.GamesPlayed)
	}
	if line.Wins > 0 {
		line.HeavyWinPercentage = scaledRatio(line.HeavyWins, line.Wins)
	}
	if line.Losses > 0 {
		line.HeavyLossPercentage = scaledRatio(line.HeavyLosses, line.Losses)
	}
	if line.Goals > 0 {
		line.HasMinutesPerGoal = true
		line.MinutesPerGoal = int64(line.GamesPlayed) * int64(settings.MatchDurationMinutes) * stats.MetricScale / int64(line.Goals)
	}
	return line
}

// scaledRatio returns part/whole as a percentage scaled by stats.MetricScale.
func scaledRatio(part, whole int) int64 {
	return int64(part) * 100 * stats.MetricScale / int64(whole)
}

// groupByPlayer splits flat participation rows into per-player histories,
// preserving the repository's chronological ordering within each player.
// Rows with a zero match date are dropped with a warning rather than
// poisoning streak and season windows.
func groupByPlayer(ctx context.Context, rows []match.PlayerMatch, logger *logging.Logger) map[string][]match.PlayerMatch {
	grouped := make(map[string][]match.PlayerMatch)
	for _, pm := range rows {
		if pm.Date.IsZero() {
			logger.WarnContext(ctx, "skipping participation with missing match date",
				"matchId", pm.MatchID, "playerId", pm.PlayerID)
			continue
		}
		grouped[pm.PlayerID] = append(grouped[pm.PlayerID], pm)
	}
	return grouped
}

// sortedPlayerIDs returns the map keys in ascending order so rebuilds emit
// rows deterministically.
func sortedPlayerIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
