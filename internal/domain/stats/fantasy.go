package stats

import (
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
)

// FantasyPoints scores a single match outcome. Rules are priority ordered
// and the first match wins, so a heavy clean-sheet win is scored once, not
// additively. A missing result scores zero.
//
// This is the only fantasy formula in the codebase; every aggregation run
// calls it rather than carrying its own copy.
func FantasyPoints(outcome match.Outcome, w appconfig.FantasyWeights) int {
	switch outcome.Result {
	case match.ResultWin:
		switch {
		case outcome.HeavyWin && outcome.CleanSheet:
			return w.HeavyCleanSheetWin
		case outcome.HeavyWin:
			return w.HeavyWin
		case outcome.CleanSheet:
			return w.CleanSheetWin
		default:
			return w.Win
		}
	case match.ResultDraw:
		if outcome.CleanSheet {
			return w.CleanSheetDraw
		}
		return w.Draw
	case match.ResultLoss:
		if outcome.HeavyLoss {
			return w.HeavyLoss
		}
		return w.Loss
	default:
		return 0
	}
}
