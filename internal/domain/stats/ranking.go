package stats

import "sort"

// MetricScale is the fixed-point multiplier for fractional metrics. Ranking
// compares scaled int64 values so tie detection never relies on float
// equality; 100 keeps two decimal places.
const MetricScale = 100

// RankEntry is one candidate for a ranked board. Value is fixed-point
// scaled; HasValue=false marks a null metric (e.g. minutes-per-goal with
// zero goals), which is never ranked.
type RankEntry struct {
	PlayerID    string
	Name        string
	GamesPlayed int
	Value       int64
	HasValue    bool
}

// Ranked is a leaderboard row with its dense competition rank.
type Ranked struct {
	PlayerID string
	Name     string
	Value    int64
	Rank     int
}

// DenseRank filters to entries meeting the games floor, sorts descending by
// value and assigns dense competition ranks: tied entries share a rank and
// the next distinct value skips ahead by the tie-group size (1,1,3 not
// 1,1,2). The board is cut at limit positions, so a tie group straddling
// the boundary is split and the entries past the cutoff are dropped.
func DenseRank(entries []RankEntry, minGames, limit int) []Ranked {
	eligible := make([]RankEntry, 0, len(entries))
	for _, e := range entries {
		if !e.HasValue || e.GamesPlayed < minGames {
			continue
		}
		eligible = append(eligible, e)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Value != eligible[j].Value {
			return eligible[i].Value > eligible[j].Value
		}
		return eligible[i].PlayerID < eligible[j].PlayerID
	})

	out := make([]Ranked, 0, len(eligible))
	rank := 0
	tieSize := 0
	var lastValue int64
	for idx, e := range eligible {
		if limit > 0 && len(out) == limit {
			break
		}
		switch {
		case idx == 0:
			rank = 1
			tieSize = 1
			lastValue = e.Value
		case e.Value == lastValue:
			tieSize++
		default:
			rank += tieSize
			tieSize = 1
			lastValue = e.Value
		}

		out = append(out, Ranked{
			PlayerID: e.PlayerID,
			Name:     e.Name,
			Value:    e.Value,
			Rank:     rank,
		})
	}

	return out
}
