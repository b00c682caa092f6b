package stats

import (
	"sort"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/match"
)

// Predicate evaluates one boolean condition over a single match. Each streak
// type is computed independently; a player can hold a winning streak and a
// scoring streak at the same time.
type Predicate func(m match.PlayerMatch) bool

func Scored(m match.PlayerMatch) bool   { return m.Goals > 0 }
func Won(m match.PlayerMatch) bool      { return m.Won() }
func Lost(m match.PlayerMatch) bool     { return m.Lost() }
func Unbeaten(m match.PlayerMatch) bool { return !m.Lost() }
func Winless(m match.PlayerMatch) bool  { return !m.Won() }

// StreakType names the tracked streak categories.
type StreakType string

const (
	StreakWin      StreakType = "win"
	StreakLoss     StreakType = "loss"
	StreakUnbeaten StreakType = "unbeaten"
	StreakWinless  StreakType = "winless"
	StreakScoring  StreakType = "scoring"
)

// PredicateFor returns the predicate backing a streak type.
func PredicateFor(t StreakType) Predicate {
	switch t {
	case StreakWin:
		return Won
	case StreakLoss:
		return Lost
	case StreakUnbeaten:
		return Unbeaten
	case StreakWinless:
		return Winless
	case StreakScoring:
		return Scored
	default:
		return func(match.PlayerMatch) bool { return false }
	}
}

// Span is a closed run of consecutive matches satisfying a predicate.
type Span struct {
	Length int
	Start  time.Time
	End    time.Time
}

// LongestStreak finds the best run in a chronologically ascending history.
// Single forward pass; the run still open at the final match is compared
// once more after the loop.
func LongestStreak(history []match.PlayerMatch, pred Predicate) Span {
	best := Span{}
	run := Span{}

	for _, m := range history {
		if !pred(m) {
			if run.Length > best.Length {
				best = run
			}
			run = Span{}
			continue
		}
		if run.Length == 0 {
			run.Start = m.Date
		}
		run.Length++
		run.End = m.Date
	}
	if run.Length > best.Length {
		best = run
	}

	return best
}

// CurrentStreak counts how many of the most recent matches satisfy the
// predicate, scanning backward and stopping at the first failure. window
// bounds the scan; values <= 0 fall back to 20.
func CurrentStreak(history []match.PlayerMatch, pred Predicate, window int) int {
	if window <= 0 {
		window = 20
	}

	count := 0
	for i := len(history) - 1; i >= 0 && count < window; i-- {
		if !pred(history[i]) {
			break
		}
		count++
	}
	return count
}

// CurrentScoringStreak is CurrentStreak for the scored predicate, also
// totalling goals inside the open streak.
func CurrentScoringStreak(history []match.PlayerMatch, window int) (length, goals int) {
	if window <= 0 {
		window = 20
	}

	for i := len(history) - 1; i >= 0 && length < window; i-- {
		if history[i].Goals <= 0 {
			break
		}
		length++
		goals += history[i].Goals
	}
	return length, goals
}

// StreakHolder is one player's share of a streak record.
type StreakHolder struct {
	PlayerID string
	Name     string
	Length   int
	Start    time.Time
	End      time.Time
}

// BestStreaks keeps every player tied on the longest streak of the given
// predicate. minLength disqualifies short runs from being records at all;
// pass 1 (or less) for streak types with no qualifying floor.
func BestStreaks(histories map[string][]match.PlayerMatch, names map[string]string, pred Predicate, minLength int) []StreakHolder {
	if minLength < 1 {
		minLength = 1
	}

	best := 0
	spans := make(map[string]Span, len(histories))
	for playerID, history := range histories {
		span := LongestStreak(history, pred)
		if span.Length < minLength {
			continue
		}
		spans[playerID] = span
		if span.Length > best {
			best = span.Length
		}
	}
	if best == 0 {
		return nil
	}

	holders := make([]StreakHolder, 0, 1)
	for playerID, span := range spans {
		if span.Length != best {
			continue
		}
		holders = append(holders, StreakHolder{
			PlayerID: playerID,
			Name:     names[playerID],
			Length:   span.Length,
			Start:    span.Start,
			End:      span.End,
		})
	}
	sort.SliceStable(holders, func(i, j int) bool {
		return holders[i].PlayerID < holders[j].PlayerID
	})
	return holders
}
