package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
)

// MatchRepository serves fact reads from seeded slices. The ringer and
// retired filters need the roster, so it is seeded alongside the matches.
type MatchRepository struct {
	mu             sync.RWMutex
	matches        map[string]match.Match
	participations map[string][]match.Participation
	facts          []match.PlayerMatch
	roster         map[string]player.Player
}

func NewMatchRepository(players []player.Player, matches []match.Match, participations []match.Participation) *MatchRepository {
	r := &MatchRepository{
		matches:        make(map[string]match.Match, len(matches)),
		participations: make(map[string][]match.Participation),
		roster:         make(map[string]player.Player, len(players)),
	}
	for _, p := range players {
		r.roster[p.ID] = p
	}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	for _, part := range participations {
		r.participations[part.MatchID] = append(r.participations[part.MatchID], part)
		m := r.matches[part.MatchID]
		scoreFor, scoreAgainst := m.TeamAScore, m.TeamBScore
		if part.Team == match.TeamB {
			scoreFor, scoreAgainst = scoreAgainst, scoreFor
		}
		r.facts = append(r.facts, match.PlayerMatch{
			MatchID:      part.MatchID,
			PlayerID:     part.PlayerID,
			Date:         m.Date,
			Team:         part.Team,
			Goals:        part.Goals,
			Result:       part.Result,
			HeavyWin:     part.HeavyWin,
			HeavyLoss:    part.HeavyLoss,
			CleanSheet:   part.CleanSheet,
			ScoreFor:     scoreFor,
			ScoreAgainst: scoreAgainst,
		})
	}
	sort.SliceStable(r.facts, func(i, j int) bool {
		if r.facts[i].PlayerID != r.facts[j].PlayerID {
			return r.facts[i].PlayerID < r.facts[j].PlayerID
		}
		return r.facts[i].Date.Before(r.facts[j].Date)
	})
	return r
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	return m, ok, nil
}

func (r *MatchRepository) GetLatest(context.Context) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest match.Match
		found  bool
	)
	for _, m := range r.matches {
		if !found || m.Date.After(latest.Date) {
			latest = m
			found = true
		}
	}
	return latest, found, nil
}

func (r *MatchRepository) ListPlayerMatches(_ context.Context, f match.Filter) ([]match.PlayerMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(f.PlayerIDs))
	for _, id := range f.PlayerIDs {
		wanted[id] = true
	}

	var out []match.PlayerMatch
	for _, pm := range r.facts {
		p, ok := r.roster[pm.PlayerID]
		if !ok || p.IsRinger {
			continue
		}
		if !f.IncludeRetired && p.IsRetired {
			continue
		}
		if len(wanted) > 0 && !wanted[pm.PlayerID] {
			continue
		}
		if f.From != nil && pm.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && pm.Date.After(*f.To) {
			continue
		}
		out = append(out, pm)
	}
	return out, nil
}

func (r *MatchRepository) ListParticipations(_ context.Context, matchID string) ([]match.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := r.participations[matchID]
	out := make([]match.Participation, 0, len(parts))
	out = append(out, parts...)
	return out, nil
}

func (r *MatchRepository) LastParticipationUpdate(_ context.Context, year int) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		last  time.Time
		found bool
	)
	for matchID, parts := range r.participations {
		m := r.matches[matchID]
		if m.Date.Year() != year {
			continue
		}
		for _, part := range parts {
			found = true
			if part.UpdatedAt.After(last) {
				last = part.UpdatedAt
			}
		}
	}
	return last, found, nil
}
