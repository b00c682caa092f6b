package memory

import (
	"time"

	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
)

// Dev-mode seed data: a small league with enough history to light up every
// aggregate screen, including a retired player and a ringer.

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-ana", Name: "Ana Silva"},
		{ID: "pl-ben", Name: "Ben Carter"},
		{ID: "pl-cal", Name: "Callum Reid"},
		{ID: "pl-dan", Name: "Dani Moreno"},
		{ID: "pl-eli", Name: "Eli Novak"},
		{ID: "pl-fra", Name: "Fran Duke"},
		{ID: "pl-gus", Name: "Gus Webb"},
		{ID: "pl-hol", Name: "Holly Nash"},
		{ID: "pl-ivy", Name: "Ivy Lang", IsRetired: true},
		{ID: "pl-zed", Name: "Zed (ringer)", IsRinger: true},
	}
}

func SeedConfig() map[string]string {
	return map[string]string{
		appconfig.KeyWinPoints:             "20",
		appconfig.KeyDrawPoints:            "10",
		appconfig.KeyLossPoints:            "-10",
		appconfig.KeyHeavyWinPoints:        "30",
		appconfig.KeyCleanSheetWinPoints:   "30",
		appconfig.KeyHeavyCleanSheetWinPoints: "40",
		appconfig.KeyCleanSheetDrawPoints:  "20",
		appconfig.KeyHeavyLossPoints:       "-20",
		appconfig.KeyStreakThreshold:       "3",
		appconfig.KeyGameMilestoneThreshold: "50",
		appconfig.KeyGoalMilestoneThreshold: "50",
		appconfig.KeyHallOfFameMinGames:    "5",
		appconfig.KeyLeaderboardLimit:      "10",
		appconfig.KeyHonoursMinGames:       "3",
	}
}

// SeedMatches returns a season and a half of Tuesday fixtures.
func SeedMatches() ([]match.Match, []match.Participation) {
	type fixture struct {
		id     string
		date   time.Time
		scoreA int
		scoreB int
		teamA  []string
		teamB  []string
		goals  map[string]int
	}

	base := time.Date(2024, time.September, 3, 19, 0, 0, 0, time.UTC)
	fixtures := []fixture{
		{
			id: "mt-001", date: base, scoreA: 5, scoreB: 1,
			teamA: []string{"pl-ana", "pl-ben", "pl-cal", "pl-dan", "pl-eli"},
			teamB: []string{"pl-fra", "pl-gus", "pl-hol", "pl-ivy", "pl-zed"},
			goals: map[string]int{"pl-ana": 3, "pl-ben": 2, "pl-gus": 1},
		},
		{
			id: "mt-002", date: base.AddDate(0, 0, 7), scoreA: 2, scoreB: 2,
			teamA: []string{"pl-ana", "pl-cal", "pl-fra", "pl-hol", "pl-ivy"},
			teamB: []string{"pl-ben", "pl-dan", "pl-eli", "pl-gus", "pl-zed"},
			goals: map[string]int{"pl-ana": 1, "pl-fra": 1, "pl-eli": 2},
		},
		{
			id: "mt-003", date: base.AddDate(0, 0, 14), scoreA: 1, scoreB: 4,
			teamA: []string{"pl-ben", "pl-cal", "pl-gus", "pl-hol", "pl-zed"},
			teamB: []string{"pl-ana", "pl-dan", "pl-eli", "pl-fra", "pl-ivy"},
			goals: map[string]int{"pl-ben": 1, "pl-ana": 2, "pl-dan": 1, "pl-fra": 1},
		},
		{
			id: "mt-004", date: base.AddDate(0, 3, 0), scoreA: 3, scoreB: 0,
			teamA: []string{"pl-ana", "pl-ben", "pl-eli", "pl-gus", "pl-hol"},
			teamB: []string{"pl-cal", "pl-dan", "pl-fra", "pl-ivy", "pl-zed"},
			goals: map[string]int{"pl-ana": 1, "pl-eli": 1, "pl-hol": 1},
		},
		{
			id: "mt-005", date: base.AddDate(0, 6, 0), scoreA: 2, scoreB: 3,
			teamA: []string{"pl-ana", "pl-cal", "pl-eli", "pl-hol", "pl-zed"},
			teamB: []string{"pl-ben", "pl-dan", "pl-fra", "pl-gus", "pl-ivy"},
			goals: map[string]int{"pl-ana": 2, "pl-ben": 2, "pl-gus": 1},
		},
	}

	var (
		matches        []match.Match
		participations []match.Participation
	)
	for _, f := range fixtures {
		matches = append(matches, match.Match{
			ID:         f.id,
			Date:       f.date,
			TeamAScore: f.scoreA,
			TeamBScore: f.scoreB,
		})
		participations = append(participations, seedParticipations(f.id, f.date, match.TeamA, f.teamA, f.scoreA, f.scoreB, f.goals)...)
		participations = append(participations, seedParticipations(f.id, f.date, match.TeamB, f.teamB, f.scoreB, f.scoreA, f.goals)...)
	}
	return matches, participations
}

func seedParticipations(matchID string, date time.Time, team match.Team, playerIDs []string, scoreFor, scoreAgainst int, goals map[string]int) []match.Participation {
	result := match.ResultDraw
	switch {
	case scoreFor > scoreAgainst:
		result = match.ResultWin
	case scoreFor < scoreAgainst:
		result = match.ResultLoss
	}
	margin := scoreFor - scoreAgainst

	out := make([]match.Participation, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		out = append(out, match.Participation{
			MatchID:    matchID,
			PlayerID:   playerID,
			Team:       team,
			Goals:      goals[playerID],
			Result:     result,
			HeavyWin:   margin >= 3,
			HeavyLoss:  margin <= -3,
			CleanSheet: scoreAgainst == 0,
			UpdatedAt:  date,
		})
	}
	return out
}
