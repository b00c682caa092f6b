package httpapi

import (
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/stats"
)

type statLineDTO struct {
	GamesPlayed          int    `json:"gamesPlayed"`
	Wins                 int    `json:"wins"`
	Draws                int    `json:"draws"`
	Losses               int    `json:"losses"`
	Goals                int    `json:"goals"`
	WinPercentage        int64  `json:"winPercentage"`
	MinutesPerGoal       *int64 `json:"minutesPerGoal"`
	HeavyWins            int    `json:"heavyWins"`
	HeavyWinPercentage   int64  `json:"heavyWinPercentage"`
	HeavyLosses          int    `json:"heavyLosses"`
	HeavyLossPercentage  int64  `json:"heavyLossPercentage"`
	CleanSheets          int    `json:"cleanSheets"`
	CleanSheetPercentage int64  `json:"cleanSheetPercentage"`
	FantasyPoints        int    `json:"fantasyPoints"`
	PointsPerGame        int64  `json:"pointsPerGame"`
}

func statLineToDTO(line aggregate.StatLine) statLineDTO {
	dto := statLineDTO{
		GamesPlayed:          line.GamesPlayed,
		Wins:                 line.Wins,
		Draws:                line.Draws,
		Losses:               line.Losses,
		Goals:                line.Goals,
		WinPercentage:        line.WinPercentage,
		HeavyWins:            line.HeavyWins,
		HeavyWinPercentage:   line.HeavyWinPercentage,
		HeavyLosses:          line.HeavyLosses,
		HeavyLossPercentage:  line.HeavyLossPercentage,
		CleanSheets:          line.CleanSheets,
		CleanSheetPercentage: line.CleanSheetPercentage,
		FantasyPoints:        line.FantasyPoints,
		PointsPerGame:        line.PointsPerGame,
	}
	if line.HasMinutesPerGoal {
		value := line.MinutesPerGoal
		dto.MinutesPerGoal = &value
	}
	return dto
}

type playerStatsDTO struct {
	PlayerID string      `json:"playerId"`
	Name     string      `json:"name"`
	Stats    statLineDTO `json:"stats"`
}

type hallOfFameEntryDTO struct {
	Category string `json:"category"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Value    int64  `json:"value"`
	Rank     int    `json:"rank"`
}

type seasonStatsDTO struct {
	PlayerID       string      `json:"playerId"`
	Name           string      `json:"name"`
	Year           int         `json:"year"`
	Half           int         `json:"half,omitempty"`
	PeriodStartUTC string      `json:"periodStartUtc"`
	PeriodEndUTC   string      `json:"periodEndUtc"`
	Stats          statLineDTO `json:"stats"`
}

func seasonRowToDTO(row aggregate.SeasonRow) seasonStatsDTO {
	return seasonStatsDTO{
		PlayerID:       row.PlayerID,
		Name:           row.Name,
		Year:           row.Year,
		Half:           row.Half,
		PeriodStartUTC: row.PeriodStart.UTC().Format(time.RFC3339),
		PeriodEndUTC:   row.PeriodEnd.UTC().Format(time.RFC3339),
		Stats:          statLineToDTO(row.Stats),
	}
}

type milestoneDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Total    int    `json:"total"`
}

func milestonesToDTO(items []stats.Milestone) []milestoneDTO {
	out := make([]milestoneDTO, 0, len(items))
	for _, m := range items {
		out = append(out, milestoneDTO{
			PlayerID: m.PlayerID,
			Name:     m.Name,
			Type:     string(m.Type),
			Total:    m.Total,
		})
	}
	return out
}

type leaderChangeDTO struct {
	Kind          string `json:"kind"`
	PreviousName  string `json:"previousName,omitempty"`
	PreviousValue int    `json:"previousValue,omitempty"`
	CurrentName   string `json:"currentName,omitempty"`
	CurrentValue  int    `json:"currentValue,omitempty"`
}

func leaderChangeToDTO(change stats.LeaderChange) leaderChangeDTO {
	return leaderChangeDTO{
		Kind:          string(change.Kind),
		PreviousName:  change.PreviousName,
		PreviousValue: change.PreviousValue,
		CurrentName:   change.CurrentName,
		CurrentValue:  change.CurrentValue,
	}
}

type matchReportDTO struct {
	MatchID        string          `json:"matchId"`
	MatchDateUTC   string          `json:"matchDateUtc"`
	TeamAScore     int             `json:"teamAScore"`
	TeamBScore     int             `json:"teamBScore"`
	TeamAPlayers   []string        `json:"teamAPlayers"`
	TeamBPlayers   []string        `json:"teamBPlayers"`
	TeamAScorers   string          `json:"teamAScorers"`
	TeamBScorers   string          `json:"teamBScorers"`
	GameMilestones []milestoneDTO  `json:"gameMilestones"`
	GoalMilestones []milestoneDTO  `json:"goalMilestones"`
	LeaderChanges  leaderBoardsDTO `json:"leaderChanges"`
}

type leaderBoardsDTO struct {
	HalfSeasonGoals   leaderChangeDTO `json:"halfSeasonGoals"`
	HalfSeasonFantasy leaderChangeDTO `json:"halfSeasonFantasy"`
	SeasonGoals       leaderChangeDTO `json:"seasonGoals"`
	SeasonFantasy     leaderChangeDTO `json:"seasonFantasy"`
}

func matchReportToDTO(report aggregate.MatchReport) matchReportDTO {
	return matchReportDTO{
		MatchID:        report.MatchID,
		MatchDateUTC:   report.MatchDate.UTC().Format(time.RFC3339),
		TeamAScore:     report.TeamAScore,
		TeamBScore:     report.TeamBScore,
		TeamAPlayers:   report.TeamAPlayers,
		TeamBPlayers:   report.TeamBPlayers,
		TeamAScorers:   report.TeamAScorers,
		TeamBScorers:   report.TeamBScorers,
		GameMilestones: milestonesToDTO(report.GameMilestones),
		GoalMilestones: milestonesToDTO(report.GoalMilestones),
		LeaderChanges: leaderBoardsDTO{
			HalfSeasonGoals:   leaderChangeToDTO(report.HalfSeasonGoalLeaders),
			HalfSeasonFantasy: leaderChangeToDTO(report.HalfSeasonFantasyLeaders),
			SeasonGoals:       leaderChangeToDTO(report.SeasonGoalLeaders),
			SeasonFantasy:     leaderChangeToDTO(report.SeasonFantasyLeaders),
		},
	}
}

type currentStreaksDTO struct {
	PlayerID             string `json:"playerId"`
	Name                 string `json:"name"`
	WinStreak            int    `json:"winStreak"`
	LossStreak           int    `json:"lossStreak"`
	UnbeatenStreak       int    `json:"unbeatenStreak"`
	WinlessStreak        int    `json:"winlessStreak"`
	ScoringStreak        int    `json:"scoringStreak"`
	GoalsInScoringStreak int    `json:"goalsInScoringStreak"`
}

type podiumDTO struct {
	Winner      string   `json:"winner"`
	WinnerValue int      `json:"winnerValue"`
	RunnersUp   []string `json:"runnersUp,omitempty"`
	Third       []string `json:"third,omitempty"`
}

type honourSeasonDTO struct {
	Year          int       `json:"year"`
	SeasonWinners podiumDTO `json:"seasonWinners"`
	TopScorers    podiumDTO `json:"topScorers"`
}

func honourSeasonToDTO(item aggregate.HonourSeason) honourSeasonDTO {
	return honourSeasonDTO{
		Year:          item.Year,
		SeasonWinners: podiumDTO(item.SeasonWinners),
		TopScorers:    podiumDTO(item.TopScorers),
	}
}

type goalsRecordDTO struct {
	PlayerID     string `json:"playerId"`
	Name         string `json:"name"`
	Goals        int    `json:"goals"`
	MatchDateUTC string `json:"matchDateUtc"`
}

type victoryRecordDTO struct {
	MatchID      string `json:"matchId"`
	MatchDateUTC string `json:"matchDateUtc"`
	WinningTeam  string `json:"winningTeam"`
	WinnerScore  int    `json:"winnerScore"`
	LoserScore   int    `json:"loserScore"`
	Margin       int    `json:"margin"`
	Scorers      string `json:"scorers"`
}

type streakHolderDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Length   int    `json:"length"`
	StartUTC string `json:"startUtc"`
	EndUTC   string `json:"endUtc"`
}

type recordsDTO struct {
	MostGoalsInGame []goalsRecordDTO             `json:"mostGoalsInGame"`
	BiggestVictory  []victoryRecordDTO           `json:"biggestVictory"`
	Streaks         map[string][]streakHolderDTO `json:"streaks"`
}

func recordsToDTO(records aggregate.Records) recordsDTO {
	goals := make([]goalsRecordDTO, 0, len(records.MostGoalsInGame))
	for _, r := range records.MostGoalsInGame {
		goals = append(goals, goalsRecordDTO{
			PlayerID:     r.PlayerID,
			Name:         r.Name,
			Goals:        r.Goals,
			MatchDateUTC: r.MatchDate.UTC().Format(time.RFC3339),
		})
	}

	victories := make([]victoryRecordDTO, 0, len(records.BiggestVictory))
	for _, r := range records.BiggestVictory {
		victories = append(victories, victoryRecordDTO{
			MatchID:      r.MatchID,
			MatchDateUTC: r.MatchDate.UTC().Format(time.RFC3339),
			WinningTeam:  string(r.WinningTeam),
			WinnerScore:  r.WinnerScore,
			LoserScore:   r.LoserScore,
			Margin:       r.Margin,
			Scorers:      r.Scorers,
		})
	}

	streaks := make(map[string][]streakHolderDTO, len(records.Streaks))
	for streakType, holders := range records.Streaks {
		items := make([]streakHolderDTO, 0, len(holders))
		for _, h := range holders {
			items = append(items, streakHolderDTO{
				PlayerID: h.PlayerID,
				Name:     h.Name,
				Length:   h.Length,
				StartUTC: h.Start.UTC().Format(time.RFC3339),
				EndUTC:   h.End.UTC().Format(time.RFC3339),
			})
		}
		streaks[string(streakType)] = items
	}

	return recordsDTO{
		MostGoalsInGame: goals,
		BiggestVictory:  victories,
		Streaks:         streaks,
	}
}

type formMatchDTO struct {
	MatchID      string `json:"matchId"`
	DateUTC      string `json:"dateUtc"`
	Goals        int    `json:"goals"`
	Result       string `json:"result"`
	ScoreFor     int    `json:"scoreFor"`
	ScoreAgainst int    `json:"scoreAgainst"`
	HeavyWin     bool   `json:"heavyWin"`
	HeavyLoss    bool   `json:"heavyLoss"`
	CleanSheet   bool   `json:"cleanSheet"`
}

type recentFormDTO struct {
	PlayerID string         `json:"playerId"`
	Name     string         `json:"name"`
	Matches  []formMatchDTO `json:"matches"`
}

func recentFormToDTO(row aggregate.RecentFormRow) recentFormDTO {
	matches := make([]formMatchDTO, 0, len(row.Matches))
	for _, m := range row.Matches {
		matches = append(matches, formMatchDTO{
			MatchID:      m.MatchID,
			DateUTC:      m.Date.UTC().Format(time.RFC3339),
			Goals:        m.Goals,
			Result:       string(m.Result),
			ScoreFor:     m.ScoreFor,
			ScoreAgainst: m.ScoreAgainst,
			HeavyWin:     m.HeavyWin,
			HeavyLoss:    m.HeavyLoss,
			CleanSheet:   m.CleanSheet,
		})
	}
	return recentFormDTO{PlayerID: row.PlayerID, Name: row.Name, Matches: matches}
}

type cacheMetadataDTO struct {
	Key                string `json:"key"`
	LastInvalidatedUTC string `json:"lastInvalidatedUtc"`
	DependencyType     string `json:"dependencyType"`
}
