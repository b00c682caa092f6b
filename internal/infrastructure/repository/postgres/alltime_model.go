package postgres

import (
	"database/sql"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
)

type allTimeStatsTableModel struct {
	PlayerID             string        `db:"player_id"`
	Name                 string        `db:"name"`
	GamesPlayed          int           `db:"games_played"`
	Wins                 int           `db:"wins"`
	Draws                int           `db:"draws"`
	Losses               int           `db:"losses"`
	Goals                int           `db:"goals"`
	WinPercentage        int64         `db:"win_percentage"`
	MinutesPerGoal       sql.NullInt64 `db:"minutes_per_goal"`
	HeavyWins            int           `db:"heavy_wins"`
	HeavyWinPercentage   int64         `db:"heavy_win_percentage"`
	HeavyLosses          int           `db:"heavy_losses"`
	HeavyLossPercentage  int64         `db:"heavy_loss_percentage"`
	CleanSheets          int           `db:"clean_sheets"`
	CleanSheetPercentage int64         `db:"clean_sheet_percentage"`
	FantasyPoints        int           `db:"fantasy_points"`
	PointsPerGame        int64         `db:"points_per_game"`
}

type hallOfFameTableModel struct {
	Category string `db:"category"`
	PlayerID string `db:"player_id"`
	Name     string `db:"name"`
	Value    int64  `db:"value"`
	Rank     int    `db:"rank"`
}

func statLineToColumns(model *allTimeStatsTableModel, line aggregate.StatLine) {
	model.GamesPlayed = line.GamesPlayed
	model.Wins = line.Wins
	model.Draws = line.Draws
	model.Losses = line.Losses
	model.Goals = line.Goals
	model.WinPercentage = line.WinPercentage
	model.MinutesPerGoal = sql.NullInt64{Int64: line.MinutesPerGoal, Valid: line.HasMinutesPerGoal}
	model.HeavyWins = line.HeavyWins
	model.HeavyWinPercentage = line.HeavyWinPercentage
	model.HeavyLosses = line.HeavyLosses
	model.HeavyLossPercentage = line.HeavyLossPercentage
	model.CleanSheets = line.CleanSheets
	model.CleanSheetPercentage = line.CleanSheetPercentage
	model.FantasyPoints = line.FantasyPoints
	model.PointsPerGame = line.PointsPerGame
}

func statLineFromColumns(model allTimeStatsTableModel) aggregate.StatLine {
	return aggregate.StatLine{
		GamesPlayed:          model.GamesPlayed,
		Wins:                 model.Wins,
		Draws:                model.Draws,
		Losses:               model.Losses,
		Goals:                model.Goals,
		WinPercentage:        model.WinPercentage,
		MinutesPerGoal:       model.MinutesPerGoal.Int64,
		HasMinutesPerGoal:    model.MinutesPerGoal.Valid,
		HeavyWins:            model.HeavyWins,
		HeavyWinPercentage:   model.HeavyWinPercentage,
		HeavyLosses:          model.HeavyLosses,
		HeavyLossPercentage:  model.HeavyLossPercentage,
		CleanSheets:          model.CleanSheets,
		CleanSheetPercentage: model.CleanSheetPercentage,
		FantasyPoints:        model.FantasyPoints,
		PointsPerGame:        model.PointsPerGame,
	}
}
