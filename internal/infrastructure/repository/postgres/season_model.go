package postgres

import (
	"database/sql"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
)

type seasonStatsTableModel struct {
	PlayerID             string        `db:"player_id"`
	Name                 string        `db:"name"`
	Year                 int           `db:"year"`
	Half                 int           `db:"half"`
	PeriodStart          time.Time     `db:"period_start"`
	PeriodEnd            time.Time     `db:"period_end"`
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

func seasonRowToModel(row aggregate.SeasonRow) seasonStatsTableModel {
	line := row.Stats
	return seasonStatsTableModel{
		PlayerID:             row.PlayerID,
		Name:                 row.Name,
		Year:                 row.Year,
		Half:                 row.Half,
		PeriodStart:          row.PeriodStart,
		PeriodEnd:            row.PeriodEnd,
		GamesPlayed:          line.GamesPlayed,
		Wins:                 line.Wins,
		Draws:                line.Draws,
		Losses:               line.Losses,
		Goals:                line.Goals,
		WinPercentage:        line.WinPercentage,
		MinutesPerGoal:       sql.NullInt64{Int64: line.MinutesPerGoal, Valid: line.HasMinutesPerGoal},
		HeavyWins:            line.HeavyWins,
		HeavyWinPercentage:   line.HeavyWinPercentage,
		HeavyLosses:          line.HeavyLosses,
		HeavyLossPercentage:  line.HeavyLossPercentage,
		CleanSheets:          line.CleanSheets,
		CleanSheetPercentage: line.CleanSheetPercentage,
		FantasyPoints:        line.FantasyPoints,
		PointsPerGame:        line.PointsPerGame,
	}
}

func seasonRowFromModel(model seasonStatsTableModel) aggregate.SeasonRow {
	return aggregate.SeasonRow{
		PlayerID:    model.PlayerID,
		Name:        model.Name,
		Year:        model.Year,
		Half:        model.Half,
		PeriodStart: model.PeriodStart,
		PeriodEnd:   model.PeriodEnd,
		Stats: aggregate.StatLine{
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
		},
	}
}
