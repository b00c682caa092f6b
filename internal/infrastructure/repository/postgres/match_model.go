package postgres

import "time"

type matchTableModel struct {
	ID         string    `db:"id"`
	MatchDate  time.Time `db:"match_date"`
	TeamAScore int       `db:"team_a_score"`
	TeamBScore int       `db:"team_b_score"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type participationTableModel struct {
	MatchID    string    `db:"match_id"`
	PlayerID   string    `db:"player_id"`
	Team       string    `db:"team"`
	Goals      int       `db:"goals"`
	Result     string    `db:"result"`
	HeavyWin   bool      `db:"heavy_win"`
	HeavyLoss  bool      `db:"heavy_loss"`
	CleanSheet bool      `db:"clean_sheet"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type playerMatchTableModel struct {
	MatchID      string    `db:"match_id"`
	PlayerID     string    `db:"player_id"`
	MatchDate    time.Time `db:"match_date"`
	Team         string    `db:"team"`
	Goals        int       `db:"goals"`
	Result       string    `db:"result"`
	HeavyWin     bool      `db:"heavy_win"`
	HeavyLoss    bool      `db:"heavy_loss"`
	CleanSheet   bool      `db:"clean_sheet"`
	ScoreFor     int       `db:"score_for"`
	ScoreAgainst int       `db:"score_against"`
}
