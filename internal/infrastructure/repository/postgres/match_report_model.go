package postgres

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/stats"
)

// The report is one denormalized row; list-shaped parts live in JSONB
// columns so the report screen reads a single record.
type matchReportTableModel struct {
	MatchID        string    `db:"match_id"`
	MatchDate      time.Time `db:"match_date"`
	TeamAScore     int       `db:"team_a_score"`
	TeamBScore     int       `db:"team_b_score"`
	TeamAPlayers   []byte    `db:"team_a_players"`
	TeamBPlayers   []byte    `db:"team_b_players"`
	TeamAScorers   string    `db:"team_a_scorers"`
	TeamBScorers   string    `db:"team_b_scorers"`
	Config         []byte    `db:"config"`
	GameMilestones []byte    `db:"game_milestones"`
	GoalMilestones []byte    `db:"goal_milestones"`
	LeaderChanges  []byte    `db:"leader_changes"`
}

type reportLeaderChanges struct {
	HalfSeasonGoals   stats.LeaderChange `json:"halfSeasonGoals"`
	HalfSeasonFantasy stats.LeaderChange `json:"halfSeasonFantasy"`
	SeasonGoals       stats.LeaderChange `json:"seasonGoals"`
	SeasonFantasy     stats.LeaderChange `json:"seasonFantasy"`
}

type currentStreaksTableModel struct {
	PlayerID             string `db:"player_id"`
	Name                 string `db:"name"`
	WinStreak            int    `db:"win_streak"`
	LossStreak           int    `db:"loss_streak"`
	UnbeatenStreak       int    `db:"unbeaten_streak"`
	WinlessStreak        int    `db:"winless_streak"`
	ScoringStreak        int    `db:"scoring_streak"`
	GoalsInScoringStreak int    `db:"goals_in_scoring_streak"`
}

func matchReportToModel(report aggregate.MatchReport) (matchReportTableModel, error) {
	model := matchReportTableModel{
		MatchID:      report.MatchID,
		MatchDate:    report.MatchDate,
		TeamAScore:   report.TeamAScore,
		TeamBScore:   report.TeamBScore,
		TeamAScorers: report.TeamAScorers,
		TeamBScorers: report.TeamBScorers,
	}

	var err error
	if model.TeamAPlayers, err = sonic.Marshal(report.TeamAPlayers); err != nil {
		return model, errors.Wrap(err, "marshal team A players")
	}
	if model.TeamBPlayers, err = sonic.Marshal(report.TeamBPlayers); err != nil {
		return model, errors.Wrap(err, "marshal team B players")
	}
	if model.Config, err = sonic.Marshal(report.Config); err != nil {
		return model, errors.Wrap(err, "marshal report config")
	}
	if model.GameMilestones, err = sonic.Marshal(report.GameMilestones); err != nil {
		return model, errors.Wrap(err, "marshal game milestones")
	}
	if model.GoalMilestones, err = sonic.Marshal(report.GoalMilestones); err != nil {
		return model, errors.Wrap(err, "marshal goal milestones")
	}
	changes := reportLeaderChanges{
		HalfSeasonGoals:   report.HalfSeasonGoalLeaders,
		HalfSeasonFantasy: report.HalfSeasonFantasyLeaders,
		SeasonGoals:       report.SeasonGoalLeaders,
		SeasonFantasy:     report.SeasonFantasyLeaders,
	}
	if model.LeaderChanges, err = sonic.Marshal(changes); err != nil {
		return model, errors.Wrap(err, "marshal leader changes")
	}
	return model, nil
}

func matchReportFromModel(model matchReportTableModel) (aggregate.MatchReport, error) {
	report := aggregate.MatchReport{
		MatchID:      model.MatchID,
		MatchDate:    model.MatchDate,
		TeamAScore:   model.TeamAScore,
		TeamBScore:   model.TeamBScore,
		TeamAScorers: model.TeamAScorers,
		TeamBScorers: model.TeamBScorers,
	}

	if err := sonic.Unmarshal(model.TeamAPlayers, &report.TeamAPlayers); err != nil {
		return report, errors.Wrap(err, "unmarshal team A players")
	}
	if err := sonic.Unmarshal(model.TeamBPlayers, &report.TeamBPlayers); err != nil {
		return report, errors.Wrap(err, "unmarshal team B players")
	}
	var config appconfig.Settings
	if err := sonic.Unmarshal(model.Config, &config); err != nil {
		return report, errors.Wrap(err, "unmarshal report config")
	}
	report.Config = config
	if err := sonic.Unmarshal(model.GameMilestones, &report.GameMilestones); err != nil {
		return report, errors.Wrap(err, "unmarshal game milestones")
	}
	if err := sonic.Unmarshal(model.GoalMilestones, &report.GoalMilestones); err != nil {
		return report, errors.Wrap(err, "unmarshal goal milestones")
	}
	var changes reportLeaderChanges
	if err := sonic.Unmarshal(model.LeaderChanges, &changes); err != nil {
		return report, errors.Wrap(err, "unmarshal leader changes")
	}
	report.HalfSeasonGoalLeaders = changes.HalfSeasonGoals
	report.HalfSeasonFantasyLeaders = changes.HalfSeasonFantasy
	report.SeasonGoalLeaders = changes.SeasonGoals
	report.SeasonFantasyLeaders = changes.SeasonFantasy
	return report, nil
}
