package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/domain/stats"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

func newReportFixture(config *stubConfigRepo, playerRepo *stubPlayerRepo, matchRepo *stubMatchRepo, reportRepo *captureReportRepo) *MatchReportService {
	svc := NewMatchReportService(config, playerRepo, matchRepo, reportRepo, logging.NewNop())
	svc.now = func() time.Time { return day(100) }
	return svc
}

func reportPlayers() *stubPlayerRepo {
	return &stubPlayerRepo{players: []player.Player{
		{ID: "p1", Name: "Ana"},
		{ID: "p2", Name: "Ben"},
		{ID: "p3", Name: "Cal"},
		{ID: "p4", Name: "Dee", IsRetired: true},
	}}
}

func TestMatchReportRebuildRostersAndScorers(t *testing.T) {
	t.Parallel()

	matchDate := day(10)
	repo := &stubMatchRepo{
		matches: []match.Match{{ID: "m2", Date: matchDate, TeamAScore: 4, TeamBScore: 1}},
		participations: map[string][]match.Participation{
			"m2": {
				{MatchID: "m2", PlayerID: "p1", Team: match.TeamA, Goals: 3, Result: match.ResultWin},
				{MatchID: "m2", PlayerID: "p2", Team: match.TeamA, Goals: 1, Result: match.ResultWin},
				{MatchID: "m2", PlayerID: "p3", Team: match.TeamB, Goals: 1, Result: match.ResultLoss},
			},
		},
	}
	repo.facts = append(repo.facts,
		won("m2", "p1", matchDate, 3),
		won("m2", "p2", matchDate, 1),
		lost("m2", "p3", matchDate, 1),
	)

	capture := &captureReportRepo{}
	svc := newReportFixture(&stubConfigRepo{}, reportPlayers(), repo, capture)

	if err := svc.Rebuild(context.Background(), "m2"); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if capture.calls != 1 {
		t.Fatalf("Replace calls = %d, want 1", capture.calls)
	}

	report := capture.report
	if report.MatchID != "m2" || report.TeamAScore != 4 || report.TeamBScore != 1 {
		t.Fatalf("report header = %+v", report)
	}
	if len(report.TeamAPlayers) != 2 || report.TeamAPlayers[0] != "Ana" || report.TeamAPlayers[1] != "Ben" {
		t.Fatalf("team A roster = %v", report.TeamAPlayers)
	}
	if len(report.TeamBPlayers) != 1 || report.TeamBPlayers[0] != "Cal" {
		t.Fatalf("team B roster = %v", report.TeamBPlayers)
	}
	if report.TeamAScorers != "Ana (3), Ben" {
		t.Fatalf("team A scorers = %q", report.TeamAScorers)
	}
	if report.TeamBScorers != "Cal" {
		t.Fatalf("team B scorers = %q", report.TeamBScorers)
	}
}

func TestMatchReportMilestonesScopedToParticipants(t *testing.T) {
	t.Parallel()

	matchDate := day(30)
	repo := &stubMatchRepo{
		matches: []match.Match{{ID: "m99", Date: matchDate, TeamAScore: 2, TeamBScore: 0}},
		participations: map[string][]match.Participation{
			"m99": {
				{MatchID: "m99", PlayerID: "p1", Team: match.TeamA, Goals: 1, Result: match.ResultWin},
			},
		},
	}
	// Ana's career lands exactly on 3 games and 3 goals after this match.
	// Ben also sits on a multiple but did not play, so he must not fire.
	repo.facts = append(repo.facts,
		won("m1", "p1", day(1), 1),
		won("m2", "p1", day(2), 1),
		won("m99", "p1", matchDate, 1),
		won("m1", "p2", day(1), 3),
		won("m2", "p2", day(2), 0),
		won("m3", "p2", day(3), 0),
	)

	config := &stubConfigRepo{values: map[string]string{
		"game_milestone_threshold": "3",
		"goal_milestone_threshold": "3",
	}}
	capture := &captureReportRepo{}
	svc := newReportFixture(config, reportPlayers(), repo, capture)

	if err := svc.Rebuild(context.Background(), "m99"); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	report := capture.report
	if len(report.GameMilestones) != 1 || report.GameMilestones[0].PlayerID != "p1" || report.GameMilestones[0].Total != 3 {
		t.Fatalf("game milestones = %+v", report.GameMilestones)
	}
	if len(report.GoalMilestones) != 1 || report.GoalMilestones[0].Type != stats.MilestoneGoals {
		t.Fatalf("goal milestones = %+v", report.GoalMilestones)
	}
}

func TestMatchReportLeaderOvertake(t *testing.T) {
	t.Parallel()

	// Ben led the season on goals until Ana's hat-trick today.
	matchDate := day(20)
	repo := &stubMatchRepo{
		matches: []match.Match{{ID: "m9", Date: matchDate, TeamAScore: 3, TeamBScore: 0}},
		participations: map[string][]match.Participation{
			"m9": {
				{MatchID: "m9", PlayerID: "p1", Team: match.TeamA, Goals: 3, Result: match.ResultWin},
			},
		},
	}
	repo.facts = append(repo.facts,
		won("m1", "p1", day(1), 1),
		won("m9", "p1", matchDate, 3),
		won("m1", "p2", day(1), 2),
	)

	capture := &captureReportRepo{}
	svc := newReportFixture(&stubConfigRepo{}, reportPlayers(), repo, capture)

	if err := svc.Rebuild(context.Background(), "m9"); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	change := capture.report.SeasonGoalLeaders
	if change.Kind != stats.ChangeOvertake {
		t.Fatalf("season goal leader change = %q, want overtake", change.Kind)
	}
	if change.PreviousName != "Ben" || change.PreviousValue != 2 {
		t.Fatalf("previous leader = %s/%d, want Ben/2", change.PreviousName, change.PreviousValue)
	}
	if change.CurrentName != "Ana" || change.CurrentValue != 4 {
		t.Fatalf("current leader = %s/%d, want Ana/4", change.CurrentName, change.CurrentValue)
	}
}

func TestMatchReportStreaksOnlyCurrentPlayers(t *testing.T) {
	t.Parallel()

	matchDate := day(5)
	repo := &stubMatchRepo{
		matches: []match.Match{{ID: "m3", Date: matchDate, TeamAScore: 1, TeamBScore: 0}},
		participations: map[string][]match.Participation{
			"m3": {
				{MatchID: "m3", PlayerID: "p1", Team: match.TeamA, Goals: 1, Result: match.ResultWin},
			},
		},
	}
	repo.facts = append(repo.facts,
		won("m1", "p1", day(1), 1),
		won("m2", "p1", day(2), 2),
		won("m3", "p1", matchDate, 1),
		lost("m1", "p4", day(1), 0), // retired
	)

	capture := &captureReportRepo{}
	svc := newReportFixture(&stubConfigRepo{}, reportPlayers(), repo, capture)

	if err := svc.Rebuild(context.Background(), "m3"); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	if len(capture.streaks) != 1 {
		t.Fatalf("streak rows = %d, want 1 (retired excluded)", len(capture.streaks))
	}
	row := capture.streaks[0]
	if row.PlayerID != "p1" || row.WinStreak != 3 || row.UnbeatenStreak != 3 {
		t.Fatalf("streak row = %+v", row)
	}
	if row.ScoringStreak != 3 || row.GoalsInScoringStreak != 4 {
		t.Fatalf("scoring streak = %d goals %d, want 3/4", row.ScoringStreak, row.GoalsInScoringStreak)
	}
	if row.LossStreak != 0 || row.WinlessStreak != 0 {
		t.Fatalf("loss/winless = %d/%d, want 0/0", row.LossStreak, row.WinlessStreak)
	}
}

func TestMatchReportUnknownMatch(t *testing.T) {
	t.Parallel()

	svc := newReportFixture(&stubConfigRepo{}, reportPlayers(), &stubMatchRepo{}, &captureReportRepo{})
	err := svc.Rebuild(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Rebuild() error = %v, want ErrNotFound", err)
	}
}

func TestMatchReportEmptyIDUsesLatest(t *testing.T) {
	t.Parallel()

	repo := &stubMatchRepo{
		matches: []match.Match{
			{ID: "m1", Date: day(1), TeamAScore: 1, TeamBScore: 1},
			{ID: "m2", Date: day(2), TeamAScore: 2, TeamBScore: 0},
		},
		participations: map[string][]match.Participation{
			"m2": {{MatchID: "m2", PlayerID: "p1", Team: match.TeamA, Goals: 2, Result: match.ResultWin}},
		},
	}
	repo.facts = append(repo.facts, won("m2", "p1", day(2), 2))

	capture := &captureReportRepo{}
	svc := newReportFixture(&stubConfigRepo{}, reportPlayers(), repo, capture)

	if err := svc.Rebuild(context.Background(), ""); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if capture.report.MatchID != "m2" {
		t.Fatalf("report match = %s, want latest m2", capture.report.MatchID)
	}
}
