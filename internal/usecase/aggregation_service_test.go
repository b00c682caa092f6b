package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

func TestRunPostMatchIsolatesFailures(t *testing.T) {
	t.Parallel()

	matchDate := day(3)
	players := &stubPlayerRepo{players: []player.Player{{ID: "p1", Name: "Ana"}}}
	matchRepo := &stubMatchRepo{
		matches: []match.Match{{ID: "m1", Date: matchDate, TeamAScore: 2, TeamBScore: 1}},
		participations: map[string][]match.Participation{
			"m1": {{MatchID: "m1", PlayerID: "p1", Team: match.TeamA, Goals: 2, Result: match.ResultWin}},
		},
	}
	matchRepo.facts = append(matchRepo.facts, won("m1", "p1", matchDate, 2))

	config := &stubConfigRepo{}
	logger := logging.NewNop()

	allTimeCapture := &captureAllTimeRepo{}
	seasonCapture := &captureSeasonRepo{replaceErr: errors.New("season table locked")}
	reportCapture := &captureReportRepo{}
	honoursCapture := &captureHonoursRepo{}
	formCapture := &captureFormRepo{}

	svc := NewAggregationService(
		NewAllTimeStatsService(config, players, matchRepo, allTimeCapture, logger),
		NewSeasonStatsService(config, players, matchRepo, seasonCapture, logger),
		NewMatchReportService(config, players, matchRepo, reportCapture, logger),
		NewHonoursService(config, players, matchRepo, honoursCapture, logger),
		NewRecentFormService(config, players, matchRepo, formCapture, nil, 0, logger),
		logger,
	)

	summary := svc.RunPostMatch(context.Background(), "m1")

	if summary.Succeeded != 4 || summary.Failed != 1 {
		t.Fatalf("summary = %d ok / %d failed, want 4/1", summary.Succeeded, summary.Failed)
	}
	if len(summary.Jobs) != 5 {
		t.Fatalf("jobs = %d, want 5", len(summary.Jobs))
	}

	statuses := map[string]string{}
	for _, job := range summary.Jobs {
		statuses[job.Job] = job.Status
	}
	if statuses[JobSeason] != "failed" {
		t.Fatalf("season status = %q, want failed", statuses[JobSeason])
	}
	for _, name := range []string{JobAllTime, JobMatchReport, JobHonours, JobRecentForm} {
		if statuses[name] != "ok" {
			t.Fatalf("%s status = %q, want ok", name, statuses[name])
		}
	}

	// The failing job must not block the others' writes.
	if allTimeCapture.calls != 1 || reportCapture.calls != 1 || honoursCapture.calls != 1 || formCapture.calls != 1 {
		t.Fatalf("replace calls all=%d report=%d honours=%d form=%d, want 1 each",
			allTimeCapture.calls, reportCapture.calls, honoursCapture.calls, formCapture.calls)
	}
}

func TestRunPostMatchOrderedSummary(t *testing.T) {
	t.Parallel()

	players := &stubPlayerRepo{players: []player.Player{{ID: "p1", Name: "Ana"}}}
	matchRepo := &stubMatchRepo{
		matches: []match.Match{{ID: "m1", Date: day(0), TeamAScore: 1, TeamBScore: 0}},
		participations: map[string][]match.Participation{
			"m1": {{MatchID: "m1", PlayerID: "p1", Team: match.TeamA, Goals: 1, Result: match.ResultWin}},
		},
	}
	matchRepo.facts = append(matchRepo.facts, won("m1", "p1", day(0), 1))

	config := &stubConfigRepo{}
	logger := logging.NewNop()
	svc := NewAggregationService(
		NewAllTimeStatsService(config, players, matchRepo, &captureAllTimeRepo{}, logger),
		NewSeasonStatsService(config, players, matchRepo, &captureSeasonRepo{}, logger),
		NewMatchReportService(config, players, matchRepo, &captureReportRepo{}, logger),
		NewHonoursService(config, players, matchRepo, &captureHonoursRepo{}, logger),
		NewRecentFormService(config, players, matchRepo, &captureFormRepo{}, nil, 0, logger),
		logger,
	)

	summary := svc.RunPostMatch(context.Background(), "m1")

	want := []string{JobAllTime, JobSeason, JobMatchReport, JobHonours, JobRecentForm}
	for i, name := range want {
		if summary.Jobs[i].Job != name {
			t.Fatalf("job[%d] = %s, want %s", i, summary.Jobs[i].Job, name)
		}
	}
	if summary.MatchID != "m1" {
		t.Fatalf("matchId = %q, want m1", summary.MatchID)
	}
}

func TestRunJobsFiltersToRequestedJobs(t *testing.T) {
	t.Parallel()

	players := &stubPlayerRepo{players: []player.Player{{ID: "p1", Name: "Ana"}}}
	matchRepo := &stubMatchRepo{
		matches: []match.Match{{ID: "m1", Date: day(0), TeamAScore: 1, TeamBScore: 0}},
		participations: map[string][]match.Participation{
			"m1": {{MatchID: "m1", PlayerID: "p1", Team: match.TeamA, Goals: 1, Result: match.ResultWin}},
		},
	}
	matchRepo.facts = append(matchRepo.facts, won("m1", "p1", day(0), 1))

	config := &stubConfigRepo{}
	logger := logging.NewNop()
	allTimeCapture := &captureAllTimeRepo{}
	seasonCapture := &captureSeasonRepo{}
	reportCapture := &captureReportRepo{}
	svc := NewAggregationService(
		NewAllTimeStatsService(config, players, matchRepo, allTimeCapture, logger),
		NewSeasonStatsService(config, players, matchRepo, seasonCapture, logger),
		NewMatchReportService(config, players, matchRepo, reportCapture, logger),
		NewHonoursService(config, players, matchRepo, &captureHonoursRepo{}, logger),
		NewRecentFormService(config, players, matchRepo, &captureFormRepo{}, nil, 0, logger),
		logger,
	)

	summary := svc.RunJobs(context.Background(), "m1", []string{JobMatchReport, JobAllTime})

	if len(summary.Jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(summary.Jobs))
	}
	if summary.Jobs[0].Job != JobAllTime || summary.Jobs[1].Job != JobMatchReport {
		t.Fatalf("jobs ran out of order: %+v", summary.Jobs)
	}
	if summary.Succeeded != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %d ok / %d failed, want 2/0", summary.Succeeded, summary.Failed)
	}
	if allTimeCapture.calls != 1 || reportCapture.calls != 1 {
		t.Fatalf("replace calls all=%d report=%d, want 1 each", allTimeCapture.calls, reportCapture.calls)
	}
	if seasonCapture.halfCalls != 0 || seasonCapture.fullCalls != 0 {
		t.Fatal("season job ran despite not being requested")
	}
}
