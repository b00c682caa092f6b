package usecase

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// Aggregation job names as reported in run summaries.
const (
	JobAllTime     = "all_time_stats"
	JobSeason      = "season_stats"
	JobMatchReport = "match_report"
	JobHonours     = "honours"
	JobRecentForm  = "recent_form"
)

// JobResult is one orchestrator's outcome within a post-match run.
type JobResult struct {
	Job        string `json:"job"`
	Status     string `json:"status"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// RunSummary is the full outcome of a post-match aggregation run.
type RunSummary struct {
	MatchID   string      `json:"matchId,omitempty"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Jobs      []JobResult `json:"jobs"`
}

// AggregationService fans a recorded match out to every orchestrator. Jobs
// are isolated: one failing leaves the others' tables intact and the run
// reports per-job outcomes instead of aborting.
type AggregationService struct {
	allTime    *AllTimeStatsService
	season     *SeasonStatsService
	report     *MatchReportService
	honours    *HonoursService
	recentForm *RecentFormService
	logger     *logging.Logger
}

func NewAggregationService(
	allTime *AllTimeStatsService,
	season *SeasonStatsService,
	report *MatchReportService,
	honours *HonoursService,
	recentForm *RecentFormService,
	logger *logging.Logger,
) *AggregationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AggregationService{
		allTime:    allTime,
		season:     season,
		report:     report,
		honours:    honours,
		recentForm: recentForm,
		logger:     logger,
	}
}

// RunPostMatch rebuilds every derived table after a match is recorded,
// edited or deleted.
func (s *AggregationService) RunPostMatch(ctx context.Context, matchID string) RunSummary {
	return s.RunJobs(ctx, matchID, nil)
}

// RunJobs rebuilds the named derived tables, or all of them when only is
// empty. Unknown names are ignored; callers validate them up front. The
// independent jobs run concurrently; each writes its tables in its own
// transaction so partial failure never mixes old and new state within one
// table.
func (s *AggregationService) RunJobs(ctx context.Context, matchID string, only []string) RunSummary {
	ctx, span := startUsecaseSpan(ctx, "AggregationService.RunJobs")
	defer span.End()

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	all := []struct {
		name string
		run  func(context.Context) error
	}{
		{JobAllTime, s.allTime.Recalculate},
		{JobSeason, s.season.Recalculate},
		{JobMatchReport, func(ctx context.Context) error { return s.report.Rebuild(ctx, matchID) }},
		{JobHonours, s.honours.Recalculate},
		{JobRecentForm, s.recentForm.Recalculate},
	}
	jobs := all[:0:0]
	for _, job := range all {
		if len(wanted) == 0 || wanted[job.name] {
			jobs = append(jobs, job)
		}
	}

	results := make([]JobResult, len(jobs))
	var wg conc.WaitGroup
	for i, job := range jobs {
		i, job := i, job
		wg.Go(func() {
			started := time.Now()
			err := job.run(ctx)
			result := JobResult{
				Job:        job.name,
				Status:     "ok",
				DurationMs: time.Since(started).Milliseconds(),
			}
			if err != nil {
				result.Status = "failed"
				result.Error = err.Error()
				s.logger.ErrorContext(ctx, "aggregation job failed",
					"job", job.name, "matchId", matchID, "error", err)
			}
			results[i] = result
		})
	}
	wg.Wait()

	summary := RunSummary{MatchID: matchID, Jobs: results}
	for _, r := range results {
		if r.Status == "ok" {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	s.logger.InfoContext(ctx, "post-match aggregation finished",
		"matchId", matchID, "succeeded", summary.Succeeded, "failed", summary.Failed)
	return summary
}
