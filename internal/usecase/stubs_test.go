package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
)

type stubConfigRepo struct {
	values map[string]string
	err    error
}

func (s *stubConfigRepo) GetAll(context.Context) (map[string]string, error) {
	return s.values, s.err
}

type stubPlayerRepo struct {
	players []player.Player
	err     error
}

func (s *stubPlayerRepo) ListAll(context.Context) ([]player.Player, error) {
	return s.players, s.err
}

func (s *stubPlayerRepo) ListCurrent(context.Context) ([]player.Player, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []player.Player
	for _, p := range s.players {
		if p.IsCurrent() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPlayerRepo) ListCurrentPage(_ context.Context, afterID string, limit int) ([]player.Player, error) {
	if s.err != nil {
		return nil, s.err
	}
	var current []player.Player
	for _, p := range s.players {
		if p.IsCurrent() && p.ID > afterID {
			current = append(current, p)
		}
	}
	sort.Slice(current, func(i, j int) bool { return current[i].ID < current[j].ID })
	if len(current) > limit {
		current = current[:limit]
	}
	return current, nil
}

func (s *stubPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	if s.err != nil {
		return player.Player{}, false, s.err
	}
	for _, p := range s.players {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

type stubMatchRepo struct {
	matches        []match.Match
	participations map[string][]match.Participation
	facts          []match.PlayerMatch
	lastUpdated    map[int]time.Time
	err            error
}

func (s *stubMatchRepo) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	if s.err != nil {
		return match.Match{}, false, s.err
	}
	for _, m := range s.matches {
		if m.ID == matchID {
			return m, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (s *stubMatchRepo) GetLatest(context.Context) (match.Match, bool, error) {
	if s.err != nil {
		return match.Match{}, false, s.err
	}
	var (
		latest match.Match
		found  bool
	)
	for _, m := range s.matches {
		if !found || m.Date.After(latest.Date) {
			latest = m
			found = true
		}
	}
	return latest, found, nil
}

func (s *stubMatchRepo) ListPlayerMatches(_ context.Context, f match.Filter) ([]match.PlayerMatch, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := map[string]bool{}
	for _, id := range f.PlayerIDs {
		wanted[id] = true
	}
	var out []match.PlayerMatch
	for _, pm := range s.facts {
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
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *stubMatchRepo) ListParticipations(_ context.Context, matchID string) ([]match.Participation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.participations[matchID], nil
}

func (s *stubMatchRepo) LastParticipationUpdate(_ context.Context, year int) (time.Time, bool, error) {
	if s.err != nil {
		return time.Time{}, false, s.err
	}
	at, ok := s.lastUpdated[year]
	return at, ok, nil
}

type captureAllTimeRepo struct {
	rows       []aggregate.AllTimeRow
	entries    []aggregate.HallOfFameEntry
	stampedAt  time.Time
	replaceErr error
	calls      int
}

func (c *captureAllTimeRepo) ListStats(context.Context) ([]aggregate.AllTimeRow, error) {
	return c.rows, nil
}

func (c *captureAllTimeRepo) ListHallOfFame(context.Context) ([]aggregate.HallOfFameEntry, error) {
	return c.entries, nil
}

func (c *captureAllTimeRepo) Replace(_ context.Context, rows []aggregate.AllTimeRow, entries []aggregate.HallOfFameEntry, at time.Time) error {
	c.calls++
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.rows, c.entries, c.stampedAt = rows, entries, at
	return nil
}

type captureSeasonRepo struct {
	halfRows   []aggregate.SeasonRow
	seasonRows []aggregate.SeasonRow
	years      []int
	halfCalls  int
	fullCalls  int
	replaceErr error
}

func (c *captureSeasonRepo) ListHalfSeason(context.Context) ([]aggregate.SeasonRow, error) {
	return c.halfRows, nil
}

func (c *captureSeasonRepo) ListSeasons(context.Context) ([]aggregate.SeasonRow, error) {
	return c.seasonRows, nil
}

func (c *captureSeasonRepo) ReplaceHalfSeason(_ context.Context, rows []aggregate.SeasonRow, _ time.Time) error {
	c.halfCalls++
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.halfRows = rows
	return nil
}

func (c *captureSeasonRepo) ReplaceSeasons(_ context.Context, years []int, rows []aggregate.SeasonRow, _ time.Time) error {
	c.fullCalls++
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.years, c.seasonRows = years, rows
	return nil
}

type captureReportRepo struct {
	report     aggregate.MatchReport
	streaks    []aggregate.CurrentStreaksRow
	hasReport  bool
	replaceErr error
	calls      int
}

func (c *captureReportRepo) Get(context.Context) (aggregate.MatchReport, bool, error) {
	return c.report, c.hasReport, nil
}

func (c *captureReportRepo) ListCurrentStreaks(context.Context) ([]aggregate.CurrentStreaksRow, error) {
	return c.streaks, nil
}

func (c *captureReportRepo) Replace(_ context.Context, report aggregate.MatchReport, streaks []aggregate.CurrentStreaksRow, _ time.Time) error {
	c.calls++
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.report, c.streaks, c.hasReport = report, streaks, true
	return nil
}

type captureHonoursRepo struct {
	honours    []aggregate.HonourSeason
	records    aggregate.Records
	hasRecords bool
	replaceErr error
	calls      int
}

func (c *captureHonoursRepo) ListHonours(context.Context) ([]aggregate.HonourSeason, error) {
	return c.honours, nil
}

func (c *captureHonoursRepo) GetRecords(context.Context) (aggregate.Records, bool, error) {
	return c.records, c.hasRecords, nil
}

func (c *captureHonoursRepo) Replace(_ context.Context, honours []aggregate.HonourSeason, records aggregate.Records, _ time.Time) error {
	c.calls++
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.honours, c.records, c.hasRecords = honours, records, true
	return nil
}

type captureFormRepo struct {
	rows       []aggregate.RecentFormRow
	replaceErr error
	calls      int
}

func (c *captureFormRepo) GetByPlayer(_ context.Context, playerID string) (aggregate.RecentFormRow, bool, error) {
	for _, row := range c.rows {
		if row.PlayerID == playerID {
			return row, true, nil
		}
	}
	return aggregate.RecentFormRow{}, false, nil
}

func (c *captureFormRepo) Replace(_ context.Context, rows []aggregate.RecentFormRow, _ time.Time) error {
	c.calls++
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.rows = rows
	return nil
}

func day(n int) time.Time {
	return time.Date(2025, time.March, 1, 18, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func won(matchID, playerID string, date time.Time, goals int) match.PlayerMatch {
	return match.PlayerMatch{
		MatchID: matchID, PlayerID: playerID, Date: date, Team: match.TeamA,
		Goals: goals, Result: match.ResultWin, ScoreFor: 3, ScoreAgainst: 1,
	}
}

func lost(matchID, playerID string, date time.Time, goals int) match.PlayerMatch {
	return match.PlayerMatch{
		MatchID: matchID, PlayerID: playerID, Date: date, Team: match.TeamB,
		Goals: goals, Result: match.ResultLoss, ScoreFor: 1, ScoreAgainst: 3,
	}
}

func drew(matchID, playerID string, date time.Time, goals int) match.PlayerMatch {
	return match.PlayerMatch{
		MatchID: matchID, PlayerID: playerID, Date: date, Team: match.TeamA,
		Goals: goals, Result: match.ResultDraw, ScoreFor: 2, ScoreAgainst: 2,
	}
}
