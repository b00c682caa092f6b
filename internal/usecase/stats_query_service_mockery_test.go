package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	aggregatemock "github.com/matchvault/fiveaside/internal/mocks/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/platform/cache"
	"github.com/matchvault/fiveaside/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func newMockedQueryService(allTime aggregate.AllTimeRepository, report aggregate.MatchReportRepository, store *cache.Store) *StatsQueryService {
	return NewStatsQueryService(
		allTime,
		&captureSeasonRepo{},
		report,
		&captureHonoursRepo{},
		&captureFormRepo{},
		&stubMetadataRepo{},
		store,
		logging.NewNop(),
	)
}

func TestStatsQueryService_MatchReport_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reportRepo := aggregatemock.NewMatchReportRepository(t)
	allTimeRepo := aggregatemock.NewAllTimeRepository(t)

	service := newMockedQueryService(allTimeRepo, reportRepo, nil)
	wantReport := aggregate.MatchReport{
		MatchID:    "m-2025-03-14",
		MatchDate:  time.Date(2025, time.March, 14, 18, 0, 0, 0, time.UTC),
		TeamAScore: 4,
		TeamBScore: 2,
	}

	reportRepo.
		On("Get", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(wantReport, true, nil).
		Once()

	got, err := service.MatchReport(ctx)
	if err != nil {
		t.Fatalf("match report: %v", err)
	}
	if got.MatchID != wantReport.MatchID {
		t.Fatalf("unexpected match id: got=%s want=%s", got.MatchID, wantReport.MatchID)
	}
	if got.TeamAScore != 4 || got.TeamBScore != 2 {
		t.Fatalf("unexpected score: got=%d-%d", got.TeamAScore, got.TeamBScore)
	}
}

func TestStatsQueryService_MatchReport_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reportRepo := aggregatemock.NewMatchReportRepository(t)
	allTimeRepo := aggregatemock.NewAllTimeRepository(t)

	service := newMockedQueryService(allTimeRepo, reportRepo, nil)

	reportRepo.
		On("Get", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(aggregate.MatchReport{}, false, nil).
		Once()

	_, err := service.MatchReport(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsQueryService_AllTimeStats_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reportRepo := aggregatemock.NewMatchReportRepository(t)
	allTimeRepo := aggregatemock.NewAllTimeRepository(t)

	service := newMockedQueryService(allTimeRepo, reportRepo, cache.NewStore(time.Minute, cache.DefaultTTLs()))
	wantErr := errors.New("connection refused")

	allTimeRepo.
		On("ListStats", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(nil, wantErr).
		Once()

	_, err := service.AllTimeStats(ctx)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
