package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/platform/logging"
)

// RecentFormService rebuilds the per-player recent-form snapshots. Players
// are walked in id-ordered batches so memory stays bounded regardless of
// roster size, and per-player work inside a batch fans out on a pool.
type RecentFormService struct {
	configRepo appconfig.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	formRepo   aggregate.RecentFormRepository
	pool       *ants.Pool
	batchSize  int
	logger     *logging.Logger
	now        func() time.Time
}

func NewRecentFormService(
	configRepo appconfig.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	formRepo aggregate.RecentFormRepository,
	pool *ants.Pool,
	batchSize int,
	logger *logging.Logger,
) *RecentFormService {
	if batchSize <= 0 {
		batchSize = 10
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecentFormService{
		configRepo: configRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		formRepo:   formRepo,
		pool:       pool,
		batchSize:  batchSize,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RecentFormService) Recalculate(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "RecentFormService.Recalculate")
	defer span.End()

	settings, err := appconfig.Load(ctx, s.configRepo, s.logger)
	if err != nil {
		return err
	}

	var rows []aggregate.RecentFormRow
	afterID := ""
	for {
		batch, err := s.playerRepo.ListCurrentPage(ctx, afterID, s.batchSize)
		if err != nil {
			return fmt.Errorf("page current players: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		batchRows, err := s.processBatch(ctx, batch, settings)
		if err != nil {
			return err
		}
		rows = append(rows, batchRows...)
		afterID = batch[len(batch)-1].ID
		if len(batch) < s.batchSize {
			break
		}
	}

	if err := s.formRepo.Replace(ctx, rows, s.now()); err != nil {
		return fmt.Errorf("replace recent form: %w", err)
	}

	s.logger.InfoContext(ctx, "recent form rebuilt", "players", len(rows))
	return nil
}

// processBatch fetches one batch's histories in a single query and fans the
// per-player fold out on the worker pool.
func (s *RecentFormService) processBatch(ctx context.Context, batch []player.Player, settings appconfig.Settings) ([]aggregate.RecentFormRow, error) {
	ids := make([]string, 0, len(batch))
	names := make(map[string]string, len(batch))
	for _, p := range batch {
		ids = append(ids, p.ID)
		names[p.ID] = p.Name
	}

	facts, err := s.matchRepo.ListPlayerMatches(ctx, match.Filter{PlayerIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("list player matches for batch: %w", err)
	}
	histories := groupByPlayer(ctx, facts, s.logger)

	var (
		mu   sync.Mutex
		rows []aggregate.RecentFormRow
		wg   sync.WaitGroup
	)
	for _, playerID := range sortedPlayerIDs(histories) {
		playerID := playerID
		wg.Add(1)
		task := func() {
			defer wg.Done()
			row := buildFormRow(playerID, names[playerID], histories[playerID], settings.RecentFormMatches)
			mu.Lock()
			rows = append(rows, row)
			mu.Unlock()
		}
		if s.pool != nil {
			if err := s.pool.Submit(task); err != nil {
				// Pool saturated or closed, fall back to inline work.
				task()
			}
		} else {
			go task()
		}
	}
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool { return rows[i].PlayerID < rows[j].PlayerID })
	return rows, nil
}

// buildFormRow takes the last n matches of a chronological history, most
// recent first.
func buildFormRow(playerID, name string, history []match.PlayerMatch, n int) aggregate.RecentFormRow {
	if n <= 0 {
		n = 5
	}
	start := len(history) - n
	if start < 0 {
		start = 0
	}

	row := aggregate.RecentFormRow{PlayerID: playerID, Name: name}
	for i := len(history) - 1; i >= start; i-- {
		pm := history[i]
		row.Matches = append(row.Matches, aggregate.FormMatch{
			MatchID:      pm.MatchID,
			Date:         pm.Date,
			Goals:        pm.Goals,
			Result:       pm.Result,
			ScoreFor:     pm.ScoreFor,
			ScoreAgainst: pm.ScoreAgainst,
			HeavyWin:     pm.HeavyWin,
			HeavyLoss:    pm.HeavyLoss,
			CleanSheet:   pm.CleanSheet,
		})
	}
	return row
}
