package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matchvault/fiveaside/internal/domain/aggregate"
)

// AggregateStore holds every derived table in one guarded struct. The
// interface-shaped views below share it, so dev mode and tests wire the
// whole aggregate side from a single object.
type AggregateStore struct {
	mu             sync.RWMutex
	allTime        []aggregate.AllTimeRow
	hallOfFame     []aggregate.HallOfFameEntry
	halfSeason     []aggregate.SeasonRow
	seasons        map[int][]aggregate.SeasonRow
	report         aggregate.MatchReport
	hasReport      bool
	currentStreaks []aggregate.CurrentStreaksRow
	honours        []aggregate.HonourSeason
	records        aggregate.Records
	hasRecords     bool
	recentForm     map[string]aggregate.RecentFormRow
	metadata       map[string]aggregate.CacheMetadata
}

func NewAggregateStore() *AggregateStore {
	return &AggregateStore{
		seasons:    make(map[int][]aggregate.SeasonRow),
		recentForm: make(map[string]aggregate.RecentFormRow),
		metadata:   make(map[string]aggregate.CacheMetadata),
	}
}

func (s *AggregateStore) AllTime() *AllTimeRepository         { return &AllTimeRepository{store: s} }
func (s *AggregateStore) Season() *SeasonRepository           { return &SeasonRepository{store: s} }
func (s *AggregateStore) MatchReport() *MatchReportRepository { return &MatchReportRepository{store: s} }
func (s *AggregateStore) Honours() *HonoursRepository         { return &HonoursRepository{store: s} }
func (s *AggregateStore) RecentForm() *RecentFormRepository   { return &RecentFormRepository{store: s} }
func (s *AggregateStore) CacheMetadata() *CacheMetadataRepository {
	return &CacheMetadataRepository{store: s}
}

// stamp records a rebuild under the store lock.
func (s *AggregateStore) stamp(key string, at time.Time) {
	s.metadata[key] = aggregate.CacheMetadata{
		Key:             key,
		LastInvalidated: at,
		DependencyType:  aggregate.DependencyTypeFor(key),
	}
}

type AllTimeRepository struct {
	store *AggregateStore
}

func (r *AllTimeRepository) ListStats(context.Context) ([]aggregate.AllTimeRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]aggregate.AllTimeRow(nil), r.store.allTime...), nil
}

func (r *AllTimeRepository) ListHallOfFame(context.Context) ([]aggregate.HallOfFameEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]aggregate.HallOfFameEntry(nil), r.store.hallOfFame...), nil
}

func (r *AllTimeRepository) Replace(_ context.Context, rows []aggregate.AllTimeRow, entries []aggregate.HallOfFameEntry, invalidatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.allTime = append([]aggregate.AllTimeRow(nil), rows...)
	r.store.hallOfFame = append([]aggregate.HallOfFameEntry(nil), entries...)
	r.store.stamp(aggregate.KeyAllTimeStats, invalidatedAt)
	r.store.stamp(aggregate.KeyHallOfFame, invalidatedAt)
	return nil
}

type SeasonRepository struct {
	store *AggregateStore
}

func (r *SeasonRepository) ListHalfSeason(context.Context) ([]aggregate.SeasonRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]aggregate.SeasonRow(nil), r.store.halfSeason...), nil
}

func (r *SeasonRepository) ListSeasons(context.Context) ([]aggregate.SeasonRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []aggregate.SeasonRow
	for _, rows := range r.store.seasons {
		out = append(out, rows...)
	}
	return out, nil
}

func (r *SeasonRepository) ReplaceHalfSeason(_ context.Context, rows []aggregate.SeasonRow, invalidatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.halfSeason = append([]aggregate.SeasonRow(nil), rows...)
	r.store.stamp(aggregate.KeyHalfSeasonStats, invalidatedAt)
	return nil
}

func (r *SeasonRepository) ReplaceSeasons(_ context.Context, years []int, rows []aggregate.SeasonRow, invalidatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, year := range years {
		delete(r.store.seasons, year)
	}
	for _, row := range rows {
		r.store.seasons[row.Year] = append(r.store.seasons[row.Year], row)
	}
	r.store.stamp(aggregate.KeySeasonStats, invalidatedAt)
	return nil
}

type MatchReportRepository struct {
	store *AggregateStore
}

func (r *MatchReportRepository) Get(context.Context) (aggregate.MatchReport, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.report, r.store.hasReport, nil
}

func (r *MatchReportRepository) ListCurrentStreaks(context.Context) ([]aggregate.CurrentStreaksRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]aggregate.CurrentStreaksRow(nil), r.store.currentStreaks...), nil
}

func (r *MatchReportRepository) Replace(_ context.Context, report aggregate.MatchReport, streaks []aggregate.CurrentStreaksRow, invalidatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.report = report
	r.store.hasReport = true
	r.store.currentStreaks = append([]aggregate.CurrentStreaksRow(nil), streaks...)
	r.store.stamp(aggregate.KeyMatchReport, invalidatedAt)
	r.store.stamp(aggregate.KeyCurrentStreaks, invalidatedAt)
	return nil
}

type HonoursRepository struct {
	store *AggregateStore
}

func (r *HonoursRepository) ListHonours(context.Context) ([]aggregate.HonourSeason, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]aggregate.HonourSeason(nil), r.store.honours...), nil
}

func (r *HonoursRepository) GetRecords(context.Context) (aggregate.Records, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.records, r.store.hasRecords, nil
}

func (r *HonoursRepository) Replace(_ context.Context, honours []aggregate.HonourSeason, records aggregate.Records, invalidatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.honours = append([]aggregate.HonourSeason(nil), honours...)
	r.store.records = records
	r.store.hasRecords = true
	r.store.stamp(aggregate.KeySeasonHonours, invalidatedAt)
	r.store.stamp(aggregate.KeyRecords, invalidatedAt)
	return nil
}

type RecentFormRepository struct {
	store *AggregateStore
}

func (r *RecentFormRepository) GetByPlayer(_ context.Context, playerID string) (aggregate.RecentFormRow, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.recentForm[playerID]
	return row, ok, nil
}

func (r *RecentFormRepository) Replace(_ context.Context, rows []aggregate.RecentFormRow, invalidatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.recentForm = make(map[string]aggregate.RecentFormRow, len(rows))
	for _, row := range rows {
		r.store.recentForm[row.PlayerID] = row
	}
	r.store.stamp(aggregate.KeyRecentPerformance, invalidatedAt)
	return nil
}

type CacheMetadataRepository struct {
	store *AggregateStore
}

func (r *CacheMetadataRepository) List(context.Context) ([]aggregate.CacheMetadata, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []aggregate.CacheMetadata
	for _, meta := range r.store.metadata {
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *CacheMetadataRepository) Upsert(_ context.Context, key string, invalidatedAt time.Time, dependencyType string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.metadata[key] = aggregate.CacheMetadata{
		Key:             key,
		LastInvalidated: invalidatedAt,
		DependencyType:  dependencyType,
	}
	return nil
}
