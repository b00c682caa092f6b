package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchvault/fiveaside/internal/infrastructure/repository/memory"
	"github.com/matchvault/fiveaside/internal/platform/cache"
	"github.com/matchvault/fiveaside/internal/platform/logging"
	"github.com/matchvault/fiveaside/internal/usecase"
)

const testJobToken = "test-job-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	players := memory.SeedPlayers()
	matches, participations := memory.SeedMatches()

	configRepo := memory.NewAppConfigRepository(memory.SeedConfig())
	playerRepo := memory.NewPlayerRepository(players)
	matchRepo := memory.NewMatchRepository(players, matches, participations)
	store := memory.NewAggregateStore()

	allTime := usecase.NewAllTimeStatsService(configRepo, playerRepo, matchRepo, store.AllTime(), logger)
	season := usecase.NewSeasonStatsService(configRepo, playerRepo, matchRepo, store.Season(), logger)
	report := usecase.NewMatchReportService(configRepo, playerRepo, matchRepo, store.MatchReport(), logger)
	honours := usecase.NewHonoursService(configRepo, playerRepo, matchRepo, store.Honours(), logger)
	recentForm := usecase.NewRecentFormService(configRepo, playerRepo, matchRepo, store.RecentForm(), nil, 10, logger)
	aggregation := usecase.NewAggregationService(allTime, season, report, honours, recentForm, logger)

	queries := usecase.NewStatsQueryService(
		store.AllTime(),
		store.Season(),
		store.MatchReport(),
		store.Honours(),
		store.RecentForm(),
		store.CacheMetadata(),
		cache.NewStore(time.Minute, cache.DefaultTTLs()),
		logger,
	)

	handler := NewHandler(queries, aggregation, logger)
	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_MatchReportBeforeRecalculation(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/latest/report", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 before any recalculation, got %d", rec.Code)
	}
}

func TestRouter_RecalculateRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}
}

func TestRouter_RecalculateThenRead(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from recalculate, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected run summary in data, got %v", body)
	}
	if failed, _ := data["failed"].(float64); failed != 0 {
		t.Fatalf("expected zero failed jobs, got %v: %v", data["failed"], data["jobs"])
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stats/all-time", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from all-time stats, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	rows, ok := body["data"].([]any)
	if !ok || len(rows) == 0 {
		t.Fatalf("expected non-empty all-time stats, got %v", body["data"])
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/latest/report", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from match report after recalculation, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/pl-ana/form", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from recent form, got %d: %s", rec.Code, rec.Body.String())
	}
	body = decodeEnvelope(t, rec)
	form, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected form row in data, got %v", body)
	}
	if got, _ := form["playerId"].(string); got != "pl-ana" {
		t.Fatalf("expected playerId pl-ana, got %v", form["playerId"])
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stats/cache-metadata", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from cache metadata, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	entries, ok := body["data"].([]any)
	if !ok || len(entries) == 0 {
		t.Fatalf("expected cache metadata rows after recalculation, got %v", body["data"])
	}
}

func TestRouter_RecalculateWithJobSelection(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate",
		strings.NewReader(`{"jobs":["match_report","all_time_stats"]}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected run summary in data, got %v", body)
	}
	jobs, ok := data["jobs"].([]any)
	if !ok || len(jobs) != 2 {
		t.Fatalf("expected 2 jobs in summary, got %v", data["jobs"])
	}
}

func TestRouter_RecalculateRejectsUnknownJob(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate",
		strings.NewReader(`{"jobs":["drop_everything"]}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown job, got %d", rec.Code)
	}
}

func TestRouter_RecalculateRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", strings.NewReader(`{"force":true}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", rec.Code)
	}
}
