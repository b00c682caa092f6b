package httpapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/matchvault/fiveaside/internal/platform/logging"
	"github.com/matchvault/fiveaside/internal/usecase"
)

type Handler struct {
	queryService       *usecase.StatsQueryService
	aggregationService *usecase.AggregationService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	queryService *usecase.StatsQueryService,
	aggregationService *usecase.AggregationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		queryService:       queryService,
		aggregationService: aggregationService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetAllTimeStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAllTimeStats")
	defer span.End()

	rows, err := h.queryService.AllTimeStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get all-time stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerStatsDTO{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Stats:    statLineToDTO(row.Stats),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetHallOfFame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHallOfFame")
	defer span.End()

	entries, err := h.queryService.HallOfFame(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get hall of fame failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]hallOfFameEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, hallOfFameEntryDTO{
			Category: string(e.Category),
			PlayerID: e.PlayerID,
			Name:     e.Name,
			Value:    e.Value,
			Rank:     e.Rank,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetHalfSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHalfSeasonStats")
	defer span.End()

	rows, err := h.queryService.HalfSeasonStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get half-season stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, seasonRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStats")
	defer span.End()

	rows, err := h.queryService.SeasonStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get season stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, seasonRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchReport")
	defer span.End()

	report, err := h.queryService.MatchReport(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get match report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchReportToDTO(report))
}

func (h *Handler) GetCurrentStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentStreaks")
	defer span.End()

	rows, err := h.queryService.CurrentStreaks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current streaks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]currentStreaksDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, currentStreaksDTO{
			PlayerID:             row.PlayerID,
			Name:                 row.Name,
			WinStreak:            row.WinStreak,
			LossStreak:           row.LossStreak,
			UnbeatenStreak:       row.UnbeatenStreak,
			WinlessStreak:        row.WinlessStreak,
			ScoringStreak:        row.ScoringStreak,
			GoalsInScoringStreak: row.GoalsInScoringStreak,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeasonHonours(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonHonours")
	defer span.End()

	honours, err := h.queryService.Honours(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get season honours failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]honourSeasonDTO, 0, len(honours))
	for _, item := range honours {
		items = append(items, honourSeasonToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRecords")
	defer span.End()

	records, err := h.queryService.Records(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get records failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recordsToDTO(records))
}

func (h *Handler) GetPlayerRecentForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerRecentForm")
	defer span.End()

	playerID := r.PathValue("playerID")
	row, err := h.queryService.RecentForm(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get recent form failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recentFormToDTO(row))
}

func (h *Handler) GetCacheMetadata(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCacheMetadata")
	defer span.End()

	entries, err := h.queryService.CacheMetadata(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get cache metadata failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]cacheMetadataDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, cacheMetadataDTO{
			Key:                e.Key,
			LastInvalidatedUTC: e.LastInvalidated.UTC().Format(time.RFC3339),
			DependencyType:     e.DependencyType,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
