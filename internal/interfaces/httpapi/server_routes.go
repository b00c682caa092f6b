package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/stats/all-time", handler.GetAllTimeStats)
	mux.HandleFunc("GET /v1/stats/hall-of-fame", handler.GetHallOfFame)
	mux.HandleFunc("GET /v1/stats/half-season", handler.GetHalfSeasonStats)
	mux.HandleFunc("GET /v1/stats/seasons", handler.GetSeasonStats)
	mux.HandleFunc("GET /v1/stats/streaks/current", handler.GetCurrentStreaks)
	mux.HandleFunc("GET /v1/stats/cache-metadata", handler.GetCacheMetadata)
	mux.HandleFunc("GET /v1/matches/latest/report", handler.GetMatchReport)
	mux.HandleFunc("GET /v1/honours", handler.GetSeasonHonours)
	mux.HandleFunc("GET /v1/records", handler.GetRecords)
	mux.HandleFunc("GET /v1/players/{playerID}/form", handler.GetPlayerRecentForm)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recalculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalculateJob)))
}
