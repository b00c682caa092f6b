package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/matchvault/fiveaside/internal/usecase"
)

type recalculateJobRequest struct {
	MatchID string   `json:"matchId" validate:"omitempty,max=64"`
	Jobs    []string `json:"jobs" validate:"omitempty,max=5,unique,dive,oneof=all_time_stats season_stats match_report honours recent_form"`
}

// RunRecalculateJob rebuilds the derived tables after a match has been
// recorded. An empty matchId means "whatever the latest match is"; an empty
// jobs list runs every job.
func (h *Handler) RunRecalculateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateJob")
	defer span.End()

	if h.aggregationService == nil {
		writeError(ctx, w, fmt.Errorf("%w: aggregation service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeRecalculateJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	summary := h.aggregationService.RunJobs(ctx, req.MatchID, req.Jobs)
	if h.queryService != nil {
		h.queryService.Invalidate(ctx)
	}

	if summary.Failed > 0 {
		h.logger.WarnContext(ctx, "recalculation finished with failures",
			"match_id", req.MatchID,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
		)
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func decodeRecalculateJobRequest(r *http.Request) (recalculateJobRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req recalculateJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return recalculateJobRequest{}, nil
		}
		return recalculateJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
