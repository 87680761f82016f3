// Package handler provides HTTP handlers for the reply endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sevigo/reply-warden/internal/core"
)

// BatchTrigger runs one batch unless another is already in progress.
type BatchTrigger interface {
	RunNow(ctx context.Context) (core.BatchResult, error)
}

// ReplyHandler serves the single-review and batch reply endpoints.
type ReplyHandler struct {
	replier core.ReplyRunner
	batch   BatchTrigger
	actor   core.Actor
	busyErr error
	logger  *slog.Logger
}

// NewReplyHandler creates a handler that posts replies as actor. Errors from
// the batch trigger matching busyErr are reported as conflicts.
func NewReplyHandler(replier core.ReplyRunner, batch BatchTrigger, actor core.Actor, busyErr error, logger *slog.Logger) *ReplyHandler {
	return &ReplyHandler{
		replier: replier,
		batch:   batch,
		actor:   actor,
		busyErr: busyErr,
		logger:  logger,
	}
}

// ReplyToReview handles POST /reviews/{reviewID}/reply.
func (h *ReplyHandler) ReplyToReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		WriteResult(w, core.NewResult(core.OutcomeInvalidRequest))
		return
	}

	res := h.replier.Run(r.Context(), reviewID, h.actor)
	h.logger.Info("reply request handled", "review_id", reviewID, "outcome", res.Outcome)
	WriteResult(w, res)
}

// RunBatch handles POST /replies/batch.
func (h *ReplyHandler) RunBatch(w http.ResponseWriter, r *http.Request) {
	res, err := h.batch.RunNow(r.Context())
	if err != nil {
		if h.busyErr != nil && errors.Is(err, h.busyErr) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Error("batch reply run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "batch run failed"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// StatusFor maps a reply outcome to its HTTP status code.
func StatusFor(o core.Outcome) int {
	switch o {
	case core.OutcomeSuccess:
		return http.StatusOK
	case core.OutcomePermissionDenied:
		return http.StatusForbidden
	case core.OutcomeInvalidRequest:
		return http.StatusBadRequest
	case core.OutcomeNotFound:
		return http.StatusNotFound
	case core.OutcomeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteResult writes res as JSON with the status matching its outcome.
func WriteResult(w http.ResponseWriter, res core.Result) {
	writeJSON(w, StatusFor(res.Outcome), res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
