package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/reply-warden/internal/core"
)

var errBusy = errors.New("busy")

type fakeReplier struct {
	result core.Result
	gotID  int64
	calls  int
}

func (f *fakeReplier) Run(_ context.Context, reviewID int64, _ core.Actor) core.Result {
	f.calls++
	f.gotID = reviewID
	return f.result
}

type fakeBatch struct {
	result core.BatchResult
	err    error
}

func (f *fakeBatch) RunNow(context.Context) (core.BatchResult, error) {
	return f.result, f.err
}

func newTestRouter(replier core.ReplyRunner, batch BatchTrigger) http.Handler {
	h := NewReplyHandler(replier, batch, core.Actor{UserID: 1}, errBusy, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Post("/reviews/{reviewID}/reply", h.ReplyToReview)
	r.Post("/replies/batch", h.RunBatch)
	return r
}

func TestReplyToReview(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		outcome    core.Outcome
		wantStatus int
		wantCalled bool
	}{
		{"success", "/reviews/42/reply", core.OutcomeSuccess, http.StatusOK, true},
		{"conflict", "/reviews/42/reply", core.OutcomeConflict, http.StatusConflict, true},
		{"not found", "/reviews/42/reply", core.OutcomeNotFound, http.StatusNotFound, true},
		{"persistence failure", "/reviews/42/reply", core.OutcomePersistenceFailure, http.StatusInternalServerError, true},
		{"zero id reaches runner", "/reviews/0/reply", core.OutcomeInvalidRequest, http.StatusBadRequest, true},
		{"non-numeric id", "/reviews/abc/reply", "", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replier := &fakeReplier{result: core.NewResult(tt.outcome)}
			rec := httptest.NewRecorder()
			newTestRouter(replier, &fakeBatch{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantCalled, replier.calls == 1)

			var body core.Result
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
			if !tt.wantCalled {
				assert.Equal(t, core.OutcomeInvalidRequest, body.Outcome)
			}
		})
	}
}

func TestReplyToReview_PassesID(t *testing.T) {
	replier := &fakeReplier{result: core.NewResult(core.OutcomeSuccess)}
	rec := httptest.NewRecorder()
	newTestRouter(replier, &fakeBatch{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reviews/9001/reply", nil))

	assert.Equal(t, int64(9001), replier.gotID)
	assert.JSONEq(t, `{"outcome":"success","message":"Reply posted."}`, rec.Body.String())
}

func TestRunBatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		batch := &fakeBatch{result: core.BatchResult{
			GeneratedCount: 1,
			Items: []core.ItemOutcome{
				{ReviewID: 3, Outcome: core.OutcomeSuccess},
				{ReviewID: 4, Outcome: core.OutcomePersistenceFailure},
			},
		}}
		rec := httptest.NewRecorder()
		newTestRouter(&fakeReplier{}, batch).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/replies/batch", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"generatedCount":1,"items":[{"reviewId":3,"outcome":"success"},{"reviewId":4,"outcome":"persistence_failure"}]}`, rec.Body.String())
	})

	t.Run("busy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(&fakeReplier{}, &fakeBatch{err: errBusy}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/replies/batch", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("listing failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(&fakeReplier{}, &fakeBatch{err: errors.New("db down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/replies/batch", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusFor(core.OutcomePermissionDenied))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(core.Outcome("unknown")))
}
