package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/metrics"
)

// BatchJob replies to unanswered candidate reviews sequentially, oldest first.
// A failing item is skipped and recorded; it never aborts the run.
type BatchJob struct {
	store     core.ReviewStore
	guard     *Guard
	persister *Persister
	composer  core.ReplyComposer
	settings  core.SettingsProvider
	limit     int
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewBatchJob creates a BatchJob processing at most limit candidates per run.
// Limits outside 1..core.MaxBatchSize are clamped.
func NewBatchJob(store core.ReviewStore, composer core.ReplyComposer, settings core.SettingsProvider, limit int, m *metrics.Metrics, logger *slog.Logger) *BatchJob {
	if store == nil {
		panic("review store cannot be nil")
	}
	if composer == nil {
		panic("reply composer cannot be nil")
	}
	if settings == nil {
		panic("settings provider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if limit <= 0 || limit > core.MaxBatchSize {
		limit = core.MaxBatchSize
	}
	return &BatchJob{
		store:     store,
		guard:     NewGuard(store),
		persister: NewPersister(store),
		composer:  composer,
		settings:  settings,
		limit:     limit,
		metrics:   m,
		logger:    logger,
	}
}

// Run processes one batch. The only error is a failure to list candidates, in
// which case nothing was processed. Cancelling ctx stops the run between items;
// the item in progress still completes and the partial result is returned.
func (j *BatchJob) Run(ctx context.Context, actor core.Actor) (core.BatchResult, error) {
	res := core.BatchResult{Items: []core.ItemOutcome{}}

	candidates, err := j.store.ListCandidates(ctx, core.CandidateFilter{Limit: j.limit, UnansweredOnly: true})
	if err != nil {
		return res, fmt.Errorf("failed to list candidates: %w", err)
	}
	j.logger.InfoContext(ctx, "starting batch reply run", "candidates", len(candidates), "limit", j.limit)

	cfg := resolveSettings(ctx, j.settings, j.logger)

	for _, review := range candidates {
		if ctx.Err() != nil {
			j.logger.WarnContext(ctx, "batch run cancelled", "processed", len(res.Items), "remaining", len(candidates)-len(res.Items))
			break
		}

		// Items run detached from cancellation; generation keeps its own timeout.
		outcome := j.process(context.WithoutCancel(ctx), cfg, review, actor)
		res.Items = append(res.Items, core.ItemOutcome{ReviewID: review.ID, Outcome: outcome})
		if outcome == core.OutcomeSuccess {
			res.GeneratedCount++
		}
	}

	j.metrics.BatchCompleted(res)
	j.logger.InfoContext(ctx, "batch reply run finished", "generated", res.GeneratedCount, "processed", len(res.Items))
	return res, nil
}

func (j *BatchJob) process(ctx context.Context, cfg core.GenerationConfig, review *core.Review, actor core.Actor) core.Outcome {
	logger := j.logger.With("review_id", review.ID)

	answered, err := j.guard.Answered(ctx, review.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to check existing replies, skipping", "error", err)
		return core.OutcomePersistenceFailure
	}
	if answered {
		return core.OutcomeConflict
	}

	draft := j.composer.Compose(ctx, cfg, review)

	if _, err := j.persister.Post(ctx, review, actor, draft); err != nil {
		if errors.Is(err, core.ErrReplyExists) {
			return core.OutcomeConflict
		}
		logger.ErrorContext(ctx, "failed to save reply, skipping", "error", err)
		return core.OutcomePersistenceFailure
	}

	j.metrics.ReplyPosted(metrics.PathBatch, draft.Source)
	return core.OutcomeSuccess
}

var _ core.BatchRunner = (*BatchJob)(nil)
