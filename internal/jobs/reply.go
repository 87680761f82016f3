package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/metrics"
)

// ReplyJob handles one on-demand reply request. Its steps run in order:
// validate the id, load the review, check for an existing reply, compose the
// draft and persist it. Every exit maps to exactly one core.Outcome.
type ReplyJob struct {
	store     core.ReviewStore
	guard     *Guard
	persister *Persister
	composer  core.ReplyComposer
	settings  core.SettingsProvider
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewReplyJob creates a ReplyJob. A nil metrics collector is allowed.
func NewReplyJob(store core.ReviewStore, composer core.ReplyComposer, settings core.SettingsProvider, m *metrics.Metrics, logger *slog.Logger) *ReplyJob {
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
	return &ReplyJob{
		store:     store,
		guard:     NewGuard(store),
		persister: NewPersister(store),
		composer:  composer,
		settings:  settings,
		metrics:   m,
		logger:    logger,
	}
}

// Run replies to reviewID on behalf of actor.
func (j *ReplyJob) Run(ctx context.Context, reviewID int64, actor core.Actor) core.Result {
	res := j.run(ctx, reviewID, actor)
	j.metrics.SingleOutcome(res.Outcome)
	return res
}

func (j *ReplyJob) run(ctx context.Context, reviewID int64, actor core.Actor) core.Result {
	if reviewID <= 0 {
		return core.NewResult(core.OutcomeInvalidRequest)
	}
	logger := j.logger.With("review_id", reviewID)

	review, err := j.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, core.ErrReviewNotFound) {
			return core.NewResult(core.OutcomeNotFound)
		}
		logger.ErrorContext(ctx, "failed to load review", "error", err)
		return core.NewResult(core.OutcomePersistenceFailure)
	}
	if !review.IsProductReview() {
		logger.InfoContext(ctx, "rejecting reply to non-product review", "kind", review.Kind, "product_type", review.ProductType)
		return core.NewResult(core.OutcomeNotFound)
	}

	answered, err := j.guard.Answered(ctx, reviewID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to check existing replies", "error", err)
		return core.NewResult(core.OutcomePersistenceFailure)
	}
	if answered {
		return core.NewResult(core.OutcomeConflict)
	}

	cfg := resolveSettings(ctx, j.settings, logger)
	draft := j.composer.Compose(ctx, cfg, review)

	reply, err := j.persister.Post(ctx, review, actor, draft)
	if err != nil {
		if errors.Is(err, core.ErrReplyExists) {
			logger.InfoContext(ctx, "reply was created concurrently")
			return core.NewResult(core.OutcomeConflict)
		}
		logger.ErrorContext(ctx, "failed to save reply", "error", err)
		return core.NewResult(core.OutcomePersistenceFailure)
	}

	j.metrics.ReplyPosted(metrics.PathSingle, draft.Source)
	logger.InfoContext(ctx, "reply posted", "reply_id", reply.ID, "source", draft.Source, "sentiment", draft.Sentiment)
	return core.NewResult(core.OutcomeSuccess)
}

// resolveSettings fetches the generation settings for one invocation. A failure
// disables generation so composition falls back to templates.
func resolveSettings(ctx context.Context, settings core.SettingsProvider, logger *slog.Logger) core.GenerationConfig {
	cfg, err := settings.GenerationConfig(ctx)
	if err != nil {
		logger.WarnContext(ctx, "failed to resolve generation settings, generation disabled", "error", err)
		return core.GenerationConfig{}
	}
	return cfg
}

var _ core.ReplyRunner = (*ReplyJob)(nil)
