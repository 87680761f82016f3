package responder

import (
	"context"
	"log/slog"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/llm"
	"github.com/sevigo/reply-warden/internal/metrics"
)

// Composer drafts replies with the generator first and the fallback templates
// second. Generation failures never leave Compose.
type Composer struct {
	generator  llm.Generator
	classifier *Classifier
	fallback   *FallbackEngine
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewComposer creates a Composer. A nil metrics collector is allowed.
func NewComposer(generator llm.Generator, classifier *Classifier, fallback *FallbackEngine, m *metrics.Metrics, logger *slog.Logger) core.ReplyComposer {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if classifier == nil || fallback == nil {
		panic("classifier and fallback engine cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Composer{generator: generator, classifier: classifier, fallback: fallback, metrics: m, logger: logger}
}

// Compose returns a draft whose text is never empty.
func (c *Composer) Compose(ctx context.Context, cfg core.GenerationConfig, review *core.Review) core.Draft {
	label := c.classifier.Classify(review.Rating, review.Body)

	if cfg.Enabled() {
		text, err := c.generator.Generate(ctx, cfg, llm.ReplyRequest{
			ProductTitle: review.ProductTitle,
			Rating:       review.Rating,
			ReviewText:   review.Body,
		})
		if err == nil && text != "" {
			return core.Draft{Text: text, Source: core.SourceGenerated, Sentiment: label}
		}
		c.metrics.GenerationFailed()
		c.logger.WarnContext(ctx, "generation failed, using fallback reply", "review_id", review.ID, "error", err)
	}

	return core.Draft{
		Text:      c.fallback.Render(label, review.ProductTitle, review.AuthorName),
		Source:    core.SourceFallback,
		Sentiment: label,
	}
}
