package core

import (
	"context"
	"strings"
	"time"
)

// DraftSource tells where the text of a Draft came from.
type DraftSource string

const (
	SourceGenerated DraftSource = "generated"
	SourceFallback  DraftSource = "fallback"
)

// GenerationConfig carries everything the text-generation endpoint needs for one
// request cycle. It is resolved per invocation and never cached.
type GenerationConfig struct {
	APIKey     string
	Model      string
	BrandVoice string
	BaseURL    string
	Timeout    time.Duration
}

// Enabled reports whether a credential is configured.
func (c GenerationConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SettingsProvider resolves the generation settings for a single invocation.
type SettingsProvider interface {
	GenerationConfig(ctx context.Context) (GenerationConfig, error)
}

// Draft is a composed, ready-to-post reply.
type Draft struct {
	Text      string
	Source    DraftSource
	Sentiment Sentiment
}

// ReplyComposer turns a review into reply text. Implementations must always
// return a draft with non-empty text.
type ReplyComposer interface {
	Compose(ctx context.Context, cfg GenerationConfig, review *Review) Draft
}
