// Package llm drafts review replies with an external text-generation service.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	"github.com/sevigo/reply-warden/internal/core"
)

// ErrGenerationFailed wraps every reason a generation attempt produced no usable text.
var ErrGenerationFailed = errors.New("reply generation failed")

const (
	defaultTimeout = 20 * time.Second
	temperature    = 0.4
	maxReplyWords  = 90
)

// ReplyRequest is the review content a reply is generated for.
type ReplyRequest struct {
	ProductTitle string
	Rating       int
	ReviewText   string
}

// Generator drafts a reply with the text-generation endpoint. Every failure is
// returned as an error wrapping ErrGenerationFailed.
//
//go:generate mockgen -destination=../../mocks/mock_generator.go -package=mocks . Generator
type Generator interface {
	Generate(ctx context.Context, cfg core.GenerationConfig, req ReplyRequest) (string, error)
}

type openAIGenerator struct {
	prompts    *PromptManager
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGenerator creates a Generator backed by the OpenAI chat completions API.
// Credentials arrive with each call, so a client is built per request.
func NewGenerator(prompts *PromptManager, httpClient *http.Client, logger *slog.Logger) Generator {
	return &openAIGenerator{prompts: prompts, httpClient: httpClient, logger: logger}
}

// Generate issues exactly one chat completion request bounded by cfg.Timeout.
func (g *openAIGenerator) Generate(ctx context.Context, cfg core.GenerationConfig, req ReplyRequest) (string, error) {
	if !cfg.Enabled() {
		return "", fmt.Errorf("%w: no API key configured", ErrGenerationFailed)
	}

	system, user, err := g.buildPrompts(cfg.BrandVoice, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if g.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(g.httpClient))
	}
	client := openai.NewClient(opts...)

	start := time.Now()
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %w", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrGenerationFailed)
	}

	msg := resp.Choices[0].Message
	if raw := msg.RawJSON(); raw != "" && gjson.Get(raw, "content").Type != gjson.String {
		return "", fmt.Errorf("%w: message content is missing or not a string", ErrGenerationFailed)
	}

	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty message content", ErrGenerationFailed)
	}

	g.logger.DebugContext(ctx, "reply generated",
		"model", cfg.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"completion_tokens", resp.Usage.CompletionTokens)
	return text, nil
}

func (g *openAIGenerator) buildPrompts(brandVoice string, req ReplyRequest) (string, string, error) {
	data := ReplyPromptData{
		BrandVoice:   strings.TrimSpace(brandVoice),
		MaxWords:     maxReplyWords,
		ProductTitle: req.ProductTitle,
		Rating:       req.Rating,
		ReviewText:   strings.TrimSpace(req.ReviewText),
	}

	system, err := g.prompts.Render(ReplySystemPrompt, DefaultProvider, data)
	if err != nil {
		return "", "", fmt.Errorf("render system prompt: %w", err)
	}
	user, err := g.prompts.Render(ReplyUserPrompt, DefaultProvider, data)
	if err != nil {
		return "", "", fmt.Errorf("render user prompt: %w", err)
	}
	return system, user, nil
}
