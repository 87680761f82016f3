package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sevigo/reply-warden/internal/core"
)

// SettingsProvider serves the generation settings from the loaded Config. The
// brand voice file is re-read on every call so edits apply to the next request
// without a restart.
type SettingsProvider struct {
	cfg    *Config
	logger *slog.Logger
}

// NewSettingsProvider creates a provider backed by cfg.
func NewSettingsProvider(cfg *Config, logger *slog.Logger) core.SettingsProvider {
	return &SettingsProvider{cfg: cfg, logger: logger}
}

// GenerationConfig returns a fresh copy of the generation settings.
func (p *SettingsProvider) GenerationConfig(_ context.Context) (core.GenerationConfig, error) {
	gen := p.cfg.Generation
	if p.cfg.VoiceConfigPath == "" {
		return gen, nil
	}

	voice, err := LoadVoiceConfig(p.cfg.VoiceConfigPath)
	if err != nil {
		if errors.Is(err, ErrVoiceConfigNotFound) {
			p.logger.Warn("voice config file missing, using configured brand voice", "path", p.cfg.VoiceConfigPath)
			return gen, nil
		}
		// Keep the configured settings when the file is broken.
		p.logger.Error("failed to read voice config, using configured brand voice", "path", p.cfg.VoiceConfigPath, "error", err)
		return gen, nil
	}
	if v := strings.TrimSpace(voice.BrandVoice); v != "" {
		gen.BrandVoice = v
	}
	return gen, nil
}
