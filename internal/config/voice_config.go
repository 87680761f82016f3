package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrVoiceConfigNotFound = errors.New("voice config file not found")
	ErrVoiceConfigParsing  = errors.New("voice config parsing failed")
)

// VoiceConfig is the structure of the optional voice YAML file. It holds the
// localizable parts of reply composition.
type VoiceConfig struct {
	// Brand voice guidance folded into the generation prompt.
	BrandVoice string `yaml:"brand_voice"`

	// Lower-case substrings that mark a review as negative regardless of rating.
	NegativeKeywords []string `yaml:"negative_keywords"`

	Fallback FallbackTemplates `yaml:"fallback"`
}

// FallbackTemplates are text/template strings rendered with .Product and .Customer.
type FallbackTemplates struct {
	Positive            string `yaml:"positive"`
	Negative            string `yaml:"negative"`
	CustomerPlaceholder string `yaml:"customer_placeholder"`
}

// DefaultNegativeKeywords is the English keyword set.
func DefaultNegativeKeywords() []string {
	return []string{"bad", "poor", "broken", "slow", "terrible", "disappointed", "refund", "not happy", "awful"}
}

// DefaultVoiceConfig returns a config with default values.
func DefaultVoiceConfig() *VoiceConfig {
	return &VoiceConfig{
		NegativeKeywords: DefaultNegativeKeywords(),
		Fallback: FallbackTemplates{
			Positive:            "Hi {{.Customer}}, thanks so much for your kind review of {{.Product}}. We really appreciate you taking the time to share your experience, and it means a lot to our team.",
			Negative:            "Hi {{.Customer}}, thanks for your feedback on {{.Product}}. We're sorry your experience wasn't perfect. Please contact our support team so we can make this right.",
			CustomerPlaceholder: "there",
		},
	}
}

// LoadVoiceConfig loads and parses the voice YAML file. Fields missing from the
// file keep their defaults. A missing file yields the defaults together with
// ErrVoiceConfigNotFound.
func LoadVoiceConfig(path string) (*VoiceConfig, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultVoiceConfig(), ErrVoiceConfigNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultVoiceConfig(), ErrVoiceConfigNotFound
		}
		return nil, fmt.Errorf("failed to read voice config %s: %w", path, err)
	}

	cfg := DefaultVoiceConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVoiceConfigParsing, err)
	}
	if len(cfg.NegativeKeywords) == 0 {
		cfg.NegativeKeywords = DefaultNegativeKeywords()
	}
	return cfg, nil
}
