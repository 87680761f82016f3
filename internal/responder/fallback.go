package responder

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/sevigo/reply-warden/internal/config"
	"github.com/sevigo/reply-warden/internal/core"
)

const defaultProductName = "this product"

type fallbackData struct {
	Product  string
	Customer string
}

// FallbackEngine renders deterministic replies without any network access.
type FallbackEngine struct {
	positive    *template.Template
	negative    *template.Template
	placeholder string

	defaultPositive *template.Template
	defaultNegative *template.Template
}

// NewFallbackEngine parses the configured templates. Blank templates use the
// built-in defaults; templates that do not parse are rejected.
func NewFallbackEngine(tpl config.FallbackTemplates) (*FallbackEngine, error) {
	defaults := config.DefaultVoiceConfig().Fallback

	defPos, err := parseFallback("positive_default", defaults.Positive)
	if err != nil {
		return nil, err
	}
	defNeg, err := parseFallback("negative_default", defaults.Negative)
	if err != nil {
		return nil, err
	}

	e := &FallbackEngine{
		positive:        defPos,
		negative:        defNeg,
		placeholder:     strings.TrimSpace(tpl.CustomerPlaceholder),
		defaultPositive: defPos,
		defaultNegative: defNeg,
	}
	if e.placeholder == "" {
		e.placeholder = defaults.CustomerPlaceholder
	}

	if strings.TrimSpace(tpl.Positive) != "" {
		if e.positive, err = parseFallback("positive", tpl.Positive); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(tpl.Negative) != "" {
		if e.negative, err = parseFallback("negative", tpl.Negative); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseFallback(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid %s fallback template: %w", name, err)
	}
	return tmpl, nil
}

// Render returns a ready-to-post reply for the given sentiment. It never
// returns an empty string.
func (e *FallbackEngine) Render(label core.Sentiment, productTitle, customerName string) string {
	data := fallbackData{
		Product:  strings.TrimSpace(productTitle),
		Customer: strings.TrimSpace(customerName),
	}
	if data.Product == "" {
		data.Product = defaultProductName
	}
	if data.Customer == "" {
		data.Customer = e.placeholder
	}

	tmpl, def := e.negative, e.defaultNegative
	if label == core.Positive {
		tmpl, def = e.positive, e.defaultPositive
	}

	if text := execute(tmpl, data); text != "" {
		return text
	}
	if text := execute(def, data); text != "" {
		return text
	}
	return fmt.Sprintf("Thank you for your review of %s.", data.Product)
}

func execute(tmpl *template.Template, data fallbackData) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
