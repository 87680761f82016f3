package main

import (
	"encoding/json"
	"os"

	"github.com/fatih/color"

	"github.com/sevigo/reply-warden/internal/core"
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

// outcomeColor picks the color an outcome is printed in.
func outcomeColor(o core.Outcome) *color.Color {
	switch o {
	case core.OutcomeSuccess:
		return successColor
	case core.OutcomeConflict, core.OutcomeNotFound:
		return warnColor
	default:
		return errorColor
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
