package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/wire"
)

var replyCmd = &cobra.Command{
	Use:   "reply [review-id]",
	Short: "Compose and post a reply to a single review",
	Long: `Compose and post a reply to a single customer review.

The reply is generated when an API key is configured and falls back to the
sentiment-matched template otherwise. A review that already has a reply is
left untouched.

Examples:
  warden-reply reply 1234
  warden-reply reply --author-name "Support Team" 1234`,
	Args: cobra.ExactArgs(1),
	RunE: runReply,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(replyCmd)
}

func runReply(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	var res core.Result
	reviewID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		res = core.NewResult(core.OutcomeInvalidRequest)
	} else {
		appInstance, cleanup, err := wire.InitializeApp(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		defer cleanup()

		res = appInstance.Replier.Run(ctx, reviewID, appInstance.Cfg.Actor)
	}

	if outputJSON {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		outcomeColor(res.Outcome).Printf("%s (%s)\n", res.Message, res.Outcome)
	}

	if !res.OK() {
		return fmt.Errorf("review %s: %s", args[0], res.Outcome)
	}
	return nil
}
