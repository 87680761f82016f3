package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/wire"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Reply to every unanswered review",
	Long: `Reply to every approved product review that has no reply yet, oldest first.

At most BATCH_LIMIT reviews are processed per run. A review that fails is
skipped and reported; the run continues with the next one. Interrupting the
command stops the run after the review in progress.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appInstance, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer cleanup()

	start := time.Now()
	res, err := appInstance.Scheduler.RunNow(ctx)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	if outputJSON {
		return printJSON(res)
	}
	printBatchResult(res, time.Since(start))
	return nil
}

func printBatchResult(res core.BatchResult, elapsed time.Duration) {
	titleColor.Printf("Generated %d replies\n", res.GeneratedCount)
	dimColor.Printf("   %d reviews processed in %s\n", len(res.Items), elapsed.Round(time.Millisecond))

	for _, item := range res.Items {
		if item.Outcome == core.OutcomeSuccess {
			continue
		}
		outcomeColor(item.Outcome).Printf("   review %d: %s\n", item.ReviewID, item.Outcome)
	}
}
