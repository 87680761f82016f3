package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/wire"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Lists reviews still waiting for a reply",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		app, cleanup, err := wire.InitializeApp(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize app services: %w", err)
		}
		defer cleanup()

		reviews, err := app.Store.ListCandidates(ctx, core.CandidateFilter{Limit: statusLimit, UnansweredOnly: true})
		if err != nil {
			return fmt.Errorf("failed to retrieve reviews: %w", err)
		}

		if outputJSON {
			return printJSON(reviews)
		}

		if len(reviews) == 0 {
			successColor.Println("Every review has a reply.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "REVIEW\tPRODUCT\tRATING\tAUTHOR\tCREATED")
		for _, r := range reviews {
			fmt.Fprintf(w, "%d\t%s\t%d/5\t%s\t%s\n",
				r.ID,
				truncate(r.ProductTitle, 40),
				r.Rating,
				r.AuthorName,
				r.CreatedAt.Format(time.RFC822),
			)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	statusCmd.Flags().IntVar(&statusLimit, "limit", core.MaxBatchSize, "Maximum number of reviews to list")
	rootCmd.AddCommand(statusCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
