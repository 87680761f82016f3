package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	authorID    int64
	authorName  string
	authorEmail string
	logLevel    string
	outputJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "warden-reply",
	Short: "warden-reply is the command-line interface for reply-warden.",
	Long: `A CLI for replying to customer product reviews without going through the
HTTP API: reply to one review, run a batch over every unanswered review, or list
what is still waiting for a reply.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&authorID, "author-id", 0, "User id stamped on posted replies")
	flags.StringVar(&authorName, "author-name", "", "Display name stamped on posted replies")
	flags.StringVar(&authorEmail, "author-email", "", "Email stamped on posted replies")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&outputJSON, "json", false, "Print results as JSON")

	for key, flag := range map[string]string{
		"REPLY_AUTHOR_ID":    "author-id",
		"REPLY_AUTHOR_NAME":  "author-name",
		"REPLY_AUTHOR_EMAIL": "author-email",
		"LOG_LEVEL":          "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// stdout carries command output.
	if os.Getenv("LOG_OUTPUT") == "" {
		_ = os.Setenv("LOG_OUTPUT", "stderr")
	}
}
