// Package cmd wires the CLI entry points.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zyralabs/zyra/internal/logger"
	"github.com/zyralabs/zyra/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "zyra",
	Short: "AI interview practice coach",
	Long:  "Zyra — conversational mock-interview coach that escalates question difficulty, probes with follow-ups, and writes a feedback report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func Execute() error {
	// Missing .env is fine; keys may come from the environment directly.
	_ = godotenv.Load()
	logger.Configure("")
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ZYRA_DB env var)")
	rootCmd.PersistentFlags().String("prompts", "", "Path to YAML file overriding prompt templates")

	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ZYRA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
