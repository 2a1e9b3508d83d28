package cmd

import (
	"github.com/abhisek/wordbox/internal/config"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordbox",
	Short: "Spaced-repetition vocabulary trainer",
	Long:  "wordbox: terminal flashcards scheduled with Leitner boxes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDBOX_DB env var)")
	rootCmd.PersistentFlags().String("decks", "", "Directory of deck files (overrides WORDBOX_DECKS env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then WORDBOX_DB (from the environment or .env), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveDecksDir returns --decks, then WORDBOX_DECKS. Empty means only the
// built-in decks are served.
func resolveDecksDir(cmd *cobra.Command, cfg config.Config) string {
	if d, _ := cmd.Flags().GetString("decks"); d != "" {
		return d
	}
	return cfg.DecksDir
}
