package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/wordbox/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		category, _ := cmd.Flags().GetString("category")
		sessions, _ := cmd.Flags().GetBool("sessions")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		opts := store.QueryOpts{Limit: limit, Category: category}
		if sessions {
			return printSessions(cmd.Context(), cmd.OutOrStdout(), env.store.EventRepo(), opts)
		}
		return printReviews(cmd.Context(), cmd.OutOrStdout(), env.store.EventRepo(), opts)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	historyCmd.Flags().String("category", "", "Only show this deck")
	historyCmd.Flags().Bool("sessions", false, "List finished sessions instead of single reviews")
}

func printReviews(ctx context.Context, w io.Writer, events store.EventRepo, opts store.QueryOpts) error {
	records, err := events.QueryReviewEvents(ctx, opts)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No reviews found.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-14s  %-20s  %-7s  %-6s  %s\n",
		"Seq", "Timestamp", "Deck", "Word", "Result", "Level", "Reason")
	fmt.Fprintln(w, strings.Repeat("─", 90))
	for _, r := range records {
		result := "✓"
		if !r.Correct {
			result = "✗"
		}
		word := r.Word
		if len(word) > 20 {
			word = word[:20]
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-14s  %-20s  %-7s  %d→%d    %s\n",
			r.Sequence,
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.Category,
			word,
			result,
			r.LevelBefore, r.LevelAfter,
			r.Reason,
		)
	}
	return nil
}

func printSessions(ctx context.Context, w io.Writer, events store.EventRepo, opts store.QueryOpts) error {
	records, err := events.QuerySessionSummaries(ctx, opts)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	fmt.Fprintf(w, "%-19s  %-14s  %9s  %7s  %8s\n", "Ended", "Deck", "Questions", "Correct", "Duration")
	fmt.Fprintln(w, strings.Repeat("─", 66))
	for _, s := range records {
		fmt.Fprintf(w, "%-19s  %-14s  %9d  %7d  %7ds\n",
			s.Timestamp.Local().Format("2006-01-02 15:04:05"),
			s.Category,
			s.QuestionsServed,
			s.CorrectAnswers,
			s.DurationSecs,
		)
	}
	return nil
}
