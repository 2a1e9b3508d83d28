package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/wordbox/internal/session"
	"github.com/abhisek/wordbox/internal/srs"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [category]",
	Short: "Show learning statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if len(args) == 1 {
			return printDeckStats(cmd.Context(), cmd.OutOrStdout(), env, args[0], time.Now())
		}
		return printOverview(cmd.Context(), cmd.OutOrStdout(), env, time.Now())
	},
}

func printOverview(ctx context.Context, w io.Writer, env *appEnv, now time.Time) error {
	stats, err := session.Overview(ctx, env.provider, env.repo, env.policy, now)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-24s  %6s  %8s  %8s  %5s\n", "Deck", "Words", "Learned", "Mastered", "Due")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, s := range stats {
		printSummaryRow(w, s.Category.Label, s.Progress)
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
	printSummaryRow(w, "Total", session.Totals(stats))
	return nil
}

func printSummaryRow(w io.Writer, label string, s srs.Summary) {
	fmt.Fprintf(w, "%-24s  %6d  %8d  %8d  %5d\n", label, s.Total, s.Learned, s.Mastered, s.Due)
}

// printDeckStats prints one deck's summary followed by how many of its
// words sit in each box.
func printDeckStats(ctx context.Context, w io.Writer, env *appEnv, key string, now time.Time) error {
	cat, err := env.category(ctx, key)
	if err != nil {
		return err
	}
	words, err := env.provider.Words(ctx, cat.Key)
	if err != nil {
		return fmt.Errorf("load deck %q: %w", cat.Key, err)
	}
	cards := env.repo.Load(ctx, cat.Key)
	sum := srs.SummarizeWith(env.policy, cat.Key, words, cards, now)

	fmt.Fprintf(w, "%s (%s)\n", cat.Label, cat.Key)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "Words:     %d\n", sum.Total)
	fmt.Fprintf(w, "Learned:   %d (%.0f%%)\n", sum.Learned, sum.LearnedPercent()*100)
	fmt.Fprintf(w, "Mastered:  %d (%.0f%%)\n", sum.Mastered, sum.MasteredPercent()*100)
	fmt.Fprintf(w, "Due now:   %d\n", sum.Due)

	levels := make([]int, len(env.policy.Intervals))
	for _, word := range words {
		lvl := 0
		if c, ok := cards.Lookup(srs.CardID(cat.Key, word.Term())); ok {
			lvl = c.Level
		}
		if lvl < len(levels) {
			levels[lvl]++
		}
	}
	fmt.Fprintln(w)
	for lvl, n := range levels {
		fmt.Fprintf(w, "L%d  %4d  %s\n", lvl, n, strings.Repeat("█", min(n, 40)))
	}
	return nil
}
