package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/ui/layout"
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next <category>",
	Short: "Show the word that would be reviewed next",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		now := time.Now()
		rnd := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
		return printNext(cmd.Context(), cmd.OutOrStdout(), env, args[0], now, rnd)
	},
}

func printNext(ctx context.Context, w io.Writer, env *appEnv, key string, now time.Time, rnd srs.RandomSource) error {
	cat, err := env.category(ctx, key)
	if err != nil {
		return err
	}
	words, err := env.provider.Words(ctx, cat.Key)
	if err != nil {
		return fmt.Errorf("load deck %q: %w", cat.Key, err)
	}
	cards := env.repo.Load(ctx, cat.Key)

	sel := srs.SelectNext(cat.Key, words, cards, now, rnd)
	if !sel.Found() {
		fmt.Fprintf(w, "Deck %q has no words.\n", cat.Key)
		return nil
	}

	word := *sel.Chosen
	fmt.Fprintf(w, "%s  [%s]\n", word.Word, sel.Reason)
	fmt.Fprintf(w, "  %s\n", word.Meaning)
	if word.Phonetic != "" {
		fmt.Fprintf(w, "  %s\n", word.Phonetic)
	}
	cardID := srs.CardID(cat.Key, word.Word)
	c, ok := cards.Lookup(cardID)
	if !ok || c.Untouched() {
		return nil
	}
	fmt.Fprintf(w, "  level %d, %d/%d correct (%.0f%%), due %s\n",
		c.Level, c.Correct, c.Attempts, c.Accuracy()*100,
		c.DueTime().Local().Format("2006-01-02 15:04"))
	if last, ok := c.LastReviewed(); ok {
		fmt.Fprintf(w, "  last reviewed %s ago\n", layout.FormatInterval(now.Sub(last)))
	}
	acc, n, err := env.store.EventRepo().CardAccuracy(ctx, cardID)
	if err != nil {
		fmt.Fprintf(env.stderr, "warning: %v\n", err)
	} else if n > c.Attempts {
		// The log outlives resets, so it can know more answers than the card.
		fmt.Fprintf(w, "  all-time %.0f%% over %d answers\n", acc*100, n)
	}
	return nil
}
