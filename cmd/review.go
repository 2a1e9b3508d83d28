package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/vocab"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// manualReason tags review events recorded from the command line.
const manualReason = "manual"

var reviewCmd = &cobra.Command{
	Use:   "review <category> <word>",
	Short: "Record one review outcome for a word",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, _ := cmd.Flags().GetBool("correct")
		wrong, _ := cmd.Flags().GetBool("wrong")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return applyReview(cmd.Context(), cmd.OutOrStdout(), env, args[0], args[1], correct && !wrong, time.Now())
	},
}

func init() {
	reviewCmd.Flags().Bool("correct", false, "The word was recalled")
	reviewCmd.Flags().Bool("wrong", false, "The word was missed")
	reviewCmd.MarkFlagsMutuallyExclusive("correct", "wrong")
	reviewCmd.MarkFlagsOneRequired("correct", "wrong")
}

// applyReview records one outcome, saves the deck's card store and logs a
// review event. The card must belong to the deck.
func applyReview(ctx context.Context, w io.Writer, env *appEnv, key, term string, correct bool, now time.Time) error {
	cat, err := env.category(ctx, key)
	if err != nil {
		return err
	}
	words, err := env.provider.Words(ctx, cat.Key)
	if err != nil {
		return fmt.Errorf("load deck %q: %w", cat.Key, err)
	}
	word, ok := findWord(words, term)
	if !ok {
		return fmt.Errorf("word %q not in deck %q", term, cat.Key)
	}

	cards := env.repo.Load(ctx, cat.Key)
	cardID := srs.CardID(cat.Key, word.Word)
	levelBefore := 0
	if c, ok := cards.Lookup(cardID); ok {
		levelBefore = c.Level
	}
	card := env.policy.RecordReview(cards, cardID, correct, now)

	if err := env.repo.Save(ctx, cat.Key, cards); err != nil {
		return fmt.Errorf("save cards: %w", err)
	}

	err = env.store.EventRepo().AppendReviewEvent(ctx, store.ReviewEventData{
		SessionID:   uuid.NewString(),
		Category:    cat.Key,
		Word:        word.Word,
		CardID:      cardID,
		Correct:     correct,
		Reason:      manualReason,
		LevelBefore: levelBefore,
		LevelAfter:  card.Level,
		DueAt:       card.DueTime(),
	})
	if err != nil {
		fmt.Fprintf(env.stderr, "warning: %v\n", err)
	}

	result := "wrong"
	if correct {
		result = "correct"
	}
	fmt.Fprintf(w, "%s: %s, level %d -> %d, next review %s\n",
		word.Word, result, levelBefore, card.Level,
		card.DueTime().Local().Format("2006-01-02 15:04"))
	return nil
}

func findWord(words []vocab.Word, term string) (vocab.Word, bool) {
	term = strings.TrimSpace(term)
	for _, w := range words {
		if strings.EqualFold(w.Word, term) {
			return w, true
		}
	}
	return vocab.Word{}, false
}
