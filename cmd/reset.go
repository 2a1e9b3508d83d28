package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [category]",
	Short: "Forget the review state of a deck",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) == 1) {
			return fmt.Errorf("give a category or --all")
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if all {
			return resetAll(cmd.Context(), cmd.OutOrStdout(), env)
		}
		return resetDeck(cmd.Context(), cmd.OutOrStdout(), env, args[0])
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Reset every deck")
}

// resetDeck deletes the stored card state of one deck. The review log is
// kept.
func resetDeck(ctx context.Context, w io.Writer, env *appEnv, key string) error {
	cat, err := env.category(ctx, key)
	if err != nil {
		return err
	}
	if err := env.store.KVRepo().Delete(ctx, env.repo.Key(cat.Key)); err != nil {
		return fmt.Errorf("reset %q: %w", cat.Key, err)
	}
	fmt.Fprintf(w, "Reset %s.\n", cat.Label)
	return nil
}

// resetAll deletes the card state of every deck under the namespace,
// including decks no longer served by any provider.
func resetAll(ctx context.Context, w io.Writer, env *appEnv) error {
	kv := env.store.KVRepo()
	keys, err := kv.Keys(ctx, env.repo.Namespace()+":")
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	for _, k := range keys {
		if err := kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("reset %q: %w", k, err)
		}
		if cat, ok := env.repo.CategoryFromKey(k); ok {
			fmt.Fprintf(w, "Reset %s.\n", cat)
		}
	}
	fmt.Fprintf(w, "Reset %d deck(s).\n", len(keys))
	return nil
}
