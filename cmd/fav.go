package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/wordbox/internal/favorites"
	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite words",
	Long: `Manage favorite words. Favorites are kept as one list across decks and
form the "favorites" deck.`,
}

var favAddCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Add words to the favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			return favAdd(ctx, cmd.OutOrStdout(), env, args)
		})
	},
}

var favRmCmd = &cobra.Command{
	Use:     "rm <word>...",
	Aliases: []string{"remove"},
	Short:   "Remove words from the favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			return favRemove(ctx, cmd.OutOrStdout(), env, args)
		})
	},
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			return favList(ctx, cmd.OutOrStdout(), env)
		})
	},
}

var favClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			if err := env.favs.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Favorites cleared.")
			return nil
		})
	},
}

func init() {
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRmCmd)
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favClearCmd)
}

// favAdd stars each word. Words missing from every deck are still stored
// but reported, since the favorites deck cannot quiz them.
func favAdd(ctx context.Context, w io.Writer, env *appEnv, words []string) error {
	known, err := deckTerms(ctx, env)
	if err != nil {
		return err
	}
	for _, word := range words {
		ok, err := env.favs.Add(ctx, word)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(env.stderr, "warning: skipping blank word\n")
			continue
		}
		norm := favorites.Normalize(word)
		fmt.Fprintf(w, "★ %s\n", norm)
		if !known[norm] {
			fmt.Fprintf(env.stderr, "warning: %q is not in any deck\n", norm)
		}
	}
	return nil
}

func favRemove(ctx context.Context, w io.Writer, env *appEnv, words []string) error {
	for _, word := range words {
		removed, err := env.favs.Remove(ctx, word)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(w, "removed %s\n", favorites.Normalize(word))
		} else {
			fmt.Fprintf(w, "%s is not a favorite\n", favorites.Normalize(word))
		}
	}
	return nil
}

func favList(ctx context.Context, w io.Writer, env *appEnv) error {
	favs, err := env.favs.List(ctx)
	if err != nil {
		return err
	}
	if len(favs) == 0 {
		fmt.Fprintln(w, "No favorites yet.")
		return nil
	}
	words, err := env.provider.Words(ctx, favorites.Category.Key)
	if err != nil {
		return err
	}
	meanings := make(map[string]string, len(words))
	for _, word := range words {
		meanings[favorites.Normalize(word.Word)] = word.Meaning
	}

	fmt.Fprintf(w, "%-24s  %s\n", "Word", "Meaning")
	fmt.Fprintln(w, strings.Repeat("─", 50))
	for _, f := range favs {
		meaning, ok := meanings[f]
		if !ok {
			meaning = "(not in any deck)"
		}
		fmt.Fprintf(w, "%-24s  %s\n", f, meaning)
	}
	return nil
}

// deckTerms returns the normalized words of every deck.
func deckTerms(ctx context.Context, env *appEnv) (map[string]bool, error) {
	cats, err := env.decks.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	terms := make(map[string]bool)
	for _, c := range cats {
		words, err := env.decks.Words(ctx, c.Key)
		if err != nil {
			return nil, fmt.Errorf("load deck %q: %w", c.Key, err)
		}
		for _, w := range words {
			terms[favorites.Normalize(w.Word)] = true
		}
	}
	return terms, nil
}
