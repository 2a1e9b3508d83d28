package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the available decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return printCategories(cmd.Context(), cmd.OutOrStdout(), env)
	},
}

func printCategories(ctx context.Context, w io.Writer, env *appEnv) error {
	cats, err := env.provider.Categories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	fmt.Fprintf(w, "%-16s  %-24s  %s\n", "Key", "Label", "Words")
	fmt.Fprintln(w, strings.Repeat("─", 50))
	for _, c := range cats {
		words, err := env.provider.Words(ctx, c.Key)
		if err != nil {
			return fmt.Errorf("load deck %q: %w", c.Key, err)
		}
		fmt.Fprintf(w, "%-16s  %-24s  %d\n", c.Key, c.Label, len(words))
	}
	return nil
}
