package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/wordbox/internal/favorites"
	"github.com/abhisek/wordbox/internal/vocab"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a deck file and add it to the decks directory",
	Long: `Validate a deck file (.json, .csv or .xlsx). When a decks directory is
configured with --decks or WORDBOX_DECKS the file is copied there, and its
base name becomes the category key unless --name is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		check, _ := cmd.Flags().GetBool("check")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		decksDir := resolveDecksDir(cmd, cfg)
		if check {
			decksDir = ""
		}
		return importDeck(cmd.Context(), cmd.OutOrStdout(), args[0], decksDir, name)
	},
}

func init() {
	importCmd.Flags().String("name", "", "Category key for the imported deck")
	importCmd.Flags().Bool("check", false, "Only validate the file")
}

// importDeck validates path and, when decksDir is set, copies it to
// decksDir/<name><ext>. An existing deck with the same key is replaced.
func importDeck(ctx context.Context, w io.Writer, path, decksDir, name string) error {
	if name == "" {
		name = vocab.CategoryFromPath(path)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if err := checkDeckName(name); err != nil {
		return err
	}
	words, err := vocab.LoadFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d words\n", filepath.Base(path), len(words))

	if decksDir == "" {
		return nil
	}
	if err := os.MkdirAll(decksDir, 0o755); err != nil {
		return fmt.Errorf("create decks dir: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read deck: %w", err)
	}
	if err := removeDeck(decksDir, name); err != nil {
		return err
	}
	dst := filepath.Join(decksDir, name+strings.ToLower(filepath.Ext(path)))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	fmt.Fprintf(w, "Imported as %q (%s)\n", name, dst)
	if builtin, _ := vocab.HasCategory(ctx, vocab.Builtin(), name); builtin {
		fmt.Fprintf(w, "Words are added to the built-in %q deck.\n", name)
	}
	return nil
}

// checkDeckName rejects keys that would not map to a single file directly
// inside the decks directory, and the reserved favorites key.
func checkDeckName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("deck name must not be empty")
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("deck name %q must not contain path separators", name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("deck name %q must not start with a dot", name)
	case name == favorites.Category.Key:
		return fmt.Errorf("deck name %q is reserved", name)
	}
	return nil
}

// removeDeck deletes deck files for key in every supported format so the
// imported file is the one the directory provider serves.
func removeDeck(dir, key string) error {
	for _, ext := range []string{".json", ".csv", ".xlsx"} {
		err := os.Remove(filepath.Join(dir, key+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("replace deck: %w", err)
		}
	}
	return nil
}
