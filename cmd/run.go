package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/wordbox/internal/app"
	"github.com/abhisek/wordbox/internal/config"
	"github.com/abhisek/wordbox/internal/favorites"
	"github.com/abhisek/wordbox/internal/screens/learn"
	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/vocab"
	"github.com/spf13/cobra"
)

// appEnv holds what the commands share: config, store, decks and the
// card repository.
type appEnv struct {
	cfg      config.Config
	store    *store.Store
	provider vocab.Provider
	decks    vocab.Provider // provider without the favorites deck
	favs     *favorites.Store
	repo     *srs.Repo
	policy   srs.Policy
	decksDir string
	stderr   io.Writer
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openEnv loads the config and opens the store. Callers must Close it.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	env := newEnv(cfg, st, resolveDecksDir(cmd, cfg))
	env.stderr = cmd.ErrOrStderr()
	return env, nil
}

func newEnv(cfg config.Config, st *store.Store, decksDir string) *appEnv {
	decks := vocab.Builtin()
	if decksDir != "" {
		decks = vocab.Merge(decks, vocab.Dir(decksDir))
	}
	favs := favorites.New(st.KVRepo())
	return &appEnv{
		cfg:      cfg,
		store:    st,
		provider: vocab.Merge(decks, favorites.Deck(decks, favs)),
		decks:    decks,
		favs:     favs,
		repo:     srs.NewRepo(st.KVRepo(), cfg.Namespace),
		policy:   cfg.Policy(),
		decksDir: decksDir,
		stderr:   os.Stderr,
	}
}

func (e *appEnv) Close() error {
	return e.store.Close()
}

func (e *appEnv) deps() learn.Deps {
	return learn.Deps{
		Provider:   e.provider,
		Repo:       e.repo,
		Events:     e.store.EventRepo(),
		Favorites:  e.favs,
		Policy:     e.policy,
		DailyCount: e.cfg.DailyCount,
	}
}

// category resolves a deck key case-insensitively.
func (e *appEnv) category(ctx context.Context, key string) (vocab.Category, error) {
	cats, err := e.provider.Categories(ctx)
	if err != nil {
		return vocab.Category{}, fmt.Errorf("list categories: %w", err)
	}
	for _, c := range cats {
		if strings.EqualFold(c.Key, key) {
			return c, nil
		}
	}
	return vocab.Category{}, fmt.Errorf("%w: %q", vocab.ErrUnknownCategory, key)
}

// withEnv runs fn with an open environment.
func withEnv(cmd *cobra.Command, fn func(context.Context, *appEnv) error) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(cmd.Context(), env)
}

// runApp opens the store, builds dependencies, and launches the TUI.
// A non-empty category starts a session on that deck directly.
func runApp(cmd *cobra.Command, category string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	opts := app.Options{Deps: env.deps()}
	if category != "" {
		c, err := env.category(cmd.Context(), category)
		if err != nil {
			return err
		}
		opts.StartCategory = &c
	}
	return app.Run(opts)
}
