package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/vocab"
)

// DeckStat is the progress of one deck.
type DeckStat struct {
	Category vocab.Category
	Progress srs.Summary
}

// Overview summarizes every deck served by provider, in provider order.
// A nil repo treats every deck as untouched.
func Overview(ctx context.Context, provider vocab.Provider, repo *srs.Repo, policy srs.Policy, now time.Time) ([]DeckStat, error) {
	cats, err := provider.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if policy.Intervals == nil {
		policy = srs.DefaultPolicy()
	}

	stats := make([]DeckStat, 0, len(cats))
	for _, c := range cats {
		words, err := provider.Words(ctx, c.Key)
		if err != nil {
			return nil, fmt.Errorf("load deck %q: %w", c.Key, err)
		}
		cards := srs.NewCardStore()
		if repo != nil {
			cards = repo.Load(ctx, c.Key)
		}
		stats = append(stats, DeckStat{
			Category: c,
			Progress: srs.SummarizeWith(policy, c.Key, words, cards, now),
		})
	}
	return stats, nil
}

// Totals adds up the progress of several decks.
func Totals(stats []DeckStat) srs.Summary {
	var sum srs.Summary
	for _, s := range stats {
		sum.Total += s.Progress.Total
		sum.Learned += s.Progress.Learned
		sum.Mastered += s.Progress.Mastered
		sum.Due += s.Progress.Due
	}
	return sum
}
