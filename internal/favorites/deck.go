package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wordbox/internal/vocab"
)

// Category is the deck that collects favorite words.
var Category = vocab.Category{Key: "favorites", Label: "Favorites"}

type deck struct {
	source vocab.Provider
	store  *Store
}

// Deck returns a Provider with a single "favorites" category holding the
// favorite words found in source, in favorites order. A favorite that no
// deck of source contains is skipped. source must not include the deck
// itself.
func Deck(source vocab.Provider, store *Store) vocab.Provider {
	return &deck{source: source, store: store}
}

func (d *deck) Categories(context.Context) ([]vocab.Category, error) {
	return []vocab.Category{Category}, nil
}

func (d *deck) Words(ctx context.Context, category string) ([]vocab.Word, error) {
	if !strings.EqualFold(category, Category.Key) {
		return nil, fmt.Errorf("%w: %q", vocab.ErrUnknownCategory, category)
	}
	favs, err := d.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return nil, nil
	}

	index, err := d.wordIndex(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]vocab.Word, 0, len(favs))
	for _, f := range favs {
		if w, ok := index[f]; ok {
			words = append(words, w)
		}
	}
	return words, nil
}

// wordIndex maps normalized terms of every source deck to their first entry.
func (d *deck) wordIndex(ctx context.Context) (map[string]vocab.Word, error) {
	cats, err := d.source.Categories(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]vocab.Word)
	for _, c := range cats {
		if strings.EqualFold(c.Key, Category.Key) {
			continue
		}
		ws, err := d.source.Words(ctx, c.Key)
		if errors.Is(err, vocab.ErrUnknownCategory) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load deck %q: %w", c.Key, err)
		}
		for _, w := range ws {
			key := Normalize(w.Word)
			if _, dup := index[key]; !dup {
				index[key] = w
			}
		}
	}
	return index, nil
}
