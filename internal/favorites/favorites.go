// Package favorites keeps the learner's starred words and serves them as a
// deck of their own.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/wordbox/internal/srs"
)

// DefaultKey is the storage key of the favorites list. It sits outside the
// card-store namespace, so resetting decks keeps favorites.
const DefaultKey = "vocab-favorites"

// Store is a list of favorite words persisted as one JSON array.
// Words are kept normalized and in the order they were added.
type Store struct {
	kv  srs.KeyValueStore
	key string
}

// New returns a Store saving under DefaultKey.
func New(kv srs.KeyValueStore) *Store {
	return &Store{kv: kv, key: DefaultKey}
}

// Normalize trims and lowercases a word.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// List returns the favorites. A missing or unreadable payload is an empty
// list; backend read errors are returned.
func (s *Store) List(ctx context.Context) ([]string, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var words []string
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		return nil, nil
	}
	return words, nil
}

// Contains reports whether word is a favorite.
func (s *Store) Contains(ctx context.Context, word string) (bool, error) {
	words, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(words, Normalize(word)), nil
}

// Add appends word unless it is blank or already present. It reports
// whether word is a favorite afterwards.
func (s *Store) Add(ctx context.Context, word string) (bool, error) {
	w := Normalize(word)
	if w == "" {
		return false, nil
	}
	words, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(words, w) {
		return true, nil
	}
	return true, s.save(ctx, append(words, w))
}

// Remove deletes word. It reports whether word was a favorite.
func (s *Store) Remove(ctx context.Context, word string) (bool, error) {
	w := Normalize(word)
	words, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	i := slices.Index(words, w)
	if i < 0 {
		return false, nil
	}
	return true, s.save(ctx, slices.Delete(words, i, i+1))
}

// Toggle adds word when absent and removes it otherwise. It returns the
// new state.
func (s *Store) Toggle(ctx context.Context, word string) (bool, error) {
	on, err := s.Contains(ctx, word)
	if err != nil {
		return false, err
	}
	if on {
		_, err = s.Remove(ctx, word)
		return false, err
	}
	return s.Add(ctx, word)
}

// Clear empties the list.
func (s *Store) Clear(ctx context.Context) error {
	return s.save(ctx, []string{})
}

func (s *Store) save(ctx context.Context, words []string) error {
	if words == nil {
		words = []string{}
	}
	b, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
