package vocab

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Word is one entry of a deck.
type Word struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Phonetic string `json:"phonetic,omitempty"`
	Audio    string `json:"audio,omitempty"`
}

// Term returns the headword. It makes Word usable as an srs.Candidate.
func (w Word) Term() string {
	return w.Word
}

// Category names a deck.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Provider supplies decks. Word order is significant: it is the tie-break
// order used by the scheduler.
type Provider interface {
	// Categories lists the available decks in display order.
	Categories(ctx context.Context) ([]Category, error)

	// Words returns the words of one deck.
	Words(ctx context.Context, category string) ([]Word, error)
}

// ErrUnknownCategory is returned when a provider has no deck with the
// requested key.
var ErrUnknownCategory = errors.New("unknown category")

// ErrUnsupportedFormat is returned for deck files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported deck format")

// DeckError reports a problem in a deck file, with the row when known.
type DeckError struct {
	File string
	Row  int // 1-based; 0 when the error is not tied to a row
	Err  error
}

func (e *DeckError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("deck %s row %d: %v", e.File, e.Row, e.Err)
	}
	return fmt.Sprintf("deck %s: %v", e.File, e.Err)
}

func (e *DeckError) Unwrap() error {
	return e.Err
}

// normalize trims fields, drops entries without a word or meaning and
// removes case-insensitive duplicates, keeping the first occurrence.
func normalize(words []Word) []Word {
	seen := make(map[string]bool, len(words))
	out := make([]Word, 0, len(words))
	for _, w := range words {
		w.Word = strings.TrimSpace(w.Word)
		w.Meaning = strings.TrimSpace(w.Meaning)
		w.Phonetic = strings.TrimSpace(w.Phonetic)
		w.Audio = strings.TrimSpace(w.Audio)
		if w.Word == "" || w.Meaning == "" {
			continue
		}
		key := strings.ToLower(w.Word)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}

// labelFor derives a display label from a category key.
func labelFor(key string) string {
	switch strings.ToLower(key) {
	case "it":
		return "IT"
	case "":
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
