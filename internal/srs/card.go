package srs

import (
	"strings"
	"time"
)

// Card holds the review state for one word in one category.
// Timestamps are Unix milliseconds so the persisted form stays a plain
// number.
type Card struct {
	Level          int    `json:"level"`
	DueAt          int64  `json:"dueAt"`
	Attempts       int    `json:"attempts"`
	Correct        int    `json:"correct"`
	Streak         int    `json:"streak"`
	LastReviewedAt *int64 `json:"lastReviewedAt"`
}

// CardID builds the store key for a word in a category. Both parts are
// lowercased so lookups are case-insensitive.
func CardID(category, word string) string {
	return strings.ToLower(category + "::" + word)
}

// Untouched reports whether the card has never been reviewed.
func (c *Card) Untouched() bool {
	return c.Attempts == 0
}

// IsDue returns true if the card has been reviewed at least once and its due
// time is at or before now.
func (c *Card) IsDue(now time.Time) bool {
	return c.Attempts > 0 && c.DueAt <= now.UnixMilli()
}

// DueTime returns DueAt as a time.Time.
func (c *Card) DueTime() time.Time {
	return time.UnixMilli(c.DueAt)
}

// LastReviewed returns the last review time and whether there was one.
func (c *Card) LastReviewed() (time.Time, bool) {
	if c.LastReviewedAt == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*c.LastReviewedAt), true
}

// Accuracy returns correct/attempts, or 0 for an untouched card.
func (c *Card) Accuracy() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempts)
}

// valid checks the card invariants. Used when loading persisted state.
func (c *Card) valid() bool {
	switch {
	case c.Level < 0 || c.Level > MaxLevel:
		return false
	case c.Attempts < 0 || c.Correct < 0 || c.Streak < 0:
		return false
	case c.Correct > c.Attempts || c.Streak > c.Attempts:
		return false
	case c.Attempts == 0 && (c.Level != 0 || c.DueAt != 0):
		return false
	}
	return true
}

// CardStore maps card IDs to cards for a single category. Entries are
// created on first access and never removed.
type CardStore map[string]*Card

// NewCardStore returns an empty store.
func NewCardStore() CardStore {
	return make(CardStore)
}

// GetOrCreate returns the card for id, inserting a zero-state card if none
// exists yet.
func (s CardStore) GetOrCreate(id string) *Card {
	if c, ok := s[id]; ok && c != nil {
		return c
	}
	c := &Card{}
	s[id] = c
	return c
}

// Lookup returns the card for id without creating it.
func (s CardStore) Lookup(id string) (*Card, bool) {
	c, ok := s[id]
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}
