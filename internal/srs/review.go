package srs

import "time"

// RecordReview applies one review outcome to the card with the given id using
// the default policy. See Policy.RecordReview.
func RecordReview(store CardStore, cardID string, correct bool, now time.Time) Card {
	return DefaultPolicy().RecordReview(store, cardID, correct, now)
}

// RecordReview updates the card after a review and returns a copy of the
// updated state. A correct answer moves the card up one box, a miss moves it
// down one box; the level never leaves [0, top level]. The card is due again
// after the interval of its new level, so a card that drops to level 0 is
// due immediately.
//
// RecordReview does not persist anything; callers save the store afterwards.
func (p Policy) RecordReview(store CardStore, cardID string, correct bool, now time.Time) Card {
	c := store.GetOrCreate(cardID)

	ts := now.UnixMilli()
	c.Attempts++
	c.LastReviewedAt = &ts

	if correct {
		c.Correct++
		c.Streak++
		c.Level = min(c.Level+1, p.maxLevel())
	} else {
		c.Streak = 0
		c.Level = max(c.Level-1, 0)
	}

	c.DueAt = now.Add(p.Interval(c.Level)).UnixMilli()

	out := *c
	lr := ts
	out.LastReviewedAt = &lr
	return out
}
