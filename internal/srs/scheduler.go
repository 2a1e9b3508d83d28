package srs

import "time"

// Candidate is a word that can be scheduled. The scheduler only needs the
// headword; everything else about the word is opaque to it.
type Candidate interface {
	Term() string
}

// RandomSource picks an index in [0, n). *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Reason explains which tier of the selection policy produced a pick.
type Reason string

const (
	ReasonDue   Reason = "due"
	ReasonNew   Reason = "new"
	ReasonStale Reason = "stale"
)

// Selection is the result of SelectNext. Chosen is nil when there was
// nothing to pick from.
type Selection[W Candidate] struct {
	Chosen *W
	Index  int
	Reason Reason
}

// Found reports whether a candidate was chosen.
func (s Selection[W]) Found() bool {
	return s.Chosen != nil
}

// SelectNext picks the next word to review. Tiers are tried in order:
//
//  1. due: reviewed cards whose due time has passed; lowest level first,
//     ties broken by candidate order.
//  2. new: words never reviewed; picked uniformly at random with rnd.
//  3. stale: nothing due and nothing new; the card with the earliest due
//     time, ties broken by candidate order.
//
// An empty candidate list yields a nil pick with ReasonStale. SelectNext
// never modifies the store.
func SelectNext[W Candidate](category string, candidates []W, store CardStore, now time.Time, rnd RandomSource) Selection[W] {
	if len(candidates) == 0 {
		return Selection[W]{Index: -1, Reason: ReasonStale}
	}

	cards := make([]*Card, len(candidates))
	for i, w := range candidates {
		cards[i], _ = store.Lookup(CardID(category, w.Term()))
	}

	best := -1
	for i, c := range cards {
		if c == nil || !c.IsDue(now) {
			continue
		}
		if best < 0 || c.Level < cards[best].Level {
			best = i
		}
	}
	if best >= 0 {
		return pick(candidates, best, ReasonDue)
	}

	var fresh []int
	for i, c := range cards {
		if c == nil || c.Untouched() {
			fresh = append(fresh, i)
		}
	}
	if len(fresh) > 0 {
		n := 0
		if len(fresh) > 1 {
			n = rnd.IntN(len(fresh))
		}
		return pick(candidates, fresh[n], ReasonNew)
	}

	best = 0
	for i, c := range cards {
		if c.DueAt < cards[best].DueAt {
			best = i
		}
	}
	return pick(candidates, best, ReasonStale)
}

func pick[W Candidate](candidates []W, i int, reason Reason) Selection[W] {
	w := candidates[i]
	return Selection[W]{Chosen: &w, Index: i, Reason: reason}
}
