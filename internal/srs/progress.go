package srs

import "time"

// Summary counts progress over a category's candidate list.
type Summary struct {
	Total    int `json:"total"`
	Learned  int `json:"learned"`
	Mastered int `json:"mastered"`
	Due      int `json:"due"`
}

// LearnedPercent returns Learned/Total in [0, 1].
func (s Summary) LearnedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Learned) / float64(s.Total)
}

// MasteredPercent returns Mastered/Total in [0, 1].
func (s Summary) MasteredPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Mastered) / float64(s.Total)
}

// Summarize computes progress using the default policy.
func Summarize[W Candidate](category string, candidates []W, store CardStore, now time.Time) Summary {
	return SummarizeWith(DefaultPolicy(), category, candidates, store, now)
}

// SummarizeWith counts, over candidates: reviewed cards (Learned), cards at
// or above p.MasteredLevel (Mastered) and reviewed cards that are due (Due).
// Cards never reviewed count towards Total only.
func SummarizeWith[W Candidate](p Policy, category string, candidates []W, store CardStore, now time.Time) Summary {
	sum := Summary{Total: len(candidates)}
	for _, w := range candidates {
		c, ok := store.Lookup(CardID(category, w.Term()))
		if !ok || c.Untouched() {
			continue
		}
		sum.Learned++
		if c.Level >= p.MasteredLevel {
			sum.Mastered++
		}
		if c.IsDue(now) {
			sum.Due++
		}
	}
	return sum
}
