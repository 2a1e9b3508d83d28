package session

import (
	"time"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/vocab"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	Category       string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	ByReason       map[srs.Reason]int
	Missed         []vocab.Word
	Progress       srs.Summary // category-wide counters at the end
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState, now time.Time) *SessionSummary {
	var accuracy float64
	if state.TotalQuestions > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalQuestions)
	}

	byReason := make(map[srs.Reason]int, len(state.ByReason))
	for r, n := range state.ByReason {
		byReason[r] = n
	}
	missed := make([]vocab.Word, len(state.Missed))
	copy(missed, state.Missed)

	return &SessionSummary{
		Category:       state.Category,
		Duration:       state.Elapsed,
		TotalQuestions: state.TotalQuestions,
		TotalCorrect:   state.TotalCorrect,
		Accuracy:       accuracy,
		ByReason:       byReason,
		Missed:         missed,
		Progress:       srs.SummarizeWith(state.Policy, state.Category, state.Words, state.Cards, now),
	}
}
