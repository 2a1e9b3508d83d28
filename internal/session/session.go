package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/vocab"
)

// ErrNoQuestion is returned when an answer arrives with no active question.
var ErrNoQuestion = errors.New("no active question")

// CheckAnswer compares an answer with the expected text, ignoring
// surrounding whitespace and case. Both sides are NFC-normalized so that
// precomposed and combining diacritics compare equal.
func CheckAnswer(learnerAnswer, expected string) bool {
	return normalizeAnswer(learnerAnswer) == normalizeAnswer(expected)
}

func normalizeAnswer(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// NextQuestion selects the next card and makes it the current question.
// It returns false when the daily count is reached or the deck is empty.
func NextQuestion(state *SessionState, now time.Time) (*Question, bool) {
	state.CurrentQuestion = nil
	if ShouldEnd(state) {
		return nil, false
	}

	sel := srs.SelectNext(state.Category, state.Words, state.Cards, now, state.Rand)
	if !sel.Found() {
		return nil, false
	}

	dir := DirectionWordToMeaning
	if state.Rand.IntN(2) == 1 {
		dir = DirectionMeaningToWord
	}

	q := &Question{
		Word:      *sel.Chosen,
		Index:     sel.Index,
		Reason:    sel.Reason,
		Direction: dir,
	}
	state.CurrentQuestion = q
	state.QuestionStartTime = now
	state.Phase = PhaseActive
	state.ShowingFeedback = false
	return q, true
}

// ShouldEnd reports whether the session has served its daily count.
func ShouldEnd(state *SessionState) bool {
	return state.TotalQuestions >= state.DailyCount
}

// HandleAnswer grades the answer to the current question, applies the
// review to the card store, saves the store and logs a review event.
//
// The in-memory review is always applied. A non-nil error reports a failed
// save or log write alongside a valid result.
func HandleAnswer(ctx context.Context, state *SessionState, learnerAnswer string, now time.Time) (*AnswerResult, error) {
	q := state.CurrentQuestion
	if q == nil {
		return nil, ErrNoQuestion
	}

	correct := CheckAnswer(learnerAnswer, q.Expected())
	cardID := srs.CardID(state.Category, q.Word.Word)

	levelBefore := 0
	if c, ok := state.Cards.Lookup(cardID); ok {
		levelBefore = c.Level
	}
	card := state.Policy.RecordReview(state.Cards, cardID, correct, now)

	state.TotalQuestions++
	state.ByReason[q.Reason]++
	if correct {
		state.TotalCorrect++
	} else {
		addMissed(state, q.Word)
	}

	result := &AnswerResult{
		Correct:       correct,
		LearnerAnswer: learnerAnswer,
		Expected:      q.Expected(),
		LevelBefore:   levelBefore,
		Card:          card,
	}
	state.LastResult = result
	state.Phase = PhaseFeedback
	state.ShowingFeedback = true
	state.Elapsed = now.Sub(state.StartTime)

	var errs []error
	if state.Repo != nil {
		if err := state.Repo.Save(ctx, state.Category, state.Cards); err != nil {
			errs = append(errs, err)
		}
	}
	if state.EventRepo != nil {
		err := state.EventRepo.AppendReviewEvent(ctx, store.ReviewEventData{
			SessionID:     state.SessionID,
			Category:      state.Category,
			Word:          q.Word.Word,
			CardID:        cardID,
			Correct:       correct,
			Reason:        string(q.Reason),
			Direction:     string(q.Direction),
			LearnerAnswer: learnerAnswer,
			LevelBefore:   levelBefore,
			LevelAfter:    card.Level,
			DueAt:         card.DueTime(),
			TimeMs:        int(now.Sub(state.QuestionStartTime).Milliseconds()),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("log review: %w", err))
		}
	}
	return result, errors.Join(errs...)
}

func addMissed(state *SessionState, w vocab.Word) {
	for _, m := range state.Missed {
		if strings.EqualFold(m.Word, w.Word) {
			return
		}
	}
	state.Missed = append(state.Missed, w)
}

// RecordStart logs the session start event.
func RecordStart(ctx context.Context, state *SessionState) error {
	if state.EventRepo == nil {
		return nil
	}
	return state.EventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: state.SessionID,
		Category:  state.Category,
		Action:    "start",
	})
}

// RecordEnd moves the session to the ending phase and logs the end event.
func RecordEnd(ctx context.Context, state *SessionState, now time.Time) error {
	state.Phase = PhaseEnding
	state.CurrentQuestion = nil
	state.Elapsed = now.Sub(state.StartTime)
	if state.EventRepo == nil {
		return nil
	}
	return state.EventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       state.SessionID,
		Category:        state.Category,
		Action:          "end",
		QuestionsServed: state.TotalQuestions,
		CorrectAnswers:  state.TotalCorrect,
		DurationSecs:    int(state.Elapsed.Seconds()),
	})
}
