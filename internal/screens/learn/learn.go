// Package learn implements the flashcard review screen.
package learn

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/wordbox/internal/favorites"
	"github.com/abhisek/wordbox/internal/router"
	"github.com/abhisek/wordbox/internal/screen"
	"github.com/abhisek/wordbox/internal/screens/summary"
	sess "github.com/abhisek/wordbox/internal/session"
	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/ui/components"
	"github.com/abhisek/wordbox/internal/ui/layout"
	"github.com/abhisek/wordbox/internal/vocab"
)

const answerPlaceholder = "Type your answer..."

// Deps are the collaborators shared by the screens that start sessions.
type Deps struct {
	Provider   vocab.Provider
	Repo       *srs.Repo
	Events     store.EventRepo  // may be nil
	Favorites  *favorites.Store // may be nil
	Policy     srs.Policy
	DailyCount int
	Now        func() time.Time // nil means time.Now
	Rand       srs.RandomSource // nil seeds a new source per session
}

// Clock returns the current time from d.Now or the wall clock.
func (d Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// LearnScreen runs one review session over a category.
type LearnScreen struct {
	deps     Deps
	category vocab.Category
	state    *sess.SessionState
	input    components.TextInput
	errMsg   string
	saveWarn string
	favorite bool // current word is starred
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)
var _ screen.BackHandler = (*LearnScreen)(nil)
var _ screen.StatusProvider = (*LearnScreen)(nil)

// New creates a LearnScreen for category.
func New(deps Deps, category vocab.Category) *LearnScreen {
	return &LearnScreen{
		deps:     deps,
		category: category,
		input:    components.NewTextInput(answerPlaceholder, 80),
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	return tea.Batch(
		s.initSession(),
		s.input.Init(),
	)
}

func (s *LearnScreen) Title() string {
	return "Learn: " + s.category.Label
}

// HandlesBack reports whether Esc stays on this screen. It opens the quit
// dialog, except on the error view where Esc goes back.
func (s *LearnScreen) HandlesBack() bool {
	return s.errMsg == ""
}

func (s *LearnScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return fmt.Sprintf("✓ %d  answered %d/%d", s.state.TotalCorrect, s.state.TotalQuestions, s.state.DailyCount)
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.state.ShowingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.ShowingFeedback {
		hints := []layout.KeyHint{{Key: "any key", Description: "Continue"}}
		if s.deps.Favorites != nil {
			hints = append(hints, layout.KeyHint{Key: "F", Description: "Favorite"})
		}
		return hints
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *LearnScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	if s.state.ShowingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.state.ShowingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state != nil && s.state.Phase == sess.PhaseActive && !s.state.ShowingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// initSession loads the deck and card store.
func (s *LearnScreen) initSession() tea.Cmd {
	deps := s.deps
	category := s.category.Key
	return func() tea.Msg {
		ctx := context.Background()

		words, err := deps.Provider.Words(ctx, category)
		if err != nil {
			return sessionInitMsg{Err: err}
		}
		if len(words) == 0 {
			return sessionInitMsg{Err: fmt.Errorf("deck %q has no words", category)}
		}

		state := sess.NewSessionState(ctx, sess.Options{
			SessionID:  uuid.New().String(),
			Category:   category,
			Words:      words,
			Repo:       deps.Repo,
			Events:     deps.Events,
			Policy:     deps.Policy,
			Rand:       deps.Rand,
			DailyCount: deps.DailyCount,
			Now:        deps.Clock(),
		})
		_ = sess.RecordStart(ctx, state)

		return sessionInitMsg{State: state}
	}
}

func (s *LearnScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	return s, tea.Batch(s.nextQuestion(), tickCmd())
}

// nextQuestion serves the next card or ends the session.
func (s *LearnScreen) nextQuestion() tea.Cmd {
	if _, ok := sess.NextQuestion(s.state, s.deps.Clock()); !ok {
		return func() tea.Msg { return sessionEndMsg{} }
	}
	s.saveWarn = ""
	s.input = components.NewTextInput(answerPlaceholder, 80)
	return s.input.Init()
}

func (s *LearnScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.state == nil || s.state.Phase == sess.PhaseEnding || s.state.Phase == sess.PhaseSummary {
		return s, nil
	}
	s.state.Elapsed = time.Time(msg).Sub(s.state.StartTime)
	return s, tickCmd()
}

func (s *LearnScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, nil
	}
	s.state.ShowingFeedback = false
	if sess.ShouldEnd(s.state) {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, s.nextQuestion()
}

func (s *LearnScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	now := s.deps.Clock()
	_ = sess.RecordEnd(context.Background(), s.state, now)
	result := sess.BuildSummary(s.state, now)
	s.state.Phase = sess.PhaseSummary

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

func (s *LearnScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.state == nil {
		return s, nil
	}

	if s.state.ShowingQuitConfirm {
		switch key {
		case "y", "Y":
			s.state.ShowingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.state.ShowingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	if s.state.ShowingFeedback && s.input.Submitted() {
		if (key == "f" || key == "F") && s.deps.Favorites != nil {
			return s.toggleFavorite()
		}
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if s.state.Phase == sess.PhaseActive {
		switch key {
		case "esc":
			s.state.ShowingQuitConfirm = true
			return s, nil
		case "enter":
			return s.submitAnswer()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// submitAnswer grades the typed answer and shows feedback.
func (s *LearnScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	if s.state == nil || s.state.CurrentQuestion == nil {
		return s, nil
	}
	if s.input.Submitted() {
		return s, nil
	}
	answer := s.input.Value()
	if answer == "" {
		return s, nil
	}

	res, err := sess.HandleAnswer(context.Background(), s.state, answer, s.deps.Clock())
	if res == nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if err != nil {
		s.saveWarn = err.Error()
	}
	s.input.Submit(res.Correct)
	s.favorite = false
	if s.deps.Favorites != nil {
		s.favorite, _ = s.deps.Favorites.Contains(context.Background(), s.state.CurrentQuestion.Word.Word)
	}
	return s, nil
}

// toggleFavorite stars or unstars the word of the current card.
func (s *LearnScreen) toggleFavorite() (screen.Screen, tea.Cmd) {
	q := s.state.CurrentQuestion
	if q == nil {
		return s, nil
	}
	on, err := s.deps.Favorites.Toggle(context.Background(), q.Word.Word)
	if err != nil {
		s.saveWarn = err.Error()
		return s, nil
	}
	s.favorite = on
	return s, nil
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
