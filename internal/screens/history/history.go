package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbox/internal/router"
	"github.com/abhisek/wordbox/internal/screen"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/ui/layout"
	"github.com/abhisek/wordbox/internal/ui/theme"
)

const (
	sessionLimit = 50
	reviewLimit  = 1000
)

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Reviews  map[string][]store.ReviewEventRecord // sessionID → reviews, oldest first
	Err      error
}

// HistoryScreen displays past sessions and the cards answered in each.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	reviews   map[string][]store.ReviewEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		return load(context.Background(), repo)
	}
}

func load(ctx context.Context, repo store.EventRepo) historyLoadedMsg {
	sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	events, err := repo.QueryReviewEvents(ctx, store.QueryOpts{Limit: reviewLimit})
	if err != nil {
		return historyLoadedMsg{Sessions: sessions, Reviews: make(map[string][]store.ReviewEventRecord)}
	}

	// Events come newest first; walk backwards so each group reads in
	// answer order.
	bySession := make(map[string][]store.ReviewEventRecord)
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		bySession[e.SessionID] = append(bySession[e.SessionID], e)
	}
	return historyLoadedMsg{Sessions: sessions, Reviews: bySession}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.reviews = msg.Reviews
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Pick a deck and start learning!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		var accuracy float64
		if sess.QuestionsServed > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.QuestionsServed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-14s %s  %2d cards  %3.0f%% correct",
			prefix,
			sess.Timestamp.Local().Format("Jan 02 15:04"),
			sess.Category,
			layout.FormatClock(time.Duration(sess.DurationSecs)*time.Second),
			sess.QuestionsServed,
			accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderReviews(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderReviews(sessionID string, width int) string {
	reviews := s.reviews[sessionID]
	if len(reviews) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No cards recorded for this session")) + "\n"
	}

	var b strings.Builder
	for _, r := range reviews {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !r.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		line := fmt.Sprintf("    %s %-18s %s → %s  %s",
			mark, r.Word,
			theme.LevelBadge(r.LevelBefore), theme.LevelBadge(r.LevelAfter),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.Reason))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}
