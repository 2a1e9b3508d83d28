package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbox/internal/router"
	"github.com/abhisek/wordbox/internal/screen"
	"github.com/abhisek/wordbox/internal/session"
	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/ui/components"
	"github.com/abhisek/wordbox/internal/ui/layout"
	"github.com/abhisek/wordbox/internal/ui/theme"
)

// maxMissedShown caps the missed-word list.
const maxMissedShown = 8

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	var b strings.Builder

	title := "Session complete!"
	if sum.TotalQuestions == 0 {
		title = "Nothing reviewed this time"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), title))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %s", layout.FormatClock(sum.Duration))))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n")

	reasons := fmt.Sprintf("due %d · new %d · early %d",
		sum.ByReason[srs.ReasonDue], sum.ByReason[srs.ReasonNew], sum.ByReason[srs.ReasonStale])
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), reasons))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	// Deck progress.
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Deck progress"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	p := sum.Progress
	bar := components.NewProgressBar("", p.LearnedPercent(), p.MasteredPercent(), true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("%d/%d learned   %d mastered   %d due", p.Learned, p.Total, p.Mastered, p.Due)))
	b.WriteString("\n")

	if len(sum.Missed) > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Words to revisit"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for i, w := range sum.Missed {
			if i == maxMissedShown {
				b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
					fmt.Sprintf("and %d more", len(sum.Missed)-maxMissedShown)))
				b.WriteString("\n")
				break
			}
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error),
				fmt.Sprintf("%s  =  %s", w.Word, w.Meaning)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
