package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/wordbox/internal/session"
	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/ui/layout"
	"github.com/abhisek/wordbox/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestionView renders the active flashcard.
func (s *LearnScreen) renderQuestionView(width int) string {
	state := s.state
	q := state.CurrentQuestion
	if q == nil {
		return centered(width).Foreground(theme.TextDim).Render("\n\n  Picking the next card...")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Deck: %s", s.category.Label))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s",
			state.TotalQuestions+1,
			state.DailyCount,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.TotalCorrect,
			layout.FormatClock(state.Elapsed),
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	level := 0
	if c, ok := state.Cards.Lookup(srs.CardID(state.Category, q.Word.Word)); ok {
		level = c.Level
	}
	badges := theme.LevelBadge(level) + "  " + reasonBadge(q.Reason)
	b.WriteString(centered(width).Render(badges))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Foreground(theme.TextDim).Render(directionLabel(q.Direction)))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(q.Prompt()))
	b.WriteString("\n")
	if q.Direction == sess.DirectionWordToMeaning && q.Word.Phonetic != "" {
		b.WriteString(centered(width).Foreground(theme.TextDim).Italic(true).Render(q.Word.Phonetic))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(centered(width).Render("Answer: " + s.input.View()))

	return b.String()
}

// renderFeedback renders the result of the last answer.
func (s *LearnScreen) renderFeedback(width int) string {
	state := s.state
	res := state.LastResult
	q := state.CurrentQuestion
	if res == nil || q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	if res.Correct {
		b.WriteString(centered(width).Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(centered(width).Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).
			Render(fmt.Sprintf("You typed: %s", res.LearnerAnswer)))
	}
	b.WriteString("\n\n")

	card := fmt.Sprintf("%s  =  %s", q.Word.Word, q.Word.Meaning)
	if s.favorite {
		card = "★ " + card
	}
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(card))
	b.WriteString("\n")
	if q.Word.Phonetic != "" {
		b.WriteString(centered(width).Foreground(theme.TextDim).Italic(true).Render(q.Word.Phonetic))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	levelLine := fmt.Sprintf("%s → %s   next review in %s",
		theme.LevelBadge(res.LevelBefore),
		theme.LevelBadge(res.Card.Level),
		layout.FormatInterval(res.Card.DueTime().Sub(s.deps.Clock())),
	)
	b.WriteString(centered(width).Foreground(theme.Text).Render(levelLine))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).
		Render(fmt.Sprintf("streak %d · %d/%d correct overall", res.Card.Streak, res.Card.Correct, res.Card.Attempts)))
	b.WriteString("\n\n")

	if s.saveWarn != "" {
		b.WriteString(centered(width).Foreground(theme.Accent).Render("warning: " + s.saveWarn))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Press any key to continue..."))
	return b.String()
}

func reasonBadge(r srs.Reason) string {
	switch r {
	case srs.ReasonDue:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("due")
	case srs.ReasonNew:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("new")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("early review")
	}
}

func directionLabel(d sess.Direction) string {
	if d == sess.DirectionMeaningToWord {
		return "Type the word for"
	}
	return "Type the meaning of"
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Every answer so far is saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return centered(width).Foreground(theme.TextDim).Render("\n\n\n  Loading your cards...")
}

func renderError(width int, errMsg string) string {
	return centered(width).Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
