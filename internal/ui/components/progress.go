package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbox/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with two nested fills: Percent in
// the secondary color and the Strong share of it in the success color.
// Home uses it for learned/mastered words.
type ProgressBar struct {
	Label       string
	Percent     float64
	Strong      float64 // <= Percent
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent, strong float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		Strong:      strong,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := clampCells(p.Percent, barWidth)
	strong := min(clampCells(p.Strong, barWidth), filled)
	empty := barWidth - filled

	result += lipgloss.NewStyle().Background(theme.Success).Render(strings.Repeat(" ", strong))
	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled-strong))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

func clampCells(frac float64, width int) int {
	n := int(float64(width) * frac)
	if n > width {
		return width
	}
	if n < 0 {
		return 0
	}
	return n
}
