package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/ui/components"
	"github.com/abhisek/wordbox/internal/ui/theme"
)

const titleFull = ` ██╗    ██╗ ██████╗ ██████╗ ██████╗ ██████╗  ██████╗ ██╗  ██╗
 ██║    ██║██╔═══██╗██╔══██╗██╔══██╗██╔══██╗██╔═══██╗╚██╗██╔╝
 ██║ █╗ ██║██║   ██║██████╔╝██║  ██║██████╔╝██║   ██║ ╚███╔╝
 ██║███╗██║██║   ██║██╔══██╗██║  ██║██╔══██╗██║   ██║ ██╔██╗
 ╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██████╔╝╚██████╔╝██╔╝ ██╗
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

const titleCompact = "W · O · R · D · B · O · X"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders totals over every deck in a bordered box.
func renderStatsBar(total srs.Summary, cw int, compact bool) string {
	learnedStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dueStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	due := dimStyle.Render("NONE DUE")
	if total.Due > 0 {
		due = dueStyle.Render(fmt.Sprintf("%d DUE", total.Due))
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s  %s  %s",
			learnedStyle.Render(fmt.Sprintf("%d/%d", total.Learned, total.Total)),
			masteredStyle.Render(fmt.Sprintf("★%d", total.Mastered)),
			due)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			learnedStyle.Render(fmt.Sprintf("%d/%d LEARNED", total.Learned, total.Total)),
			masteredStyle.Render(fmt.Sprintf("★ %d MASTERED", total.Mastered)),
			due)
	}

	bar := components.NewProgressBar("", total.LearnedPercent(), total.MasteredPercent(), false, cw-4)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats + "\n" + bar.View())
}

// renderFrame wraps content in a double-border frame, centering it
// vertically and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
