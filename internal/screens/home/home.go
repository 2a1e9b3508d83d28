package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbox/internal/router"
	"github.com/abhisek/wordbox/internal/screen"
	"github.com/abhisek/wordbox/internal/screens/history"
	"github.com/abhisek/wordbox/internal/screens/learn"
	"github.com/abhisek/wordbox/internal/session"
	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/ui/components"
	"github.com/abhisek/wordbox/internal/ui/layout"
	"github.com/abhisek/wordbox/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats []session.DeckStat
	Err   error
}

// HomeScreen lists the decks with their progress.
type HomeScreen struct {
	deps   learn.Deps
	stats  []session.DeckStat
	total  srs.Summary
	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps learn.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		stats, err := session.Overview(context.Background(), deps.Provider, deps.Repo, deps.Policy, deps.Clock())
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.Stats
		h.total = session.Totals(msg.Stats)
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
			h.menu.Selected = selected
		}
		return h, nil

	case router.ResumedMsg:
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.stats)+2)
	for _, st := range h.stats {
		cat := st.Category
		p := st.Progress
		detail := fmt.Sprintf("%d/%d learned", p.Learned, p.Total)
		if p.Due > 0 {
			detail += fmt.Sprintf(" · %d due", p.Due)
		}
		deps := h.deps
		items = append(items, components.MenuItem{
			Label:    cat.Label,
			Detail:   detail,
			Disabled: p.Total == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: learn.New(deps, cat)}
				}
			},
		})
	}

	events := h.deps.Events
	items = append(items,
		components.MenuItem{
			Label:    "History",
			Disabled: events == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(events)}
				}
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (h *HomeScreen) Title() string {
	return "Decks"
}

func (h *HomeScreen) Status() string {
	if h.total.Due == 0 {
		return ""
	}
	return fmt.Sprintf("%d due", h.total.Due)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal height.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	switch {
	case h.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).Align(lipgloss.Center).Foreground(theme.Error).
			Render("Error: "+h.errMsg))
	case !h.loaded:
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Loading decks..."))
	default:
		sections = append(sections, renderStatsBar(h.total, cw, compact))
	}

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(h.menu.View()))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return renderFrame(strings.Join(sections, sep), width, height)
}
