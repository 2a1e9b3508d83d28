package components

import tea "charm.land/bubbletea/v2"

func keyDown() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyDown}
}
