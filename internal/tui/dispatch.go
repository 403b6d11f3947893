package tui

// Overlay precedence table: single source of truth for which overlay owns
// the keyboard and which scope the footer shows. Update and footerScope both
// read it, so adding an overlay is one entry here.

import tea "github.com/charmbracelet/bubbletea"

type overlayEntry struct {
	name    string
	guard   func(m Model) bool
	scope   func(m Model) string
	handler func(m Model, msg tea.KeyMsg) (tea.Model, tea.Cmd)
}

// overlayPrecedence returns the overlays ordered highest to lowest. This is
// a function (not a package var) to avoid initialization cycles through the
// handler closures.
func overlayPrecedence() []overlayEntry {
	return []overlayEntry{
		{
			name:  "panel",
			guard: func(m Model) bool { return m.panelOpen },
			scope: func(m Model) string {
				if m.panelFocus == focusList {
					return scopePanelList
				}
				return scopePanelForm
			},
			handler: func(m Model, msg tea.KeyMsg) (tea.Model, tea.Cmd) { return m.updatePanel(msg) },
		},
		{
			name:    "search",
			guard:   func(m Model) bool { return m.searching },
			scope:   func(m Model) string { return scopeSearch },
			handler: func(m Model, msg tea.KeyMsg) (tea.Model, tea.Cmd) { return m.updateSearch(msg) },
		},
	}
}

// dispatchOverlayKey finds the first active overlay and hands it the key.
// ok is false when no overlay is active.
func (m Model) dispatchOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	for _, entry := range overlayPrecedence() {
		if entry.guard(m) {
			next, cmd := entry.handler(m, msg)
			return next, cmd, true
		}
	}
	return m, nil, false
}

// activeScope returns the key scope that currently owns input.
func (m Model) activeScope() string {
	for _, entry := range overlayPrecedence() {
		if entry.guard(m) {
			return entry.scope(m)
		}
	}
	return scopeDashboard
}
