package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/widgetboard/internal/board"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case visibleLoadedMsg:
		return m.handleVisibleLoaded(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil
	case tea.KeyMsg:
		if m.isAction(scopeGlobal, actionQuit, msg) {
			return m, tea.Quit
		}
		if next, cmd, ok := m.dispatchOverlayKey(msg); ok {
			return next, cmd
		}
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m Model) isAction(scope string, action Action, msg tea.KeyMsg) bool {
	b := m.keys.Lookup(msg.String(), scope)
	return b != nil && b.Action == action
}

// verticalDelta maps navigation keys to a cursor step.
func verticalDelta(msg tea.KeyMsg) int {
	switch normalizeKeyName(msg.String()) {
	case "j", "down":
		return 1
	case "k", "up":
		return -1
	}
	return 0
}

func horizontalDelta(msg tea.KeyMsg) int {
	switch normalizeKeyName(msg.String()) {
	case "l", "right":
		return 1
	case "h", "left":
		return -1
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := m.store.State().Categories()
	switch {
	case m.isAction(scopeDashboard, actionQuit, msg):
		return m, tea.Quit
	case m.isAction(scopeDashboard, actionSearch, msg):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case m.isAction(scopeDashboard, actionClearSearch, msg):
		m.search.Reset()
		m.setStatus("")
		return m, nil
	case m.isAction(scopeDashboard, actionNavigate, msg):
		m.catCursor = clamp(m.catCursor+verticalDelta(msg), 0, len(categories)-1)
		return m, nil
	case m.isAction(scopeDashboard, actionAdd, msg):
		return m.openPanel(m.catCursor)
	case m.isAction(scopeDashboard, actionOpenPanel, msg):
		return m.openPanel(-1)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.isAction(scopeSearch, actionConfirm, msg):
		m.searching = false
		m.search.Blur()
		m.reportSearch()
		return m, nil
	case m.isAction(scopeSearch, actionClearSearch, msg):
		m.searching = false
		m.search.Blur()
		m.search.Reset()
		m.setStatus("")
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// searchTerm is the live search filter.
func (m Model) searchTerm() string {
	return m.search.Value()
}

func (m *Model) reportSearch() {
	term := m.searchTerm()
	if term == "" {
		m.setStatus("")
		return
	}
	state := m.store.State()
	if board.AnyMatch(state, term) {
		m.setStatus("")
		return
	}
	if title, ok := board.Suggest(state, term); ok {
		m.setWarning(fmt.Sprintf("No widgets match %q. Did you mean %q?", term, title))
		return
	}
	m.setWarning(fmt.Sprintf("No widgets match %q.", term))
}

// ---------------------------------------------------------------------------
// Side panel
// ---------------------------------------------------------------------------

// openPanel shows the side panel. index selects the category tab; a negative
// index keeps the previous tab.
func (m Model) openPanel(index int) (tea.Model, tea.Cmd) {
	categories := m.store.State().Categories()
	if index >= 0 {
		if index != m.activeIndex {
			m.listCursor = 0
		}
		m.activeIndex = index
	}
	m.activeIndex = clamp(m.activeIndex, 0, len(categories)-1)
	m.panelOpen = true
	m.searching = false
	m.search.Blur()
	cmd := m.setPanelFocus(focusList)
	return m, cmd
}

func (m *Model) closePanel() {
	m.panelOpen = false
	m.setPanelFocus(focusList)
}

func (m *Model) resetForm() {
	m.title.Reset()
	m.content.Reset()
}

func (m *Model) setPanelFocus(f panelFocus) tea.Cmd {
	m.panelFocus = f
	m.title.Blur()
	m.content.Blur()
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusContent:
		return m.content.Focus()
	}
	return nil
}

func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.panelFocus == focusList {
		return m.updatePanelList(msg)
	}
	return m.updatePanelForm(msg)
}

func (m Model) activeCategory() (string, bool) {
	categories := m.store.State().Categories()
	if m.activeIndex < 0 || m.activeIndex >= len(categories) {
		return "", false
	}
	return categories[m.activeIndex], true
}

func (m Model) updatePanelList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.store.State()
	categories := state.Categories()
	category, _ := m.activeCategory()
	items := state.Widgets(category)

	switch {
	case m.isAction(scopePanelList, actionClose, msg):
		m.closePanel()
		return m, nil
	case m.isAction(scopePanelList, actionFocusNext, msg):
		cmd := m.setPanelFocus(focusTitle)
		return m, cmd
	case m.isAction(scopePanelList, actionColumn, msg):
		next := clamp(m.activeIndex+horizontalDelta(msg), 0, len(categories)-1)
		if next != m.activeIndex {
			m.activeIndex = next
			m.listCursor = 0
		}
		return m, nil
	case m.isAction(scopePanelList, actionNavigate, msg):
		m.listCursor = clamp(m.listCursor+verticalDelta(msg), 0, len(items)-1)
		return m, nil
	case m.isAction(scopePanelList, actionToggle, msg), m.isAction(scopePanelList, actionDelete, msg):
		if !m.loaded {
			// No slot writes until the saved selection is read.
			m.setWarning("Saved selection is still loading.")
			return m, nil
		}
	}

	switch {
	case m.isAction(scopePanelList, actionToggle, msg):
		if m.listCursor >= len(items) {
			return m, nil
		}
		return m.toggleVisible(items[m.listCursor])
	case m.isAction(scopePanelList, actionDelete, msg):
		if m.listCursor >= len(items) {
			return m, nil
		}
		return m.deleteWidget(category, items[m.listCursor])
	}
	return m, nil
}

func (m Model) toggleVisible(w board.Widget) (tea.Model, tea.Cmd) {
	m.visible = m.visible.Toggle(w.Key)
	shown := m.visible.Has(w.Key)
	m.logger.Debug("widget visibility toggled", slog.Int64("key", w.Key), slog.Bool("visible", shown))
	if shown {
		m.setStatus(fmt.Sprintf("Showing %q.", w.Title))
	} else {
		m.setStatus(fmt.Sprintf("Hid %q.", w.Title))
	}
	m.persistVisible()
	return m, nil
}

// deleteWidget removes the widget and drops its key from the visible-set so
// no stale key outlives it.
func (m Model) deleteWidget(category string, w board.Widget) (tea.Model, tea.Cmd) {
	state := m.store.Dispatch(board.RemoveWidget(category, w.Key))
	m.listCursor = clamp(m.listCursor, 0, len(state.Widgets(category))-1)
	m.logger.Info("widget removed", slog.String("category", category), slog.Int64("key", w.Key))
	m.setStatus(fmt.Sprintf("Removed %q from %s.", w.Title, category))
	if !m.visible.Has(w.Key) {
		return m, nil
	}
	m.visible = m.visible.Remove(w.Key)
	m.persistVisible()
	return m, nil
}

func (m Model) updatePanelForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.isAction(scopePanelForm, actionSave, msg):
		return m.confirmForm()
	case m.isAction(scopePanelForm, actionCancel, msg):
		return m.cancelForm()
	case m.isAction(scopePanelForm, actionFocusNext, msg):
		cmd := m.setPanelFocus((m.panelFocus + 1) % focusCount)
		return m, cmd
	case m.isAction(scopePanelForm, actionFocusPrev, msg):
		cmd := m.setPanelFocus((m.panelFocus + focusCount - 1) % focusCount)
		return m, cmd
	case m.panelFocus == focusTitle && m.isAction(scopePanelForm, actionNext, msg):
		cmd := m.setPanelFocus(focusContent)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.panelFocus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// confirmForm dispatches ADD_WIDGET when the draft is valid. The panel
// closes and the form clears either way.
func (m Model) confirmForm() (tea.Model, tea.Cmd) {
	draft := widgetDraft{Title: m.title.Value(), Content: m.content.Value()}
	category, ok := m.activeCategory()
	switch err := draft.Validate(); {
	case err != nil:
		m.setError(fmt.Sprintf("Widget not added: %v", err))
	case !ok:
		m.setError("Widget not added: no category selected.")
	default:
		d := draft.trimmed()
		w := board.Widget{Title: d.Title, Content: d.Content, Key: m.store.NextKey(m.now())}
		m.store.Dispatch(board.AddWidget(category, w))
		m.logger.Info("widget added", slog.String("category", category), slog.Int64("key", w.Key))
		m.setStatus(fmt.Sprintf("Added %q to %s.", w.Title, category))
	}
	m.closePanel()
	m.resetForm()
	return m, nil
}

func (m Model) cancelForm() (tea.Model, tea.Cmd) {
	m.closePanel()
	m.resetForm()
	return m, nil
}
