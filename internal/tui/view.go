package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/widgetboard/internal/board"
)

const (
	fallbackWidth = 100
	cardHeight    = 4
	minCardWidth  = 14
	minPanelWidth = 44
)

func (m Model) View() string {
	header := m.renderHeader()
	searchLine := m.renderSearch()
	statusLine := m.renderStatus()
	footer := m.renderFooter(m.keys.HelpBindings(m.activeScope()))

	bodyHeight := 0
	if m.height > 0 {
		bodyHeight = max(1, m.height-2-lipgloss.Height(header)-2)
	}
	main := header + "\n" + searchLine + "\n\n" + m.dashboardBody(bodyHeight)

	if m.panelOpen {
		return m.composePanel(main, statusLine, footer)
	}
	return m.placeWithFooter(main, statusLine, footer)
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return fallbackWidth
	}
	return m.width
}

// columnCount follows the small/medium/large grid breakpoints unless a fixed
// count is configured.
func (m Model) columnCount(width int) int {
	if m.columns > 0 {
		return m.columns
	}
	switch {
	case width < 80:
		return 1
	case width < 120:
		return 2
	default:
		return 3
	}
}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func (m Model) renderHeader() string {
	sep := headerHintStyle.Render("  ")
	content := headerAppStyle.Render(appName) + sep + headerHintStyle.Render("+ Add Widget (a)")
	if m.width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(m.width).Render(content)
}

func (m Model) renderSearch() string {
	label := searchLabelStyle.Render("  Search: ")
	return label + m.search.View()
}

func (m Model) renderFooter(bindings []key.Binding) string {
	// Build help text where every character carries the footer background.
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if m.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(m.width).Render(content)
}

func (m Model) statusText() string {
	if m.status != "" {
		return m.status
	}
	if !m.loaded {
		return "Loading saved selection…"
	}
	state := m.store.State()
	shown := 0
	for _, name := range state.Categories() {
		for _, w := range state.Widgets(name) {
			if m.visible.Has(w.Key) {
				shown++
			}
		}
	}
	return fmt.Sprintf("%d widgets, %d shown", state.Len(), shown)
}

func (m Model) renderStatus() string {
	style := statusBarStyle
	switch {
	case m.statusErr:
		style = statusErrStyle
	case m.statusWarn:
		style = statusWarnStyle
	}
	flat := strings.ReplaceAll(m.statusText(), "\n", " ")
	if m.width == 0 {
		return style.Render(flat)
	}
	return style.Width(m.width).Render(ellipsize(flat, m.width-4))
}

func (m Model) placeWithFooter(body, statusLine, footer string) string {
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := max(1, m.height-2)
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Full-width rows so nothing from the previous frame shows through.
	rows := lines(main)
	if m.width > 0 {
		for i, row := range rows {
			rows[i] = fitWidth(row, m.width)
		}
	}
	return strings.Join(rows, "\n") + "\n" + statusLine + "\n" + footer
}

// ---------------------------------------------------------------------------
// Dashboard grid
// ---------------------------------------------------------------------------

// dashboardBody renders one section per category. With a positive height the
// output is windowed so the section under the cursor stays on screen.
func (m Model) dashboardBody(height int) string {
	state := m.store.State()
	categories := state.Categories()
	if len(categories) == 0 {
		return mutedStyle.Render("  No categories.")
	}
	width := m.viewWidth()
	blocks := make([]string, len(categories))
	for i, name := range categories {
		blocks[i] = m.renderSection(state, i, name, width)
	}
	if height <= 0 {
		return strings.Join(blocks, "\n\n")
	}

	cursor := clamp(m.catCursor, 0, len(blocks)-1)
	start := cursor
	used := lipgloss.Height(blocks[cursor])
	for start > 0 {
		h := lipgloss.Height(blocks[start-1]) + 1
		if used+h > height {
			break
		}
		used += h
		start--
	}
	rows := lines(strings.Join(blocks[start:], "\n\n"))
	if len(rows) > height {
		rows = rows[:height]
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSection(state board.State, idx int, name string, width int) string {
	marker := "  "
	if idx == m.catCursor {
		marker = cursorStyle.Render("▸ ")
	}
	header := marker + sectionTitleStyle.Render(name)

	cols := m.columnCount(width)
	inner := width - 4
	cardWidth := max(minCardWidth, (inner-(cols-1))/cols)

	widgets := board.VisibleWidgets(state, name, m.searchTerm(), m.visible)
	cards := make([]string, 0, len(widgets)+1)
	for _, w := range widgets {
		cards = append(cards, renderCard(w, cardWidth))
	}
	cards = append(cards, renderAddCard(cardWidth))

	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		row := make([]string, 0, 2*(end-i))
		for j, card := range cards[i:end] {
			if j > 0 {
				row = append(row, " ")
			}
			row = append(row, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	grid := lipgloss.NewStyle().PaddingLeft(2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return header + "\n" + grid
}

func renderCard(w board.Widget, width int) string {
	inner := width - 4
	body := cardTitleStyle.Render(ellipsize(w.Title, inner)) + "\n" + cardBodyStyle.Render(w.Content)
	return cardStyle.Width(width - 2).Height(cardHeight).MaxHeight(cardHeight + 2).Render(body)
}

func renderAddCard(width int) string {
	return addCardStyle.Width(width - 2).Height(cardHeight).Render("+ Add Widget")
}

// ---------------------------------------------------------------------------
// Side panel
// ---------------------------------------------------------------------------

func (m Model) panelWidth() int {
	if m.width <= 0 {
		return 60
	}
	return min(m.width, max(minPanelWidth, m.width/2))
}

// panelInnerWidth is the usable width inside the panel border and padding.
func (m Model) panelInnerWidth() int {
	return max(10, m.panelWidth()-4)
}

func (m *Model) resizeInputs() {
	m.search.Width = max(10, m.viewWidth()/2-12)
	inner := m.panelInnerWidth()
	m.title.Width = max(8, inner-2)
	m.content.SetWidth(inner)
}

func (m Model) composePanel(base, statusLine, footer string) string {
	baseView := m.placeWithFooter(base, statusLine, footer)
	inner := m.panelInnerWidth()
	style := panelStyle.Width(inner + 2)
	if m.height == 0 || m.width == 0 {
		return baseView + "\n\n" + style.Render(m.renderPanel(inner))
	}
	targetHeight := max(1, m.height-2)
	panel := style.Height(targetHeight - 2).MaxHeight(targetHeight).Render(m.renderPanel(inner))
	return dockRight(baseView, panel, m.width, targetHeight)
}

func (m Model) renderPanel(width int) string {
	state := m.store.State()
	categories := state.Categories()

	var b strings.Builder
	b.WriteString(panelHeaderStyle.Width(width).Render("Add Widget"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Width(width).Render("Personalize your dashboard by adding or removing widgets"))
	b.WriteString("\n\n")

	if len(categories) == 0 {
		b.WriteString(mutedStyle.Render("No categories."))
		b.WriteString("\n")
	} else {
		tabs := make([]string, 0, len(categories))
		for i, name := range categories {
			if i == m.activeIndex {
				tabs = append(tabs, activeTabStyle.Render(name))
			} else {
				tabs = append(tabs, inactiveTabStyle.Render(name))
			}
		}
		b.WriteString(ellipsize(strings.Join(tabs, separatorStyle.Render("│")), width))
		b.WriteString("\n\n")
		category, _ := m.activeCategory()
		b.WriteString(m.renderPanelList(state.Widgets(category), width))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Add New Widget"))
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Title", focusTitle))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Content", focusContent))
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n\n")
	b.WriteString(buttonStyle.Render("Cancel") + " " + primaryButtonStyle.Render("Confirm"))
	return b.String()
}

func (m Model) renderPanelList(items []board.Widget, width int) string {
	if len(items) == 0 {
		return mutedStyle.Render("No widgets in this category.") + "\n"
	}
	var b strings.Builder
	for i, w := range items {
		prefix := "  "
		if m.panelFocus == focusList && i == m.listCursor {
			prefix = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if m.visible.Has(w.Key) {
			box = checkedStyle.Render("[x]")
		}
		title := ellipsize(w.Title, width-10)
		line := prefix + box + " " + title
		line = fitWidth(line, width-2) + deleteStyle.Render("✕")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) fieldLabel(label string, f panelFocus) string {
	if m.panelFocus == f {
		return focusedLabelStyle.Render("▸ " + label)
	}
	return labelStyle.Render("  " + label)
}
