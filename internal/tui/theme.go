package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette (true-color hex values)
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorBlue
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorDanger  = colorPeach
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Background(colorMantle).
			Bold(true)

	headerHintStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle)

	searchLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	sectionTitleStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	cardBodyStyle = lipgloss.NewStyle().Foreground(colorSubtext1)

	addCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Foreground(colorAccent).
			Bold(true).
			Align(lipgloss.Center, lipgloss.Center)

	mutedStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Background(colorBase).
			Padding(0, 1)

	panelHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorAccent).
				Bold(true).
				Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Padding(0, 1)

	checkedStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	deleteStyle = lipgloss.NewStyle().Foreground(colorDanger)

	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	focusedLabelStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Padding(0, 1)

	primaryButtonStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorAccent).
				Bold(true).
				Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Background(colorSurface0).
			Padding(0, 2)

	statusWarnStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Background(colorSurface0).
			Padding(0, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	separatorStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
)
