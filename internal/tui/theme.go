package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// Semantic aliases
const (
	colorAccent  = colorGreen
	colorFocus   = colorLavender
	colorError   = colorRed
	colorWarning = colorYellow
	colorMuted   = colorOverlay1
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	promptStyle   = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 2)

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	modalStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)

	labelStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle    = lipgloss.NewStyle().Foreground(colorText)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	dayNameStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	pastStyle     = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	upcomingStyle = lipgloss.NewStyle().Foreground(colorTeal)

	calHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	calWeekdayStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	calMarkedStyle   = lipgloss.NewStyle().Foreground(colorBase).Background(colorAccent)
	calCursorStyle   = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus).Bold(true)
	calDisabledStyle = lipgloss.NewStyle().Foreground(colorSurface1)
	calDayStyle      = lipgloss.NewStyle().Foreground(colorText)

	confirmedStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	unconfirmedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
