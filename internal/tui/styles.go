package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	tabActive     = lipgloss.NewStyle().Bold(true).Underline(true)
	tabInactive   = lipgloss.NewStyle().Faint(true)
	tabLoading    = lipgloss.NewStyle().Italic(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	promptStyle   = lipgloss.NewStyle().Bold(true)
	closeMark     = lipgloss.NewStyle().Faint(true).Render("×")
	pinnedMark    = lipgloss.NewStyle().Faint(true).Render("·")
	barFillStyle  = lipgloss.NewStyle().Faint(true)
	helpHintStyle = lipgloss.NewStyle().Faint(true)
)

func tabLabelStyle(selected, loading bool, color string) lipgloss.Style {
	style := tabInactive
	if selected {
		style = tabActive
	}
	if loading {
		style = style.Inherit(tabLoading)
	}
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}
