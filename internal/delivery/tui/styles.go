package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the directory screen
type Styles struct {
	Title    lipgloss.Style
	Search   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Detail   lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Alert    lipgloss.Style
	Help     lipgloss.Style
	Disabled lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Search:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Row:      lipgloss.NewStyle().PaddingLeft(2),
		Cursor:   lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(lipgloss.Color("212")),
		Detail:   lipgloss.NewStyle().PaddingLeft(6).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("238")),
		Label:    lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("245")),
		Focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Alert:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 2).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
