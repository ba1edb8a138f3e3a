package ledger

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	member   lipgloss.Style
	points   lipgloss.Style
	negative lipgloss.Style
	detail   lipgloss.Style
	meta     lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		member:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		points:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		negative: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
	}
}
