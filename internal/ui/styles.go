package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the views.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Card     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1),
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Label:    lipgloss.NewStyle().Width(11),
		Selected: lipgloss.NewStyle().Width(11).Bold(true).Foreground(lipgloss.Color("212")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Card:     lipgloss.NewStyle().PaddingLeft(2),
	}
}
