package ui

import "github.com/charmbracelet/lipgloss"

// Styles defines the lipgloss styles shared across the CLI.
var Styles = struct {
	Bold       lipgloss.Style
	UserLabel  lipgloss.Style
	AILabel    lipgloss.Style
	Emphasis   lipgloss.Style
	Dim        lipgloss.Style
	ErrorLine  lipgloss.Style
	NoticeBox  lipgloss.Style
	SuccessBox lipgloss.Style
}{
	Bold: lipgloss.NewStyle().Bold(true),

	UserLabel: lipgloss.NewStyle().Bold(true),

	AILabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),

	Emphasis: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),

	Dim: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

	ErrorLine: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

	NoticeBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("214")).
		Padding(0, 1).
		Width(60),

	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("42")).
		Padding(0, 1).
		Width(60),
}
