package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kanbankarma/karma/internal/model"
)

// Color palette
var (
	// Column colors
	ColorTodo       = lipgloss.Color("#FFB347") // Orange
	ColorInProgress = lipgloss.Color("#FFE66D") // Yellow
	ColorDone       = lipgloss.Color("#95E1A3") // Green

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	ErrorRed  = lipgloss.Color("#FF6B6B")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			Width(22).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	ColumnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			MarginRight(1)

	ColumnFocusedStyle = ColumnStyle.
				BorderForeground(Primary)

	BoardItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	BoardItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	CardStyle = lipgloss.NewStyle().
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorRed).
			Bold(true)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// ColumnTitleStyle returns the header style for a status column
func ColumnTitleStyle(s model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case model.StatusTodo:
		return base.Foreground(ColorTodo)
	case model.StatusInProgress:
		return base.Foreground(ColorInProgress)
	case model.StatusDone:
		return base.Foreground(ColorDone)
	}
	return base
}

// ColumnTitle returns the display name of a status column
func ColumnTitle(s model.Status) string {
	switch s {
	case model.StatusTodo:
		return "To Do"
	case model.StatusInProgress:
		return "In Progress"
	case model.StatusDone:
		return "Done"
	}
	return string(s)
}
