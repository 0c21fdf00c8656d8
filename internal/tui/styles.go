package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Priority colors
	PriorityUrgent = lipgloss.Color("#FF6B6B")
	PriorityHigh   = lipgloss.Color("#FFB347")
	PriorityMedium = lipgloss.Color("#FFE66D")
	PriorityLow    = lipgloss.Color("#4ECDC4")

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	BorderCol = lipgloss.Color("#333333")
	Danger    = lipgloss.Color("#FF6B6B")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1).
			MarginTop(1)

	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	PriorityP1Style = lipgloss.NewStyle().Foreground(PriorityUrgent).Bold(true)
	PriorityP2Style = lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true)
	PriorityP3Style = lipgloss.NewStyle().Foreground(PriorityMedium)
	PriorityP4Style = lipgloss.NewStyle().Foreground(PriorityLow)

	MessageStyle = lipgloss.NewStyle().Foreground(TextMuted).Padding(0, 1)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Danger).Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(BorderCol)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().Foreground(TextMuted)
)

// FormatPriority returns a styled priority badge
func FormatPriority(priority string) string {
	switch priority {
	case "urgent":
		return PriorityP1Style.Render("P1")
	case "high":
		return PriorityP2Style.Render("P2")
	case "medium":
		return PriorityP3Style.Render("P3")
	case "low":
		return PriorityP4Style.Render("P4")
	}
	return ""
}
