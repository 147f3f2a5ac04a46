// Package ui holds the lipgloss palette shared by the terminal views.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary  = lipgloss.Color("#5B8DEF")
	Accent   = lipgloss.Color("#F2C14E")
	Success  = lipgloss.Color("#3FB950")
	Warning  = lipgloss.Color("#D29922")
	ErrorCol = lipgloss.Color("#F85149")
	Text     = lipgloss.Color("#E6EDF3")
	Muted    = lipgloss.Color("#7D8590")
	Border   = lipgloss.Color("240")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Faint(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorCol)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	// 分頁列
	PageStyle = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)

	CurrentPageStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Underline(true).
				Padding(0, 1)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Faint(true).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(14)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Width(14)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	StaleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(Warning).
			Padding(0, 1)

	ContainerStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
