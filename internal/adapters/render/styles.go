package render

import "github.com/charmbracelet/lipgloss"

var (
	colorIris  = lipgloss.Color("#8B5CF6")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")
	colorGreen = lipgloss.Color("#22A06B")
	colorRed   = lipgloss.Color("#D93025")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorIris).
			Foreground(colorWhite)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorIris).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	idleStyle = cellStyle.
			Foreground(colorSlate).
			Faint(true)

	borderStyle = lipgloss.NewStyle().
			Foreground(colorSlate)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	abortedStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
)
