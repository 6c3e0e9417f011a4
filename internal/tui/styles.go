package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#F16436")).
			Padding(0, 1)

	// Field label styles
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(10)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("#F16436"))

	// Dropdown option styles
	selectedOptionStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFA500")).
				Foreground(lipgloss.Color("#000000"))

	disabledOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#808080")).
				Italic(true)

	// Button styles
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#505050"))

	focusedButtonStyle = buttonStyle.
				Background(lipgloss.Color("#F16436")).
				Bold(true)

	// Status styles
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// getOptionStyle returns the style of a dropdown option
func getOptionStyle(disabled, highlighted bool) lipgloss.Style {
	switch {
	case highlighted:
		return selectedOptionStyle
	case disabled:
		return disabledOptionStyle
	default:
		return lipgloss.NewStyle()
	}
}
