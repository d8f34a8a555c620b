package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. These are the single source of truth; never use inline
// lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module names, tab keys.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for additions.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modifications.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removals.
	ColorRed = lipgloss.Color("196")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used to render diffs.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// GetStyles returns the colored diff styles.
func GetStyles() *Styles {
	return &Styles{
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
	}
}

// NoColorStyles returns diff styles that render plain text.
func NoColorStyles() *Styles {
	return &Styles{
		Success: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
