package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/bazaar/internal/negotiation"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OutcomeStyle colors a negotiation outcome.
func OutcomeStyle(status negotiation.Status) lipgloss.Style {
	switch status {
	case negotiation.StatusAccepted:
		return StyleGreen
	case negotiation.StatusCounter:
		return StyleYellow
	case negotiation.StatusRejected, negotiation.StatusError:
		return StyleRed
	default:
		return StyleDim
	}
}

// OutcomeBadge renders a status pill such as "● COUNTER".
func OutcomeBadge(status negotiation.Status) string {
	switch status {
	case negotiation.StatusAccepted:
		return StyleGreen.Render("✔ ACCEPTED")
	case negotiation.StatusCounter:
		return StyleYellow.Render("● COUNTER")
	case negotiation.StatusRejected:
		return StyleRed.Render("✖ REJECTED")
	case negotiation.StatusError:
		return StyleRed.Render("! ERROR")
	default:
		return StyleDim.Render(strings.ToUpper(string(status)))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
