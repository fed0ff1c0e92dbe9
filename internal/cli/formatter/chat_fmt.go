package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var assistantStyle = lipgloss.NewStyle().
	Foreground(ColorFg).
	PaddingLeft(2).
	BorderLeft(true).
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(ColorPurple)

// FormatChatWelcome is the greeting shown when the chat view opens.
func FormatChatWelcome() string {
	return StyleHeader.Render("BAZAAR ASSISTANT") + "\n" +
		Dim("Ask for products (\"I want to buy a laptop under $800\") or anything else. /quit to leave.") + "\n"
}

// FormatUserLine renders what the shopper typed.
func FormatUserLine(text string) string {
	return StyleBlue.Render("you") + Dim("> ") + text
}

// FormatAssistantReply renders an assistant reply, stripping the markdown
// bold markers the reply text carries.
func FormatAssistantReply(text string) string {
	text = strings.TrimRight(text, "\n")
	text = strings.ReplaceAll(text, "**", "")
	return assistantStyle.Render(text)
}
