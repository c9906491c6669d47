package components

import (
	"strings"

	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. msg is shown on the right;
// isErr colours it as a loss.
func RenderStatusBar(width int, scenario, msg string, isErr bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Loss)
	}

	left := base.Render(" ") +
		keyStyle.Render("?") + base.Render(" help  ") +
		keyStyle.Render("^s") + base.Render(" save  ") +
		keyStyle.Render("q") + base.Render(" quit")
	if scenario != "" {
		left += base.Render("  │  " + scenario)
	}

	right := ""
	if msg != "" {
		right = msgStyle.Render(msg + " ")
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
