package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/tui/components"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) compareKey(msg tea.KeyMsg) bool {
	last := len(a.rows) - 1
	switch {
	case key.Matches(msg, keys.Up):
		a.compareCursor = clamp(a.compareCursor-1, 0, last)
	case key.Matches(msg, keys.Down):
		a.compareCursor = clamp(a.compareCursor+1, 0, last)
	case key.Matches(msg, keys.Top):
		a.compareCursor = 0
	case key.Matches(msg, keys.Bottom):
		a.compareCursor = max(last, 0)
	case key.Matches(msg, keys.Enter):
		a.applyComparison()
	default:
		return false
	}
	return true
}

// applyComparison moves the Simulate selectors to the highlighted pairing.
func (a *App) applyComparison() {
	if a.compareCursor >= len(a.rows) {
		return
	}
	row := a.rows[a.compareCursor]
	a.selectProviders(row.Compute, row.Blob)
	a.recompute()
	a.activeTab = tabSimulate
	a.setStatus(fmt.Sprintf("switched to %s + %s", row.Compute, row.Blob), false)
}

func (a App) renderCompareTab(cw, contentH int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	const rankW, costW, netW, beW = 4, 11, 12, 10
	nameW := max((innerW-rankW-costW-netW-beW-6)/2, 10)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %*s %*s %*s",
		rankW, "#", nameW, "Compute", nameW, "Blob", costW, "Base/wk", netW, "Final net", beW, "Break-even")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	visible := max(contentH-6, 3)
	start := 0
	if a.compareCursor >= visible {
		start = a.compareCursor - visible + 1
	}
	end := min(start+visible, len(a.rows))

	for i := start; i < end; i++ {
		r := a.rows[i]
		selected := i == a.compareCursor
		current := r.Compute == a.computeName() && r.Blob == a.blobName()

		rank := fmt.Sprintf("%-*d", rankW, i+1)
		if current {
			rank = fmt.Sprintf("%-*s", rankW, fmt.Sprintf("%d*", i+1))
		}
		text := fmt.Sprintf("%s %-*s %-*s %*s ", rank,
			nameW, truncStr(r.Compute, nameW), nameW, truncStr(r.Blob, nameW),
			costW, cli.FormatUSDExact(r.WeeklyBaseCostUSD))
		netText := fmt.Sprintf("%*s", netW, cli.FormatUSDExact(r.Summary.FinalCumulativeNetUSD))
		beText := fmt.Sprintf(" %*s", beW, cli.FormatWeek(r.Summary.BreakEvenWeek))

		bg := t.Surface
		var line string
		if selected {
			bg = t.SurfaceHover
			line = markerStyle.Render("▸ ") + selStyle.Render(text)
		} else {
			line = nameStyle.Render("  " + text)
		}
		line += lipgloss.NewStyle().Foreground(t.Signed(r.Summary.FinalCumulativeNetUSD)).Background(bg).Render(netText)
		line += lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg).Render(beText)
		if selected {
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", pad))
			}
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	body.WriteString(mutedStyle.Render("[j/k] move  [Enter] simulate this pairing  * current"))

	title := fmt.Sprintf("Provider comparison  %d pairings at %s, %s tokens",
		len(a.rows), cli.FormatUSDExact(a.scenario.TokenPrice), cli.FormatTokenAmount(a.scenario.StakeAmount))
	return components.ContentCard(title, body.String(), cw)
}
