package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/model"
	"github.com/theirongolddev/stakesim/internal/tui/components"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) weeklyKey(msg tea.KeyMsg) bool {
	last := len(a.weeks) - 1
	switch {
	case key.Matches(msg, keys.Up):
		a.weekOffset = clamp(a.weekOffset-1, 0, last)
	case key.Matches(msg, keys.Down):
		a.weekOffset = clamp(a.weekOffset+1, 0, last)
	case key.Matches(msg, keys.Top):
		a.weekOffset = 0
	case key.Matches(msg, keys.Bottom):
		a.weekOffset = max(last, 0)
	default:
		return false
	}
	return true
}

func (a App) renderWeeklyTab(cw, contentH int) string {
	t := theme.Active

	if len(a.weeks) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("The horizon is zero weeks; nothing to show.")
		return components.ContentCard("Weekly breakdown", body, cw)
	}

	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	earnStyle := lipgloss.NewStyle().Foreground(t.Earnings).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.InfraCost).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	// Week, four money columns, then a coverage bar in whatever is left.
	const weekW, moneyW = 6, 12
	barW := max(innerW-weekW-4*(moneyW+1)-18, 6)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s  %s",
		weekW, "Week", moneyW, "Earnings", moneyW, "Infra cost", moneyW, "Net", moneyW, "Cum. net", "Coverage")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	// Card chrome, header, rule, footer rule and totals line.
	visible := max(contentH-8, 3)
	start := clamp(a.weekOffset, 0, max(len(a.weeks)-visible, 0))
	end := min(start+visible, len(a.weeks))

	signed := func(v float64) string {
		return lipgloss.NewStyle().Foreground(t.Signed(v)).Background(t.Surface).
			Render(fmt.Sprintf(" %*s", moneyW, cli.FormatUSDExact(v)))
	}

	for _, w := range a.weeks[start:end] {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%-*d", weekW, w.Week)))
		body.WriteString(earnStyle.Render(fmt.Sprintf(" %*s", moneyW, cli.FormatUSDExact(w.WeeklyEarningsUSD))))
		body.WriteString(costStyle.Render(fmt.Sprintf(" %*s", moneyW, cli.FormatUSDExact(w.WeeklyInfraCostUSD))))
		body.WriteString(signed(w.NetUSD))
		body.WriteString(signed(w.CumulativeNetUSD))
		body.WriteString(spaceStyle.Render("  "))
		body.WriteString(components.CoverageBar("", w.WeeklyEarningsUSD, w.WeeklyInfraCostUSD, 0, barW))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")
	s := a.summary
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s", weekW, "Total")))
	body.WriteString(earnStyle.Render(fmt.Sprintf(" %*s", moneyW, cli.FormatUSDExact(s.TotalEarningsUSD))))
	body.WriteString(costStyle.Render(fmt.Sprintf(" %*s", moneyW, cli.FormatUSDExact(s.TotalInfraCostUSD))))
	body.WriteString(signed(s.FinalCumulativeNetUSD))
	body.WriteString(spaceStyle.Render(fmt.Sprintf(" %*s  ", moneyW, "")))
	body.WriteString(components.Sparkline(cumulativeSeries(a.weeks), t.Cumulative))

	title := fmt.Sprintf("Weekly breakdown  weeks %d-%d of %d", a.weeks[start].Week, a.weeks[end-1].Week, len(a.weeks))
	return components.ContentCard(title, body.String(), cw)
}

func cumulativeSeries(weeks []model.WeekProjection) []float64 {
	return series(weeks, func(w model.WeekProjection) float64 { return w.CumulativeNetUSD })
}
