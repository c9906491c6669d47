package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/store"
	"github.com/theirongolddev/stakesim/internal/tui/components"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) historyKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	last := len(a.runs) - 1
	switch {
	case key.Matches(msg, keys.Up):
		a.histCursor = clamp(a.histCursor-1, 0, last)
	case key.Matches(msg, keys.Down):
		a.histCursor = clamp(a.histCursor+1, 0, last)
	case key.Matches(msg, keys.Top):
		a.histCursor = 0
	case key.Matches(msg, keys.Bottom):
		a.histCursor = max(last, 0)
	case key.Matches(msg, keys.Enter):
		if a.histCursor < len(a.runs) {
			a.loadRun(a.runs[a.histCursor])
		}
	case key.Matches(msg, keys.Delete):
		if a.history != nil && a.histCursor < len(a.runs) {
			return true, deleteRunCmd(a.history, a.runs[a.histCursor].ID)
		}
	case key.Matches(msg, keys.Reload):
		if a.history != nil && !a.loadingRuns {
			a.loadingRuns = true
			return true, tea.Batch(loadRunsCmd(a.history), a.spinner.Tick)
		}
	default:
		return false, nil
	}
	return true, nil
}

// loadRun puts a saved run back into the Simulate controls. Provider
// prices come from the current tables, so a run saved before a pricing
// override changes shows the new numbers.
func (a *App) loadRun(r store.Run) {
	if !a.selectProviders(r.Compute, r.Blob) {
		a.setStatus(fmt.Sprintf("run #%d uses providers no longer configured", r.ID), true)
	} else {
		a.setStatus(fmt.Sprintf("loaded run #%d", r.ID), false)
	}
	a.name = r.Name
	a.assumptions = r.Scenario.Assumptions
	a.priceIn.SetValue(formatAmount(r.Scenario.TokenPrice))
	a.stakeIn.SetValue(formatAmount(r.Scenario.StakeAmount))
	a.recompute()
	a.activeTab = tabSimulate
}

func (a App) renderHistoryTab(cw, contentH int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	switch {
	case a.history == nil:
		return components.ContentCard("History", dimStyle.Render("History database is unavailable."), cw)
	case a.loadingRuns && !a.runsLoaded:
		return components.ContentCard("History", a.spinner.View()+dimStyle.Render(" Loading saved runs..."), cw)
	case len(a.runs) == 0:
		return components.ContentCard("History",
			dimStyle.Render("No saved runs yet. Press ctrl+s on any tab to save the current scenario."), cw)
	}

	const idW, dateW, netW, weeksW = 5, 16, 12, 6
	nameW := max(innerW-idW-dateW-netW-weeksW-26, 10)
	pairW := 24

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %-*s %*s %*s",
		idW, "ID", nameW, "Name", pairW, "Providers", dateW, "Saved", weeksW, "Weeks", netW, "Final net")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	visible := max(contentH-6, 3)
	start := 0
	if a.histCursor >= visible {
		start = a.histCursor - visible + 1
	}
	end := min(start+visible, len(a.runs))

	for i := start; i < end; i++ {
		r := a.runs[i]
		selected := i == a.histCursor
		text := fmt.Sprintf("%-*d %-*s %-*s %-*s %*d ",
			idW, r.ID,
			nameW, truncStr(r.Name, nameW),
			pairW, truncStr(r.Compute+" + "+r.Blob, pairW),
			dateW, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			weeksW, r.Scenario.Assumptions.WeekCount)
		netText := fmt.Sprintf("%*s", netW, cli.FormatUSDExact(r.FinalNet))

		bg := t.Surface
		var line string
		if selected {
			bg = t.SurfaceHover
			line = markerStyle.Render("▸ ") + selStyle.Render(text)
		} else {
			line = nameStyle.Render("  " + text)
		}
		line += lipgloss.NewStyle().Foreground(t.Signed(r.FinalNet)).Background(bg).Render(netText)
		if selected {
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", pad))
			}
		}
		body.WriteString(line)
		body.WriteString("\n")
	}

	hint := "[j/k] move  [Enter] load  [d] delete  [r] reload"
	if a.loadingRuns {
		hint = a.spinner.View() + " " + hint
	}
	body.WriteString(mutedStyle.Render(hint))

	return components.ContentCard(fmt.Sprintf("History  %d saved runs", len(a.runs)), body.String(), cw)
}
