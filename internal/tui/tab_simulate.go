package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/model"
	"github.com/theirongolddev/stakesim/internal/sim"
	"github.com/theirongolddev/stakesim/internal/tui/components"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// chartChrome is the card border, title and the axis, label and legend
// rows LineChart adds below the plot.
const chartChrome = 6

func (a App) renderSimulateTab(cw, contentH int) string {
	metrics := components.MetricCardRow(a.summaryMetrics(), cw)

	var top string
	if a.isCompactLayout() {
		top = components.ContentCard("Scenario", a.renderControls(components.CardInnerWidth(cw)), cw)
	} else {
		widths := components.LayoutRow(cw, 2)
		top = components.CardRow([]string{
			components.ContentCard("Scenario", a.renderControls(components.CardInnerWidth(widths[0])), widths[0]),
			components.ContentCard("Economics", a.renderEconomics(components.CardInnerWidth(widths[1])), widths[1]),
		})
	}

	used := lipgloss.Height(metrics) + lipgloss.Height(top)
	chartH := max(contentH-used-chartChrome, 4)

	t := theme.Active
	lines := []components.Series{
		{Name: "Earnings", Values: series(a.weeks, func(w model.WeekProjection) float64 { return w.WeeklyEarningsUSD }), Color: t.Earnings},
		{Name: "Infra cost", Values: series(a.weeks, func(w model.WeekProjection) float64 { return w.WeeklyInfraCostUSD }), Color: t.InfraCost},
		{Name: "Net", Values: series(a.weeks, func(w model.WeekProjection) float64 { return w.NetUSD }), Color: t.Net},
		{Name: "Cumulative net", Values: series(a.weeks, func(w model.WeekProjection) float64 { return w.CumulativeNetUSD }), Color: t.Cumulative},
	}
	chart := components.LineChart(lines, weekLabels(a.weeks), components.CardInnerWidth(cw), chartH)
	if chart == "" {
		chart = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No weeks to simulate.")
	}

	var b strings.Builder
	b.WriteString(metrics)
	b.WriteString("\n")
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Weekly projection (USD)", chart, cw))
	return b.String()
}

func (a App) summaryMetrics() []components.Metric {
	s := a.summary

	final := components.Metric{
		Label: "Cumulative net",
		Value: cli.FormatUSD(s.FinalCumulativeNetUSD),
		Delta: fmt.Sprintf("after %d weeks", s.Weeks),
		Tone:  components.ToneOf(s.FinalCumulativeNetUSD),
	}
	earned := components.Metric{
		Label: "Earnings",
		Value: cli.FormatUSD(s.TotalEarningsUSD),
		Delta: cli.FormatTokenAmount(a.scenario.StakeAmount) + " staked",
	}
	cost := components.Metric{
		Label: "Infra cost",
		Value: cli.FormatUSD(s.TotalInfraCostUSD),
		Delta: cli.FormatUSD(sim.WeeklyBaseCost(a.scenario)) + "/wk base",
	}
	breakEven := components.Metric{
		Label: "Break-even",
		Value: cli.FormatWeek(s.BreakEvenWeek),
		Tone:  components.ToneGain,
	}
	if s.BreakEvenWeek == 0 {
		breakEven.Tone = components.ToneLoss
	}
	if s.TotalInfraCostUSD > 0 {
		breakEven.Delta = fmt.Sprintf("%.2fx coverage", s.CostCoverage)
	}

	return []components.Metric{final, earned, cost, breakEven}
}

func (a App) renderControls(innerW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	focusLabel := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	focusValue := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	arrowStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	errStyle := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)

	cp := a.computes[a.computeIdx]
	bp := a.blobs[a.blobIdx]

	type row struct {
		label string
		value string
		hint  string
		list  bool
	}
	inputValue := func(in string, focus int) string {
		if a.editing && a.focus == focus {
			return a.focusedInputView()
		}
		return in
	}
	rows := []row{
		{"Compute", truncStr(cp.Label, max(innerW-28, 8)), cli.FormatUSD(cp.MonthlyUSD) + "/mo", true},
		{"Blob", truncStr(bp.Label, max(innerW-28, 8)), cli.FormatUSD(bp.Cost(a.assumptions)) + "/mo", true},
		{"Token price", inputValue(a.priceIn.Value(), focusPrice), "USD", false},
		{"Stake", inputValue(a.stakeIn.Value(), focusStake), "tokens", false},
	}

	var b strings.Builder
	for i, r := range rows {
		focused := i == a.focus

		var line string
		if focused {
			line = markerStyle.Render("▸ ") + focusLabel.Render(fmt.Sprintf("%-12s", r.label))
			if r.list {
				line += arrowStyle.Render("◂ ") + focusValue.Render(r.value) + arrowStyle.Render(" ▸")
			} else {
				line += focusValue.Render(r.value)
			}
			line += focusValue.Render(" ") + lipgloss.NewStyle().Foreground(t.TextDim).Background(t.SurfaceHover).Render(r.hint)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", pad))
			}
		} else {
			line = labelStyle.Render("  "+fmt.Sprintf("%-12s", r.label)) +
				valueStyle.Render(r.value) + dimStyle.Render(" "+r.hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if a.inputErr != "" {
		b.WriteString(errStyle.Render("✗ " + a.inputErr))
	} else if a.editing {
		b.WriteString(dimStyle.Render("[Enter] apply  [Esc] cancel"))
	} else {
		b.WriteString(dimStyle.Render("[j/k] move  [←/→] provider  [Enter] edit"))
	}
	return b.String()
}

func (a App) renderEconomics(innerW int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	kv := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value) + "\n"
	}

	beStake := "unreachable"
	if a.breakEvenOK {
		beStake = cli.FormatTokenAmount(a.breakEven) + " tokens"
	}

	var b strings.Builder
	b.WriteString(kv("Break-even stake", beStake))
	b.WriteString(kv("Avg weekly net", cli.FormatUSD(a.summary.AvgWeeklyNetUSD)))
	b.WriteString(kv("Best / worst week", fmt.Sprintf("%s / %s",
		cli.FormatWeek(a.summary.BestWeek), cli.FormatWeek(a.summary.WorstWeek))))
	b.WriteString(kv("Reward rate", cli.FormatPercent(a.assumptions.AnnualRewardRate)+" / yr"))
	b.WriteString(components.CoverageBar("Coverage", a.summary.TotalEarningsUSD, a.summary.TotalInfraCostUSD,
		17, max(innerW-26, 8)))
	return b.String()
}

func series(weeks []model.WeekProjection, f func(model.WeekProjection) float64) []float64 {
	out := make([]float64, len(weeks))
	for i, w := range weeks {
		out[i] = f(w)
	}
	return out
}
