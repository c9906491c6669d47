package components

import (
	"fmt"

	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Coverage is earnings divided by infra cost. Zero cost counts as full
// coverage.
func Coverage(earnings, cost float64) float64 {
	if cost <= 0 {
		if earnings > 0 {
			return 1
		}
		return 0
	}
	return max(earnings/cost, 0)
}

// ColorForCoverage returns loss/warn/gain depending on how much of the
// infra bill the rewards pay for.
func ColorForCoverage(ratio float64) lipgloss.Color {
	t := theme.Active
	switch {
	case ratio >= 1:
		return t.Gain
	case ratio >= 0.5:
		return t.Warn
	default:
		return t.Loss
	}
}

// CoverageBar renders a labeled bar showing how much of cost is covered
// by earnings. The bar saturates at 100%; the ratio text does not.
func CoverageBar(label string, earnings, cost float64, labelW, barWidth int) string {
	t := theme.Active

	ratio := Coverage(earnings, cost)
	fill := min(ratio, 1)
	color := ColorForCoverage(ratio)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	ratioStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(fill) +
		spaceStyle.Render(" ") +
		ratioStyle.Render(fmt.Sprintf("%5.2fx", ratio))
}
