package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

var sgr = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return sgr.ReplaceAllString(s, "") }

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	require.Less(t, shortLines, tallLines)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	require.Len(t, lines, tallLines)

	for i := shortLines; i < len(lines); i++ {
		assert.Contains(t, lines[i], "\x1b[", "line %d of the padding is unstyled", i)
	}
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	assert.Equal(t, []int{34, 33, 33}, widths)
	assert.Nil(t, LayoutRow(10, 0))
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Earnings", Value: "$783.65", Tone: ToneGain},
		{Label: "Infra cost", Value: "$59.90"},
		{Label: "Net", Value: "-$1.00", Tone: ToneOf(-1)},
	}, 90)
	for _, line := range strings.Split(row, "\n") {
		assert.Equal(t, 90, lipgloss.Width(line))
	}
	assert.Contains(t, plain(row), "-$1.00")
	assert.Empty(t, MetricCardRow(nil, 90))
}

func TestToneOf(t *testing.T) {
	assert.Equal(t, ToneLoss, ToneOf(-0.01))
	assert.Equal(t, ToneGain, ToneOf(0))
}

func TestTabBar(t *testing.T) {
	bar := RenderTabBar(0, 80)
	assert.Equal(t, 80, lipgloss.Width(bar))
	text := plain(bar)
	for _, tab := range Tabs {
		assert.Contains(t, text, tab.Name)
	}
	assert.Contains(t, text, "Settings[x]")

	assert.Equal(t, 1, TabIdxByKey('w'))
	assert.Equal(t, 4, TabIdxByKey('x'))
	assert.Equal(t, -1, TabIdxByKey('z'))

	assert.Equal(t, 10, TabVisualWidth(Tabs[0], true))
	assert.Equal(t, 13, TabVisualWidth(Tabs[4], false))
	assert.Equal(t, 10, TabVisualWidth(Tabs[4], true))
}

func TestSparkline(t *testing.T) {
	assert.Empty(t, Sparkline(nil, theme.Active.Net))
	assert.Equal(t, "▁▄█", plain(Sparkline([]float64{-100, 0, 100}, theme.Active.Net)))
	assert.Equal(t, "███", plain(Sparkline([]float64{5, 5, 5}, theme.Active.Net)))
}

func TestChartHelpers(t *testing.T) {
	assert.Equal(t, 200.0, chartTickStep(1000))
	assert.Equal(t, 1.0, chartTickStep(0))

	assert.Equal(t, "0", formatChartLabel(0))
	assert.Equal(t, "2k", formatChartLabel(2000))
	assert.Equal(t, "-1.5k", formatChartLabel(-1500))
	assert.Equal(t, "3M", formatChartLabel(3e6))
	assert.Equal(t, "0.25", formatChartLabel(0.25))

	assert.Equal(t, 0, scaleRow(100, -100, 100, 11))
	assert.Equal(t, 5, scaleRow(0, -100, 100, 11))
	assert.Equal(t, 10, scaleRow(-100, -100, 100, 11))
	assert.Equal(t, 10, scaleRow(-500, -100, 100, 11))
}

func TestChartBoundsIncludeZero(t *testing.T) {
	lo, hi, step := chartBounds([]Series{{Values: []float64{-250, 800}}})
	assert.LessOrEqual(t, lo, -250.0)
	assert.GreaterOrEqual(t, hi, 800.0)
	assert.InDelta(t, 0, lo-step*float64(int(lo/step)), 1e-9)

	lo, hi, _ = chartBounds([]Series{{Values: []float64{10, 20}}})
	assert.Equal(t, 0.0, lo)
	assert.GreaterOrEqual(t, hi, 20.0)
}

func TestLineChart(t *testing.T) {
	assert.Empty(t, LineChart(nil, nil, 60, 10))

	series := []Series{
		{Name: "Weekly net", Values: []float64{-100, 50, 200, 350}, Color: theme.Active.Net},
		{Name: "Cumulative net", Values: []float64{-100, -50, 150, 500}, Color: theme.Active.Cumulative},
	}
	labels := []string{"w1", "w2", "w3", "w4"}
	out := plain(LineChart(series, labels, 60, 10))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 10+3)
	assert.Contains(t, out, "┈", "zero rule")
	assert.Contains(t, lines[11], "w1")
	assert.Contains(t, lines[11], "w4")
	assert.Contains(t, lines[12], "Weekly net")
	assert.Contains(t, lines[12], "Cumulative net")

	zero, low := -1, -1
	for i, l := range lines[:10] {
		if strings.Contains(l, "┈") && zero < 0 {
			zero = i
		}
		if strings.HasPrefix(strings.TrimSpace(l), "-") {
			low = i
		}
	}
	require.GreaterOrEqual(t, zero, 0)
	assert.Greater(t, low, zero, "negative labels sit below the zero rule")
}

func TestCoverage(t *testing.T) {
	assert.Equal(t, 0.0, Coverage(0, 0))
	assert.Equal(t, 1.0, Coverage(10, 0))
	assert.Equal(t, 0.5, Coverage(50, 100))
	assert.Equal(t, 0.0, Coverage(-5, 10))

	assert.Equal(t, theme.Active.Gain, ColorForCoverage(1.2))
	assert.Equal(t, theme.Active.Warn, ColorForCoverage(0.6))
	assert.Equal(t, theme.Active.Loss, ColorForCoverage(0.1))

	bar := plain(CoverageBar("Week 1", 783.65, 59.9, 8, 20))
	assert.Contains(t, bar, "Week 1")
	assert.Contains(t, bar, "13.08x")
}

func TestStatusBar(t *testing.T) {
	bar := RenderStatusBar(80, "aws / s3", "saved run 3", false)
	assert.Equal(t, 80, lipgloss.Width(bar))
	text := plain(bar)
	assert.Contains(t, text, "aws / s3")
	assert.True(t, strings.HasSuffix(text, "saved run 3 "))
}
