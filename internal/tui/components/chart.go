package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one line in a LineChart.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

// Sparkline renders a unicode sparkline scaled between the series
// minimum and maximum.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := len(blocks) - 1
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// chartBounds returns a y range that includes zero and every value,
// widened to whole tick steps.
func chartBounds(series []Series) (lo, hi, step float64) {
	for _, s := range series {
		for _, v := range s.Values {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	step = chartTickStep(hi - lo)
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	return lo, hi, step
}

// scaleRow maps v onto a row index, 0 being the top row.
func scaleRow(v, lo, hi float64, rows int) int {
	if rows <= 1 || hi <= lo {
		return 0
	}
	r := int(math.Round((hi - v) / (hi - lo) * float64(rows-1)))
	return max(0, min(r, rows-1))
}

type cell struct {
	r     rune
	color lipgloss.Color
}

// LineChart renders series as lines over a shared week axis. The y axis
// always includes zero so losses plot below the zero rule.
func LineChart(series []Series, labels []string, width, height int) string {
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
	}
	if n == 0 {
		return ""
	}
	t := theme.Active
	height = max(height, 4)

	lo, hi, step := chartBounds(series)

	yLabels := make(map[int]string)
	yLabelW := 1
	for v := lo; v <= hi+step/2; v += step {
		lbl := formatChartLabel(v)
		row := scaleRow(v, lo, hi, height)
		if _, taken := yLabels[row]; !taken {
			yLabels[row] = lbl
			yLabelW = max(yLabelW, len(lbl))
		}
	}

	plotW := max(width-yLabelW-1, n)

	grid := make([][]cell, height)
	for r := range grid {
		grid[r] = make([]cell, plotW)
	}

	zeroRow := scaleRow(0, lo, hi, height)
	for x := range grid[zeroRow] {
		grid[zeroRow][x] = cell{r: '┈', color: t.TextDim}
	}

	xAt := func(i int) int {
		if n == 1 {
			return 0
		}
		return i * (plotW - 1) / (n - 1)
	}

	for _, s := range series {
		for i := 0; i+1 < len(s.Values); i++ {
			x0, x1 := xAt(i), xAt(i+1)
			for x := x0 + 1; x < x1; x++ {
				frac := float64(x-x0) / float64(x1-x0)
				v := s.Values[i] + frac*(s.Values[i+1]-s.Values[i])
				grid[scaleRow(v, lo, hi, height)][x] = cell{r: '·', color: s.Color}
			}
		}
		for i, v := range s.Values {
			grid[scaleRow(v, lo, hi, height)][xAt(i)] = cell{r: '●', color: s.Color}
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for r, row := range grid {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, yLabels[r])))
		b.WriteString(axisStyle.Render("│"))
		for _, c := range row {
			if c.r == 0 {
				b.WriteString(blank.Render(" "))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(c.color).Background(t.Surface).Render(string(c.r)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW) + "└" + strings.Repeat("─", plotW)))
	b.WriteString("\n")

	// First, middle and last week labels.
	buf := []byte(strings.Repeat(" ", plotW))
	if len(labels) == n {
		for _, i := range []int{0, n / 2, n - 1} {
			lbl := labels[i]
			pos := min(xAt(i), plotW-len(lbl))
			if pos < 0 {
				continue
			}
			copy(buf[pos:], lbl)
		}
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + string(buf)))
	b.WriteString("\n")

	legend := make([]string, 0, len(series))
	for _, s := range series {
		legend = append(legend,
			lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("●")+
				lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" "+s.Name))
	}
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(strings.Join(legend, blank.Render("   ")))

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	rough := span / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1 || v == 0:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
