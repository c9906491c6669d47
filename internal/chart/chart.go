// Package chart renders projections as interactive HTML charts.
package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/theirongolddev/stakesim/internal/model"
)

// Series names, in legend order.
const (
	SeriesEarnings   = "Weekly earnings"
	SeriesInfraCost  = "Weekly infra cost"
	SeriesNet        = "Weekly net"
	SeriesCumulative = "Cumulative net"
)

// round2 keeps the embedded JSON readable.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func lineData(weeks []model.WeekProjection, pick func(model.WeekProjection) float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(weeks))
	for _, w := range weeks {
		data = append(data, opts.LineData{Value: round2(pick(w))})
	}
	return data
}

// Projection builds a line chart with one series per projection field.
func Projection(title, subtitle string, weeks []model.WeekProjection) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "960px",
			Height:    "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Week"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "USD"}),
	)

	labels := make([]string, 0, len(weeks))
	for _, w := range weeks {
		labels = append(labels, strconv.Itoa(w.Week))
	}

	line.SetXAxis(labels).
		AddSeries(SeriesEarnings, lineData(weeks, func(w model.WeekProjection) float64 { return w.WeeklyEarningsUSD })).
		AddSeries(SeriesInfraCost, lineData(weeks, func(w model.WeekProjection) float64 { return w.WeeklyInfraCostUSD })).
		AddSeries(SeriesNet, lineData(weeks, func(w model.WeekProjection) float64 { return w.NetUSD })).
		AddSeries(SeriesCumulative, lineData(weeks, func(w model.WeekProjection) float64 { return w.CumulativeNetUSD })).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)
	return line
}

// Comparison builds a bar chart of final cumulative net per provider pairing.
func Comparison(rows []model.ComparisonRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Provider comparison",
			Subtitle: "Final cumulative net by compute / blob pairing",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "USD"}),
	)

	labels := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, fmt.Sprintf("%s / %s", r.Compute, r.Blob))
		data = append(data, opts.BarData{Value: round2(r.Summary.FinalCumulativeNetUSD)})
	}
	bar.SetXAxis(labels).AddSeries("Final net", data)
	return bar
}

// Render writes an HTML page with the projection chart, followed by
// the comparison chart when rows is non-empty.
func Render(w io.Writer, title, subtitle string, weeks []model.WeekProjection, rows []model.ComparisonRow) error {
	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(Projection(title, subtitle, weeks))
	if len(rows) > 0 {
		page.AddCharts(Comparison(rows))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
