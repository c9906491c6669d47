package chart

import (
	"bytes"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/stakesim/internal/model"
)

func sampleWeeks() []model.WeekProjection {
	return []model.WeekProjection{
		{Week: 1, WeeklyEarningsUSD: 783.648, WeeklyInfraCostUSD: 59.8971, NetUSD: 723.7509, CumulativeNetUSD: 723.7509},
		{Week: 2, WeeklyEarningsUSD: 820.1, WeeklyInfraCostUSD: 60.78, NetUSD: 759.32, CumulativeNetUSD: 1483.07},
	}
}

func TestProjection_Series(t *testing.T) {
	line := Projection("Validator economics", "hetzner / aws-s3", sampleWeeks())
	require.Len(t, line.MultiSeries, 4)

	names := make([]string, 0, 4)
	for _, s := range line.MultiSeries {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{SeriesEarnings, SeriesInfraCost, SeriesNet, SeriesCumulative}, names)
}

func TestRender_Page(t *testing.T) {
	rows := []model.ComparisonRow{
		{Compute: "hetzner", Blob: "cloudflare-r2", Summary: model.Summary{FinalCumulativeNetUSD: 9000}},
		{Compute: "aws", Blob: "gcs", Summary: model.Summary{FinalCumulativeNetUSD: -120}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Validator economics", "hetzner / aws-s3", sampleWeeks(), rows))

	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Validator economics")
	assert.Contains(t, out, SeriesCumulative)
	assert.Contains(t, out, "Provider comparison")
	assert.Contains(t, out, "723.75")
}

func TestComparison_BarsUseFinalNet(t *testing.T) {
	bar := Comparison([]model.ComparisonRow{
		{Compute: "hetzner", Blob: "cloudflare-r2", Summary: model.Summary{FinalCumulativeNetUSD: 9000.123}},
		{Compute: "aws", Blob: "gcs", Summary: model.Summary{FinalCumulativeNetUSD: -120.456}},
	})
	require.Len(t, bar.MultiSeries, 1)

	data, ok := bar.MultiSeries[0].Data.([]opts.BarData)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, 9000.12, data[0].Value)
	assert.Equal(t, -120.46, data[1].Value)
}

func TestRender_NoComparison(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Only weeks", "", sampleWeeks(), nil))
	assert.NotContains(t, buf.String(), "Provider comparison")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Nothing", "", nil, nil))
	assert.Contains(t, buf.String(), "Nothing")
}
