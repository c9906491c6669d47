package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/stakesim/internal/model"
)

func TestSummarize_Totals(t *testing.T) {
	weeks := Simulate(referenceScenario())
	s := Summarize(weeks)

	var earnings, costs float64
	for _, w := range weeks {
		earnings += w.WeeklyEarningsUSD
		costs += w.WeeklyInfraCostUSD
	}

	assert.Equal(t, 12, s.Weeks)
	assert.InDelta(t, earnings, s.TotalEarningsUSD, 1e-9)
	assert.InDelta(t, costs, s.TotalInfraCostUSD, 1e-9)
	assert.Equal(t, weeks[11].CumulativeNetUSD, s.FinalCumulativeNetUSD)
	assert.InDelta(t, s.FinalCumulativeNetUSD/12, s.AvgWeeklyNetUSD, 1e-9)
	assert.InDelta(t, earnings/costs, s.CostCoverage, 1e-9)
	assert.True(t, s.Profitable)
	assert.Equal(t, 1, s.BreakEvenWeek)
	assert.Equal(t, 2, s.BestWeek)
	assert.Equal(t, 12, s.WorstWeek)
}

func TestSummarize_NeverBreaksEven(t *testing.T) {
	sc := referenceScenario()
	sc.StakeAmount = 0

	s := Summarize(Simulate(sc))
	assert.Zero(t, s.BreakEvenWeek)
	assert.False(t, s.Profitable)
	assert.Zero(t, s.CostCoverage)
	// Costs grow every week, so the first week loses the least.
	assert.Equal(t, 1, s.BestWeek)
	assert.Equal(t, 12, s.WorstWeek)
}

func TestSummarize_LateBreakEven(t *testing.T) {
	weeks := []model.WeekProjection{
		{Week: 1, NetUSD: -10, CumulativeNetUSD: -10},
		{Week: 2, NetUSD: 4, CumulativeNetUSD: -6},
		{Week: 3, NetUSD: 6, CumulativeNetUSD: 0},
		{Week: 4, NetUSD: 1, CumulativeNetUSD: 1},
	}
	s := Summarize(weeks)
	assert.Equal(t, 3, s.BreakEvenWeek)
	assert.True(t, s.Profitable)
	assert.Equal(t, 3, s.BestWeek)
	assert.Equal(t, 1, s.WorstWeek)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, model.Summary{}, s)
	assert.False(t, s.Profitable)
}

func TestBreakEvenStake(t *testing.T) {
	sc := referenceScenario()
	stake, ok := BreakEvenStake(sc)
	require.True(t, ok)
	assert.InDelta(t, 172339.06, stake, 0.1)

	sc.StakeAmount = stake
	weeks := Simulate(sc)
	assert.InDelta(t, 0, weeks[len(weeks)-1].CumulativeNetUSD, 1e-6)
}

func TestBreakEvenStake_ZeroPrice(t *testing.T) {
	sc := referenceScenario()
	sc.TokenPrice = 0
	_, ok := BreakEvenStake(sc)
	assert.False(t, ok)
}
