package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/stakesim/internal/model"
)

// referenceScenario is hetzner compute + S3-priced blobs at 0.27 USD
// with two million tokens staked.
func referenceScenario() model.Scenario {
	return model.Scenario{
		ComputeBaseMonthlyCost: 80,
		StoragePerGBMonthly:    0.023,
		EgressPerGBMonthly:     0.09,
		TokenPrice:             0.27,
		StakeAmount:            2_000_000,
		Assumptions:            model.DefaultAssumptions(),
	}
}

func TestSimulate_WeekCountAndOrder(t *testing.T) {
	weeks := Simulate(referenceScenario())
	require.Len(t, weeks, 12)
	for i, w := range weeks {
		assert.Equal(t, i+1, w.Week)
	}
}

func TestSimulate_NetIsEarningsMinusCost(t *testing.T) {
	for _, w := range Simulate(referenceScenario()) {
		assert.Equal(t, w.WeeklyEarningsUSD-w.WeeklyInfraCostUSD, w.NetUSD, "week %d", w.Week)
	}
}

func TestSimulate_CumulativeNetIsRunningSum(t *testing.T) {
	var earnings, costs float64
	for _, w := range Simulate(referenceScenario()) {
		earnings += w.WeeklyEarningsUSD
		costs += w.WeeklyInfraCostUSD
		assert.InDelta(t, earnings-costs, w.CumulativeNetUSD, 1e-9, "week %d", w.Week)
	}
}

func TestSimulate_ReferenceWeekOne(t *testing.T) {
	w1 := Simulate(referenceScenario())[0]

	// (80/4.345 + 0.023*200 + 0.09*400) * 1.015
	assert.InDelta(t, 59.8971, w1.WeeklyInfraCostUSD, 1e-3)
	assert.InDelta(t, 783.648, w1.WeeklyEarningsUSD, 1e-3)
	assert.InDelta(t, 723.751, w1.CumulativeNetUSD, 1e-3)
}

func TestSimulate_ReferenceFinalWeek(t *testing.T) {
	weeks := Simulate(referenceScenario())
	last := weeks[len(weeks)-1]
	assert.InDelta(t, 69.6341, last.WeeklyInfraCostUSD, 1e-3)
	assert.InDelta(t, 8242.098, last.CumulativeNetUSD, 1e-2)
}

func TestSimulate_InfraCostStrictlyIncreasing(t *testing.T) {
	weeks := Simulate(referenceScenario())
	for i := 1; i < len(weeks); i++ {
		assert.Greater(t, weeks[i].WeeklyInfraCostUSD, weeks[i-1].WeeklyInfraCostUSD,
			"week %d cost should exceed week %d", weeks[i].Week, weeks[i-1].Week)
	}
}

func TestSimulate_ZeroStakeEarnsNothing(t *testing.T) {
	sc := referenceScenario()
	sc.StakeAmount = 0

	for _, w := range Simulate(sc) {
		assert.Zero(t, w.WeeklyEarningsUSD, "week %d", w.Week)
		assert.Equal(t, -w.WeeklyInfraCostUSD, w.NetUSD, "week %d", w.Week)
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	a := Simulate(referenceScenario())
	b := Simulate(referenceScenario())
	require.Equal(t, a, b)
}

func TestSimulate_NonPositiveWeekCount(t *testing.T) {
	sc := referenceScenario()
	sc.Assumptions.WeekCount = 0
	weeks := Simulate(sc)
	require.NotNil(t, weeks)
	assert.Empty(t, weeks)

	sc.Assumptions.WeekCount = -3
	assert.Empty(t, Simulate(sc))
}

func TestSimulate_NegativeInputsStillCompute(t *testing.T) {
	sc := referenceScenario()
	sc.TokenPrice = -1
	sc.ComputeBaseMonthlyCost = -80

	weeks := Simulate(sc)
	require.Len(t, weeks, 12)
	assert.Negative(t, weeks[0].WeeklyEarningsUSD)
}

func TestWeeklyBaseCost(t *testing.T) {
	assert.InDelta(t, 59.01197, WeeklyBaseCost(referenceScenario()), 1e-4)
}

func BenchmarkSimulate(b *testing.B) {
	sc := referenceScenario()
	sc.Assumptions.WeekCount = 520
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Simulate(sc)
	}
}
