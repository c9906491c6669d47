// Package sim runs the weekly validator economics simulation.
package sim

import (
	"math"

	"github.com/theirongolddev/stakesim/internal/model"
)

// WeeksPerMonth converts monthly provider prices to weekly ones.
const WeeksPerMonth = 4.345

// Simulate projects weekly earnings against infrastructure costs.
// The result has one entry per week, in order; cumulative fields carry
// the running totals of every earlier week.
func Simulate(sc model.Scenario) []model.WeekProjection {
	n := sc.Assumptions.WeekCount
	if n < 0 {
		n = 0
	}
	weeks := make([]model.WeekProjection, 0, n)

	base := WeeklyBaseCost(sc)
	var cumEarnings, cumCosts float64

	for w := 1; w <= n; w++ {
		rewardRate, priceDrift := weeklyRates(sc, w)
		earnings := sc.StakeAmount * rewardRate * priceDrift
		cumEarnings += earnings

		costGrowth := 1 + float64(w)*0.015
		cost := base * costGrowth
		cumCosts += cost

		weeks = append(weeks, model.WeekProjection{
			Week:               w,
			WeeklyEarningsUSD:  earnings,
			WeeklyInfraCostUSD: cost,
			NetUSD:             earnings - cost,
			CumulativeNetUSD:   cumEarnings - cumCosts,
		})
	}

	return weeks
}

// WeeklyBaseCost returns the week-0 infrastructure cost: compute plus
// storage plus egress, before growth is applied.
func WeeklyBaseCost(sc model.Scenario) float64 {
	return sc.ComputeBaseMonthlyCost/WeeksPerMonth +
		sc.StoragePerGBMonthly*sc.Assumptions.StorageGB +
		sc.EgressPerGBMonthly*sc.Assumptions.EgressGB
}

// weeklyRates returns the week's reward rate and drifted token price.
// Both perturbations are deterministic in w.
func weeklyRates(sc model.Scenario, w int) (rewardRate, priceDrift float64) {
	fw := float64(w)
	priceDrift = sc.TokenPrice * (1 + 0.1*math.Sin(fw/3))
	rewardRate = (sc.Assumptions.AnnualRewardRate / 52) * (1 + 0.05*math.Cos(fw/2))
	return rewardRate, priceDrift
}
