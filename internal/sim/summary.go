package sim

import "github.com/theirongolddev/stakesim/internal/model"

// Summarize folds a projection into totals, break-even point and extremes.
func Summarize(weeks []model.WeekProjection) model.Summary {
	var s model.Summary
	if len(weeks) == 0 {
		return s
	}

	s.Weeks = len(weeks)
	best, worst := weeks[0], weeks[0]
	for _, w := range weeks {
		s.TotalEarningsUSD += w.WeeklyEarningsUSD
		s.TotalInfraCostUSD += w.WeeklyInfraCostUSD

		if s.BreakEvenWeek == 0 && w.CumulativeNetUSD >= 0 {
			s.BreakEvenWeek = w.Week
		}
		if w.NetUSD > best.NetUSD {
			best = w
		}
		if w.NetUSD < worst.NetUSD {
			worst = w
		}
	}

	last := weeks[len(weeks)-1]
	s.FinalCumulativeNetUSD = last.CumulativeNetUSD
	s.AvgWeeklyNetUSD = s.FinalCumulativeNetUSD / float64(s.Weeks)
	s.Profitable = s.FinalCumulativeNetUSD >= 0
	s.BestWeek = best.Week
	s.WorstWeek = worst.Week
	if s.TotalInfraCostUSD > 0 {
		s.CostCoverage = s.TotalEarningsUSD / s.TotalInfraCostUSD
	}

	return s
}

// BreakEvenStake returns the stake at which the scenario ends its horizon
// with a cumulative net of zero. Earnings scale linearly with stake, so the
// answer is total costs divided by what a single token earns over the
// horizon. Returns false when one token earns nothing (or less).
func BreakEvenStake(sc model.Scenario) (float64, bool) {
	var perToken, costs float64
	base := WeeklyBaseCost(sc)
	for w := 1; w <= sc.Assumptions.WeekCount; w++ {
		rewardRate, priceDrift := weeklyRates(sc, w)
		perToken += rewardRate * priceDrift
		costs += base * (1 + float64(w)*0.015)
	}
	if perToken <= 0 {
		return 0, false
	}
	return costs / perToken, true
}
