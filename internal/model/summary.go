package model

// Summary holds the aggregate of a whole projection.
type Summary struct {
	Weeks                 int     `json:"weeks"`
	TotalEarningsUSD      float64 `json:"total_earnings_usd"`
	TotalInfraCostUSD     float64 `json:"total_infra_cost_usd"`
	FinalCumulativeNetUSD float64 `json:"final_cumulative_net_usd"`
	AvgWeeklyNetUSD       float64 `json:"avg_weekly_net_usd"`
	BreakEvenWeek         int     `json:"break_even_week"` // 0 = never within the horizon
	Profitable            bool    `json:"profitable"`
	BestWeek              int     `json:"best_week"`
	WorstWeek             int     `json:"worst_week"`
	CostCoverage          float64 `json:"cost_coverage"` // earnings / costs
}

// ComparisonRow holds the outcome of one compute/blob provider pairing.
type ComparisonRow struct {
	Compute           string  `json:"compute"`
	Blob              string  `json:"blob"`
	WeeklyBaseCostUSD float64 `json:"weekly_base_cost_usd"`
	Summary           Summary `json:"summary"`
}
