// Package model defines domain types for stakesim scenarios and projections.
package model

// Default simulation assumptions.
const (
	DefaultStorageGB        = 200
	DefaultEgressGB         = 400
	DefaultAnnualRewardRate = 0.07
	DefaultWeekCount        = 12
)

// Assumptions are the fixed parameters a scenario is simulated under.
type Assumptions struct {
	StorageGB        float64 `json:"storage_gb"`
	EgressGB         float64 `json:"egress_gb"`
	AnnualRewardRate float64 `json:"annual_reward_rate"`
	WeekCount        int     `json:"week_count"`
}

// DefaultAssumptions returns the stock assumptions: 200 GB stored,
// 400 GB egress, 7% annual reward rate over 12 weeks.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		StorageGB:        DefaultStorageGB,
		EgressGB:         DefaultEgressGB,
		AnnualRewardRate: DefaultAnnualRewardRate,
		WeekCount:        DefaultWeekCount,
	}
}

// Scenario is the complete input to one simulation run.
// Provider prices are resolved from the provider tables before
// a Scenario is built; the simulator never looks them up itself.
type Scenario struct {
	ComputeBaseMonthlyCost float64     `json:"compute_base_monthly_cost"`
	StoragePerGBMonthly    float64     `json:"storage_per_gb_monthly"`
	EgressPerGBMonthly     float64     `json:"egress_per_gb_monthly"`
	TokenPrice             float64     `json:"token_price"`
	StakeAmount            float64     `json:"stake"`
	Assumptions            Assumptions `json:"assumptions"`
}

// WeekProjection is one simulated week.
type WeekProjection struct {
	Week               int     `json:"week"`
	WeeklyEarningsUSD  float64 `json:"weekly_earnings_usd"`
	WeeklyInfraCostUSD float64 `json:"weekly_infra_cost_usd"`
	NetUSD             float64 `json:"net_usd"`
	CumulativeNetUSD   float64 `json:"cumulative_net_usd"`
}
