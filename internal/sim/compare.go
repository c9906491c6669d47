package sim

import (
	"sort"

	"github.com/theirongolddev/stakesim/internal/model"
)

// Option is one provider pairing to evaluate in Compare.
type Option struct {
	Compute        string
	Blob           string
	ComputeMonthly float64
	StoragePerGB   float64
	EgressPerGB    float64
}

// Compare simulates base once per option, replacing its provider prices,
// and returns the outcomes ranked by final cumulative net (best first).
func Compare(base model.Scenario, options []Option) []model.ComparisonRow {
	rows := make([]model.ComparisonRow, 0, len(options))
	for _, opt := range options {
		sc := base
		sc.ComputeBaseMonthlyCost = opt.ComputeMonthly
		sc.StoragePerGBMonthly = opt.StoragePerGB
		sc.EgressPerGBMonthly = opt.EgressPerGB

		rows = append(rows, model.ComparisonRow{
			Compute:           opt.Compute,
			Blob:              opt.Blob,
			WeeklyBaseCostUSD: WeeklyBaseCost(sc),
			Summary:           Summarize(Simulate(sc)),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Summary.FinalCumulativeNetUSD != b.Summary.FinalCumulativeNetUSD {
			return a.Summary.FinalCumulativeNetUSD > b.Summary.FinalCumulativeNetUSD
		}
		if a.Compute != b.Compute {
			return a.Compute < b.Compute
		}
		return a.Blob < b.Blob
	})

	return rows
}
