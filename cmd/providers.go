package cmd

import (
	"fmt"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/sim"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List compute and blob storage providers with prices",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	a := cfg.SimAssumptions()

	mark := func(name string, overridden bool) string {
		if overridden {
			return name + " *"
		}
		return name
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PROVIDERS"))
	fmt.Println()

	compute := cli.Table{
		Title:   "Compute",
		Headers: []string{"Name", "Label", "Monthly", "Weekly"},
	}
	for _, p := range cfg.ComputeProviders() {
		compute.Rows = append(compute.Rows, []string{
			mark(p.Name, p.Overridden),
			p.Label,
			cli.FormatUSDExact(p.MonthlyUSD),
			cli.FormatUSDExact(p.MonthlyUSD / sim.WeeksPerMonth),
		})
	}
	fmt.Print(cli.RenderTable(compute))
	fmt.Println()

	blob := cli.Table{
		Title:   fmt.Sprintf("Blob storage  %.0f GB stored, %.0f GB egress", a.StorageGB, a.EgressGB),
		Headers: []string{"Name", "Label", "$/GB stored", "$/GB egress", "Weekly"},
	}
	for _, p := range cfg.BlobProviders() {
		blob.Rows = append(blob.Rows, []string{
			mark(p.Name, p.Overridden),
			p.Label,
			fmt.Sprintf("%.3f", p.StoragePerGB),
			fmt.Sprintf("%.3f", p.EgressPerGB),
			cli.FormatUSDExact(p.Cost(a)),
		})
	}
	fmt.Print(cli.RenderTable(blob))
	fmt.Println()
	fmt.Println("  * price overridden in config")
	fmt.Println()
	return nil
}
