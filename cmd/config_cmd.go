// Package cmd implements the stakesim CLI commands.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/stakesim/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Compute:     %s\n", cfg.General.Compute)
	fmt.Printf("    Blob:        %s\n", cfg.General.Blob)
	fmt.Printf("    Token price: %s USD\n", strconv.FormatFloat(cfg.General.TokenPrice, 'f', -1, 64))
	fmt.Printf("    Stake:       %s tokens\n", strconv.FormatFloat(cfg.General.Stake, 'f', -1, 64))
	fmt.Println()

	a := cfg.SimAssumptions()
	fmt.Println("  [Assumptions]")
	fmt.Printf("    Storage:     %.0f GB\n", a.StorageGB)
	fmt.Printf("    Egress:      %.0f GB\n", a.EgressGB)
	fmt.Printf("    Reward rate: %.2f%% per year\n", a.AnnualRewardRate*100)
	fmt.Printf("    Weeks:       %d\n", a.WeekCount)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Database: %s\n", cfg.HistoryPath())
	fmt.Println()

	fmt.Println("  [Pricing]")
	if n := len(cfg.Pricing.Compute) + len(cfg.Pricing.Blob); n > 0 {
		fmt.Printf("    Overrides: %d compute, %d blob\n", len(cfg.Pricing.Compute), len(cfg.Pricing.Blob))
	} else {
		fmt.Println("    Overrides: none")
	}
	fmt.Println()

	fmt.Println("  Run `stakesim setup` to reconfigure.")
	return nil
}
