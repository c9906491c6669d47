package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/scenario"

	"github.com/spf13/cobra"
)

var (
	flagCompute  string
	flagBlob     string
	flagPrice    float64
	flagStake    float64
	flagScenario string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "stakesim",
	Short: "Validator staking economics simulator",
	Long:  "Project weekly staking earnings against compute and blob storage costs.",
	RunE:  runSimulate,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	def := config.DefaultConfig().General

	rootCmd.PersistentFlags().StringVarP(&flagCompute, "compute", "c", def.Compute, "Compute provider")
	rootCmd.PersistentFlags().StringVarP(&flagBlob, "blob", "b", def.Blob, "Blob storage provider")
	rootCmd.PersistentFlags().Float64VarP(&flagPrice, "price", "p", def.TokenPrice, "Token price in USD")
	rootCmd.PersistentFlags().Float64VarP(&flagStake, "stake", "s", def.Stake, "Staked token amount")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "f", "", "YAML scenario file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	addSimulateFlags(rootCmd)
}

// loadConfig reads the config file, warning on stderr and falling back to
// defaults when it cannot be parsed.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Warning: %s, using defaults\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// resolveSelection is the shared scenario path used by all commands:
// config defaults, then the scenario file, then flags the user set.
func resolveSelection(cmd *cobra.Command) (config.Config, scenario.Selection, error) {
	cfg := loadConfig()

	var f scenario.File
	if flagScenario != "" {
		var err error
		f, err = scenario.Load(flagScenario)
		if err != nil {
			return cfg, scenario.Selection{}, err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Loaded scenario %q from %s\n", f.Name, flagScenario)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("compute") {
		f.Compute = flagCompute
	}
	if flags.Changed("blob") {
		f.Blob = flagBlob
	}
	if flags.Changed("price") {
		f.TokenPrice = &flagPrice
	}
	if flags.Changed("stake") {
		f.Stake = &flagStake
	}

	sel, err := f.Resolve(cfg)
	if err != nil {
		return cfg, sel, err
	}
	if sel.Name == "" {
		sel.Name = sel.Compute + "+" + sel.Blob
	}
	return cfg, sel, nil
}

// scenarioLine describes the resolved inputs in one line.
func scenarioLine(sel scenario.Selection) string {
	sc := sel.Scenario
	return fmt.Sprintf("%s + %s  |  %s tokens at $%s  |  %d weeks",
		sel.Compute, sel.Blob,
		cli.FormatTokenAmount(sc.StakeAmount), strconv.FormatFloat(sc.TokenPrice, 'f', -1, 64),
		sc.Assumptions.WeekCount)
}
