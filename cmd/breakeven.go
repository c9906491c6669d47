package cmd

import (
	"fmt"
	"math"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/sim"

	"github.com/spf13/cobra"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven",
	Short: "Show the stake needed to cover infrastructure costs",
	RunE:  runBreakeven,
}

func init() {
	rootCmd.AddCommand(breakevenCmd)
}

func runBreakeven(cmd *cobra.Command, _ []string) error {
	_, sel, err := resolveSelection(cmd)
	if err != nil {
		return err
	}

	sc := sel.Scenario
	summary := sim.Summarize(sim.Simulate(sc))

	fmt.Println()
	fmt.Println(cli.RenderTitle("BREAK-EVEN"))
	fmt.Printf("  %s\n\n", scenarioLine(sel))

	pairs := [][2]string{
		{"Weekly base cost", cli.FormatUSDExact(sim.WeeklyBaseCost(sc))},
		{"Current stake", cli.FormatTokenAmount(sc.StakeAmount) + " tokens"},
		{"Break-even week", cli.FormatWeek(summary.BreakEvenWeek)},
		{"Final cumulative net", cli.FormatUSDExact(summary.FinalCumulativeNetUSD)},
	}

	stake, ok := sim.BreakEvenStake(sc)
	if ok {
		pairs = append(pairs,
			[2]string{"Break-even stake", fmt.Sprintf("%s tokens (%s)", cli.FormatNumber(int64(math.Round(stake))), cli.FormatTokenAmount(stake))},
			[2]string{"Stake margin", signedTokens(sc.StakeAmount - stake)},
		)
	} else {
		pairs = append(pairs, [2]string{"Break-even stake", "unreachable (tokens earn nothing)"})
	}
	fmt.Print(cli.RenderKV("", pairs))
	fmt.Println()
	return nil
}

func signedTokens(v float64) string {
	if v >= 0 {
		return "+" + cli.FormatTokenAmount(v) + " tokens"
	}
	return cli.FormatTokenAmount(v) + " tokens"
}
