package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/sim"

	"github.com/spf13/cobra"
)

var (
	flagTop         int
	flagCompareHTML string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank every compute and blob provider pairing",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().IntVar(&flagTop, "top", 0, "Show only the best N pairings (0 = all)")
	compareCmd.Flags().StringVar(&flagCompareHTML, "html", "", "Write an HTML chart of the ranking to PATH")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if flagTop < 0 {
		return errors.New("--top must not be negative")
	}

	cfg, sel, err := resolveSelection(cmd)
	if err != nil {
		return err
	}

	rows := sim.Compare(sel.Scenario, cfg.CompareOptions())
	total := len(rows)
	if flagTop > 0 && flagTop < len(rows) {
		rows = rows[:flagTop]
	}

	if flagCompareHTML != "" {
		if err := writeChart(flagCompareHTML, sel, sim.Simulate(sel.Scenario), rows); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote chart to %s\n", flagCompareHTML)
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROVIDER COMPARISON  %d of %d pairings", len(rows), total)))
	fmt.Printf("  %s tokens at $%s  |  %d weeks\n\n",
		cli.FormatTokenAmount(sel.Scenario.StakeAmount),
		strconv.FormatFloat(sel.Scenario.TokenPrice, 'f', -1, 64),
		sel.Scenario.Assumptions.WeekCount)

	t := cli.Table{
		Headers:    []string{"#", "Compute", "Blob", "Base/wk", "Final net", "Break-even"},
		SignedCols: map[int]bool{4: true},
	}
	for i, r := range rows {
		rank := strconv.Itoa(i + 1)
		if r.Compute == sel.Compute && r.Blob == sel.Blob {
			rank += "*"
		}
		t.Rows = append(t.Rows, []string{
			rank,
			r.Compute,
			r.Blob,
			cli.FormatUSDExact(r.WeeklyBaseCostUSD),
			cli.FormatUSDExact(r.Summary.FinalCumulativeNetUSD),
			cli.FormatWeek(r.Summary.BreakEvenWeek),
		})
	}
	fmt.Print(cli.RenderTable(t))
	fmt.Println()
	fmt.Println("  * current pairing")
	fmt.Println()
	return nil
}
