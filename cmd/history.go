package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/scenario"
	"github.com/theirongolddev/stakesim/internal/sim"
	"github.com/theirongolddev/stakesim/internal/store"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved simulation runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a saved run",
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryRm,
}

func init() {
	historyCmd.AddCommand(historyShowCmd, historyRmCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*store.History, error) {
	cfg := loadConfig()
	hist, err := store.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return hist, nil
}

func parseRunID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run id %q", arg)
	}
	return id, nil
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	runs, err := hist.ListRuns()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  %d saved runs", len(runs))))
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("  No saved runs. Store one with `stakesim simulate --save NAME`.")
		fmt.Println()
		return nil
	}

	t := cli.Table{
		Headers:    []string{"ID", "Name", "Compute", "Blob", "Stake", "Price", "Weeks", "Final net", "Saved"},
		SignedCols: map[int]bool{7: true},
	}
	for _, r := range runs {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Compute,
			r.Blob,
			cli.FormatTokenAmount(r.Scenario.StakeAmount),
			strconv.FormatFloat(r.Scenario.TokenPrice, 'f', -1, 64),
			strconv.Itoa(r.Scenario.Assumptions.WeekCount),
			cli.FormatUSDExact(r.FinalNet),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Print(cli.RenderTable(t))
	fmt.Println()
	return nil
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	r, err := hist.LoadRun(id)
	if errors.Is(err, store.ErrRunNotFound) {
		return fmt.Errorf("run #%d does not exist", id)
	}
	if err != nil {
		return err
	}

	sel := scenario.Selection{Name: r.Name, Compute: r.Compute, Blob: r.Blob, Scenario: r.Scenario}
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUN #%d  %s", r.ID, r.Name)))
	fmt.Printf("  %s\n", scenarioLine(sel))
	fmt.Printf("  Saved %s\n\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	summary := sim.Summarize(r.Weeks)
	fmt.Print(cli.RenderTable(weekTable(r.Weeks, summary)))
	fmt.Println()
	printSummary(r.Scenario, summary)
	return nil
}

func runHistoryRm(_ *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	if err := hist.DeleteRun(id); err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return fmt.Errorf("run #%d does not exist", id)
		}
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Deleted run #%d\n", id)
	}
	return nil
}
