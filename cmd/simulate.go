package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/stakesim/internal/chart"
	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/model"
	"github.com/theirongolddev/stakesim/internal/scenario"
	"github.com/theirongolddev/stakesim/internal/sim"
	"github.com/theirongolddev/stakesim/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagJSON   bool
	flagSave   string
	flagHTML   string
	flagExport string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Project weekly earnings, costs and net for a scenario",
	RunE:  runSimulate,
}

func init() {
	addSimulateFlags(simulateCmd)
	rootCmd.AddCommand(simulateCmd)
}

func addSimulateFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagJSON, "json", false, "Print the projection as JSON")
	c.Flags().StringVar(&flagSave, "save", "", "Store the run in history under NAME")
	c.Flags().StringVar(&flagHTML, "html", "", "Write an HTML chart of the projection to PATH")
	c.Flags().StringVar(&flagExport, "export", "", "Write the resolved scenario as YAML to PATH")
}

// projection is the JSON shape of `simulate --json`.
type projection struct {
	Name     string                 `json:"name"`
	Compute  string                 `json:"compute"`
	Blob     string                 `json:"blob"`
	Scenario model.Scenario         `json:"scenario"`
	Weeks    []model.WeekProjection `json:"weeks"`
	Summary  model.Summary          `json:"summary"`
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, sel, err := resolveSelection(cmd)
	if err != nil {
		return err
	}

	weeks := sim.Simulate(sel.Scenario)
	summary := sim.Summarize(weeks)

	if flagExport != "" {
		if err := scenario.Save(flagExport, scenario.FromSelection(sel)); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote scenario to %s\n", flagExport)
		}
	}

	if flagHTML != "" {
		if err := writeChart(flagHTML, sel, weeks, nil); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote chart to %s\n", flagHTML)
		}
	}

	if flagSave != "" {
		id, err := saveRun(cfg.HistoryPath(), flagSave, sel, weeks)
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Saved run #%d %q\n", id, flagSave)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(projection{
			Name:     sel.Name,
			Compute:  sel.Compute,
			Blob:     sel.Blob,
			Scenario: sel.Scenario,
			Weeks:    weeks,
			Summary:  summary,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("STAKESIM  %s", sel.Name)))
	fmt.Printf("  %s\n\n", scenarioLine(sel))

	fmt.Print(cli.RenderTable(weekTable(weeks, summary)))
	fmt.Println()
	printSummary(sel.Scenario, summary)

	if len(weeks) > 0 {
		cum := make([]float64, len(weeks))
		for i, w := range weeks {
			cum[i] = w.CumulativeNetUSD
		}
		fmt.Printf("  Cumulative net  %s\n", cli.RenderSparkline(cum))
		fmt.Println()
	}
	return nil
}

// weekTable builds the per-week table with a totals row.
func weekTable(weeks []model.WeekProjection, s model.Summary) cli.Table {
	t := cli.Table{
		Headers:    []string{"Week", "Earnings", "Infra", "Net", "Cum. Net"},
		SignedCols: map[int]bool{3: true, 4: true},
	}
	for _, w := range weeks {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(w.Week),
			cli.FormatUSDExact(w.WeeklyEarningsUSD),
			cli.FormatUSDExact(w.WeeklyInfraCostUSD),
			cli.FormatUSDExact(w.NetUSD),
			cli.FormatUSDExact(w.CumulativeNetUSD),
		})
	}
	if len(weeks) > 0 {
		t.Rows = append(t.Rows, []string{"---"})
		t.Rows = append(t.Rows, []string{
			"Total",
			cli.FormatUSDExact(s.TotalEarningsUSD),
			cli.FormatUSDExact(s.TotalInfraCostUSD),
			cli.FormatUSDExact(s.FinalCumulativeNetUSD),
			"",
		})
	}
	return t
}

func printSummary(sc model.Scenario, s model.Summary) {
	pairs := [][2]string{
		{"Final cumulative net", cli.FormatUSDExact(s.FinalCumulativeNetUSD)},
		{"Average weekly net", cli.FormatUSDExact(s.AvgWeeklyNetUSD)},
		{"Break-even", cli.FormatWeek(s.BreakEvenWeek)},
		{"Best week", cli.FormatWeek(s.BestWeek)},
		{"Worst week", cli.FormatWeek(s.WorstWeek)},
		{"Cost coverage", fmt.Sprintf("%.2fx", s.CostCoverage)},
	}
	if stake, ok := sim.BreakEvenStake(sc); ok {
		pairs = append(pairs, [2]string{"Break-even stake", cli.FormatTokenAmount(stake) + " tokens"})
	}
	fmt.Print(cli.RenderKV("Summary", pairs))
	fmt.Println()
}

// writeChart renders the projection, and the ranking when rows is
// non-empty, into an HTML file at path.
func writeChart(path string, sel scenario.Selection, weeks []model.WeekProjection, rows []model.ComparisonRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing chart file: %w", cerr)
		}
	}()
	return chart.Render(f, sel.Name, scenarioLine(sel), weeks, rows)
}

func saveRun(dbPath, name string, sel scenario.Selection, weeks []model.WeekProjection) (int64, error) {
	hist, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = hist.Close() }()

	return hist.SaveRun(store.Run{
		Name:     name,
		Compute:  sel.Compute,
		Blob:     sel.Blob,
		Scenario: sel.Scenario,
		Weeks:    weeks,
	})
}
