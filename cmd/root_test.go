package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/sim"
	"github.com/theirongolddev/stakesim/internal/store"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("STAKESIM_TOKEN_PRICE", "")
	t.Setenv("STAKESIM_STAKE", "")
	t.Setenv("STAKESIM_ADDR", "")
	return dir
}

// parseRoot parses args into the root command and restores every flag
// to its default when the test ends.
func parseRoot(t *testing.T, args ...string) {
	t.Helper()
	t.Cleanup(func() {
		rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	require.NoError(t, rootCmd.ParseFlags(args))
	flagQuiet = true
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveSelection_Defaults(t *testing.T) {
	isolate(t)
	parseRoot(t)

	cfg, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
	assert.Equal(t, "hetzner", sel.Compute)
	assert.Equal(t, "aws-s3", sel.Blob)
	assert.Equal(t, "hetzner+aws-s3", sel.Name)
	assert.InDelta(t, 0.27, sel.Scenario.TokenPrice, 1e-12)
	assert.InDelta(t, 2_000_000, sel.Scenario.StakeAmount, 1e-9)
	assert.InDelta(t, 80, sel.Scenario.ComputeBaseMonthlyCost, 1e-12)
}

func TestResolveSelection_FlagsOverrideScenarioFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "small.yaml", "name: small\ncompute: aws\nblob: r2\nstake: 1000\ntoken_price: 1.5\n")
	parseRoot(t, "-f", path, "--stake", "5000", "-c", "OVH")

	_, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "small", sel.Name)
	assert.Equal(t, "ovh", sel.Compute, "explicit flag beats the file")
	assert.Equal(t, "cloudflare-r2", sel.Blob, "file beats config")
	assert.InDelta(t, 5000, sel.Scenario.StakeAmount, 1e-9)
	assert.InDelta(t, 1.5, sel.Scenario.TokenPrice, 1e-12)
}

func TestResolveSelection_ConfigDefaults(t *testing.T) {
	isolate(t)
	cfg := config.DefaultConfig()
	cfg.General.Compute = "gcp"
	cfg.General.Stake = 42
	require.NoError(t, config.Save(cfg))
	parseRoot(t)

	_, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "gcp", sel.Compute)
	assert.InDelta(t, 42, sel.Scenario.StakeAmount, 1e-12)
}

func TestResolveSelection_UnknownProvider(t *testing.T) {
	isolate(t)
	parseRoot(t, "--blob", "floppy")

	_, _, err := resolveSelection(rootCmd)
	require.ErrorIs(t, err, config.ErrUnknownProvider)
}

func TestResolveSelection_MissingScenarioFile(t *testing.T) {
	isolate(t)
	parseRoot(t, "-f", filepath.Join(t.TempDir(), "nope.yaml"))

	_, _, err := resolveSelection(rootCmd)
	require.Error(t, err)
}

func TestParseRunID(t *testing.T) {
	id, err := parseRunID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := parseRunID(bad)
		assert.Error(t, err, bad)
	}
}

func TestWeekTable_TotalsRow(t *testing.T) {
	isolate(t)
	parseRoot(t)
	_, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)

	weeks := sim.Simulate(sel.Scenario)
	tbl := weekTable(weeks, sim.Summarize(weeks))
	require.Len(t, tbl.Rows, len(weeks)+2)
	assert.Equal(t, []string{"1", "$783.65", "$59.90", "$723.75", "$723.75"}, tbl.Rows[0])
	assert.Equal(t, []string{"---"}, tbl.Rows[len(weeks)])
	assert.Equal(t, "Total", tbl.Rows[len(weeks)+1][0])

	assert.Empty(t, weekTable(nil, sim.Summarize(nil)).Rows)
}

func TestSaveRun_StoresWeeks(t *testing.T) {
	isolate(t)
	parseRoot(t)
	cfg, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)

	weeks := sim.Simulate(sel.Scenario)
	id, err := saveRun(cfg.HistoryPath(), "baseline", sel, weeks)
	require.NoError(t, err)

	hist, err := store.Open(cfg.HistoryPath())
	require.NoError(t, err)
	defer func() { _ = hist.Close() }()

	r, err := hist.LoadRun(id)
	require.NoError(t, err)
	assert.Equal(t, "baseline", r.Name)
	assert.Equal(t, "hetzner", r.Compute)
	assert.Len(t, r.Weeks, len(weeks))
	assert.InDelta(t, weeks[len(weeks)-1].CumulativeNetUSD, r.FinalNet, 1e-9)
}

func TestWriteChart(t *testing.T) {
	isolate(t)
	parseRoot(t)
	_, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)

	weeks := sim.Simulate(sel.Scenario)
	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, writeChart(path, sel, weeks, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Cumulative net")
	assert.NotContains(t, string(raw), "Provider comparison")

	rows := sim.Compare(sel.Scenario, config.DefaultConfig().CompareOptions())
	require.NoError(t, writeChart(path, sel, weeks, rows))
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Provider comparison")
}

func TestWriteChart_ReportsFileErrors(t *testing.T) {
	isolate(t)
	parseRoot(t)
	_, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "no-such-dir", "chart.html")
	err = writeChart(missing, sel, sim.Simulate(sel.Scenario), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating chart file")
}

func TestScenarioLine(t *testing.T) {
	isolate(t)
	parseRoot(t)
	_, sel, err := resolveSelection(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "hetzner + aws-s3  |  2.0M tokens at $0.27  |  12 weeks", scenarioLine(sel))
}
