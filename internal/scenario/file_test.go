package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/stakesim/internal/config"
)

func writeScenario(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeScenario(t, "big.yaml", `
name: mainnet-large
compute: aws
blob: r2
token_price: 1.25
stake: 5000000
assumptions:
  storage_gb: 500
  week_count: 26
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mainnet-large", f.Name)

	sel, err := f.Resolve(config.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "aws", sel.Compute)
	assert.Equal(t, "cloudflare-r2", sel.Blob)
	sc := sel.Scenario
	assert.Equal(t, 310.0, sc.ComputeBaseMonthlyCost)
	assert.Equal(t, 0.015, sc.StoragePerGBMonthly)
	assert.Equal(t, 1.25, sc.TokenPrice)
	assert.Equal(t, 5_000_000.0, sc.StakeAmount)
	assert.Equal(t, 500.0, sc.Assumptions.StorageGB)
	assert.Equal(t, 400.0, sc.Assumptions.EgressGB)
	assert.Equal(t, 26, sc.Assumptions.WeekCount)
}

func TestLoad_NameFromFilename(t *testing.T) {
	path := writeScenario(t, "testnet.yml", "compute: ovh\n")
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testnet", f.Name)
}

func TestResolve_FallsBackToConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.Stake = 100

	sel, err := File{}.Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, "hetzner", sel.Compute)
	assert.Equal(t, "aws-s3", sel.Blob)
	assert.Equal(t, 0.27, sel.Scenario.TokenPrice)
	assert.Equal(t, 100.0, sel.Scenario.StakeAmount)
	assert.Equal(t, 12, sel.Scenario.Assumptions.WeekCount)
}

func TestResolve_ExplicitZeroStake(t *testing.T) {
	zero := 0.0
	sel, err := File{Stake: &zero}.Resolve(config.DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, sel.Scenario.StakeAmount)
}

func TestResolve_UnknownProvider(t *testing.T) {
	_, err := File{Compute: "abacus"}.Resolve(config.DefaultConfig())
	assert.ErrorIs(t, err, config.ErrUnknownProvider)
}

func TestResolve_NegativeWeekCount(t *testing.T) {
	n := -1
	_, err := File{Assumptions: &AssumptionsSection{WeekCount: &n}}.Resolve(config.DefaultConfig())
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeScenario(t, "bad.yaml", "stake: [1, 2\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing scenario")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSave_ResolvesToSameScenario(t *testing.T) {
	cfg := config.DefaultConfig()
	price, stake := 0.5, 750_000.0
	orig, err := File{Name: "saved", Compute: "gcp", Blob: "gcs", TokenPrice: &price, Stake: &stake}.Resolve(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "saved.yaml")
	require.NoError(t, Save(path, FromSelection(orig)))

	f, err := Load(path)
	require.NoError(t, err)
	got, err := f.Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}
