package config

import (
	"os"
	"path/filepath"
	"testing"

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

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.General.Compute = "aws"
	cfg.General.Stake = 500_000
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Assumptions.WeekCount = ptr(26)
	cfg.Pricing.Compute = map[string]ComputeOverride{"aws": {MonthlyUSD: ptr(250.0)}}

	require.NoError(t, Save(cfg))
	assert.True(t, Exists())
	assert.Equal(t, filepath.Join(dir, "stakesim", "config.toml"), Path())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "aws", got.General.Compute)
	assert.Equal(t, 500_000.0, got.General.Stake)
	assert.Equal(t, "tokyo-night", got.Appearance.Theme)
	assert.Equal(t, 26, got.SimAssumptions().WeekCount)

	p, err := got.LookupCompute("aws")
	require.NoError(t, err)
	assert.Equal(t, 250.0, p.MonthlyUSD)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "stakesim", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[general]\nstake = 10\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.General.Stake)
	assert.Equal(t, "hetzner", cfg.General.Compute)
	assert.Equal(t, 0.27, cfg.General.TokenPrice)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "stakesim", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[general\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STAKESIM_TOKEN_PRICE", "1.5")
	t.Setenv("STAKESIM_STAKE", "42")
	t.Setenv("STAKESIM_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.General.TokenPrice)
	assert.Equal(t, 42.0, cfg.General.Stake)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoad_BadEnvValue(t *testing.T) {
	isolate(t)
	t.Setenv("STAKESIM_STAKE", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STAKESIM_STAKE")
}

func TestSimAssumptions_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	a := cfg.SimAssumptions()
	assert.Equal(t, 200.0, a.StorageGB)
	assert.Equal(t, 400.0, a.EgressGB)
	assert.Equal(t, 0.07, a.AnnualRewardRate)
	assert.Equal(t, 12, a.WeekCount)

	cfg.Assumptions.EgressGB = ptr(0.0)
	cfg.Assumptions.AnnualRewardRate = ptr(0.1)
	a = cfg.SimAssumptions()
	assert.Equal(t, 0.0, a.EgressGB)
	assert.Equal(t, 0.1, a.AnnualRewardRate)
	assert.Equal(t, 200.0, a.StorageGB)
}

func TestHistoryPath(t *testing.T) {
	dir := isolate(t)
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(dir, "cache", "stakesim", "history.db"), cfg.HistoryPath())

	cfg.History.DBPath = "/tmp/custom.db"
	assert.Equal(t, "/tmp/custom.db", cfg.HistoryPath())
}
