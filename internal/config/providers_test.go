package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeProviderName(t *testing.T) {
	cases := map[string]string{
		"hetzner":       "hetzner",
		"  Hetzner ":    "hetzner",
		"S3":            "aws-s3",
		"r2":            "cloudflare-r2",
		"ec2":           "aws",
		"AZURE":         "azure-blob",
		"something-new": "something-new",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeProviderName(in), "input %q", in)
	}
}

func TestLookupCompute_Default(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.LookupCompute("Hetzner")
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.MonthlyUSD)
	assert.False(t, p.Overridden)
}

func TestLookupBlob_Alias(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.LookupBlob("s3")
	require.NoError(t, err)
	assert.Equal(t, "aws-s3", p.Name)
	assert.Equal(t, 0.023, p.StoragePerGB)
	assert.Equal(t, 0.09, p.EgressPerGB)
}

func TestLookup_Unknown(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.LookupCompute("mainframe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProvider))
	assert.Contains(t, err.Error(), "mainframe")

	_, err = cfg.LookupBlob("tape")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestComputeOverrides_WinOverDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pricing.Compute = map[string]ComputeOverride{
		"Hetzner": {MonthlyUSD: ptr(120.0)},
		"homelab": {Label: "Basement rack", MonthlyUSD: ptr(25.0)},
	}

	p, err := cfg.LookupCompute("hetzner")
	require.NoError(t, err)
	assert.Equal(t, 120.0, p.MonthlyUSD)
	assert.True(t, p.Overridden)
	assert.Equal(t, "Hetzner AX41", p.Label)

	home, err := cfg.LookupCompute("homelab")
	require.NoError(t, err)
	assert.Equal(t, "Basement rack", home.Label)

	// Cheapest first.
	list := cfg.ComputeProviders()
	require.Len(t, list, len(DefaultCompute)+1)
	assert.Equal(t, "homelab", list[0].Name)
}

func TestBlobOverrides_PartialFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pricing.Blob = map[string]BlobOverride{
		"aws-s3": {EgressPerGB: ptr(0.05)},
	}

	p, err := cfg.LookupBlob("aws-s3")
	require.NoError(t, err)
	assert.Equal(t, 0.023, p.StoragePerGB)
	assert.Equal(t, 0.05, p.EgressPerGB)

	// Defaults are never mutated by overrides.
	assert.Equal(t, 0.09, DefaultBlob["aws-s3"].EgressPerGB)
}

func TestBlobProviders_SortedByCost(t *testing.T) {
	cfg := DefaultConfig()
	a := cfg.SimAssumptions()
	list := cfg.BlobProviders()
	require.Len(t, list, len(DefaultBlob))
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Cost(a), list[i].Cost(a))
	}
	assert.Equal(t, "cloudflare-r2", list[0].Name)
}

func TestScenario_ResolvesPrices(t *testing.T) {
	cfg := DefaultConfig()
	sc, err := cfg.Scenario("hetzner", "aws-s3", 0.27, 2_000_000)
	require.NoError(t, err)

	assert.Equal(t, 80.0, sc.ComputeBaseMonthlyCost)
	assert.Equal(t, 0.023, sc.StoragePerGBMonthly)
	assert.Equal(t, 0.09, sc.EgressPerGBMonthly)
	assert.Equal(t, 0.27, sc.TokenPrice)
	assert.Equal(t, 2_000_000.0, sc.StakeAmount)
	assert.Equal(t, 12, sc.Assumptions.WeekCount)

	_, err = cfg.Scenario("hetzner", "floppy", 1, 1)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestCompareOptions_CrossProduct(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.CompareOptions()
	assert.Len(t, opts, len(DefaultCompute)*len(DefaultBlob))

	seen := make(map[string]bool)
	for _, o := range opts {
		key := o.Compute + "/" + o.Blob
		assert.False(t, seen[key], "duplicate pairing %s", key)
		seen[key] = true
	}
}
