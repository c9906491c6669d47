package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/stakesim/internal/model"
	"github.com/theirongolddev/stakesim/internal/sim"
)

// ErrUnknownProvider is returned when a provider name is not in either
// the default table or the user's overrides.
var ErrUnknownProvider = errors.New("unknown provider")

// ComputeProvider is a validator host with a flat monthly price.
type ComputeProvider struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	MonthlyUSD float64 `json:"monthly_usd"`
	Overridden bool    `json:"overridden,omitempty"`
}

// BlobProvider is an object store priced per GB stored and per GB served.
type BlobProvider struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	StoragePerGB float64 `json:"storage_per_gb_monthly"`
	EgressPerGB  float64 `json:"egress_per_gb_monthly"`
	Overridden   bool    `json:"overridden,omitempty"`
}

// Cost returns the blob spend for one simulated week under a.
func (b BlobProvider) Cost(a model.Assumptions) float64 {
	return b.StoragePerGB*a.StorageGB + b.EgressPerGB*a.EgressGB
}

// PricingOverrides allows user-defined prices per provider name.
// Names not in the default tables add new providers.
type PricingOverrides struct {
	Compute map[string]ComputeOverride `toml:"compute,omitempty"`
	Blob    map[string]BlobOverride    `toml:"blob,omitempty"`
}

// ComputeOverride holds a compute price override.
type ComputeOverride struct {
	Label      string   `toml:"label,omitempty"`
	MonthlyUSD *float64 `toml:"monthly_usd,omitempty"`
}

// BlobOverride holds blob price overrides.
type BlobOverride struct {
	Label        string   `toml:"label,omitempty"`
	StoragePerGB *float64 `toml:"storage_per_gb,omitempty"`
	EgressPerGB  *float64 `toml:"egress_per_gb,omitempty"`
}

// DefaultCompute maps compute provider names to their monthly price.
var DefaultCompute = map[string]ComputeProvider{
	"hetzner":      {Name: "hetzner", Label: "Hetzner AX41", MonthlyUSD: 80},
	"ovh":          {Name: "ovh", Label: "OVH Advance-1", MonthlyUSD: 95},
	"digitalocean": {Name: "digitalocean", Label: "DigitalOcean 8vCPU", MonthlyUSD: 168},
	"gcp":          {Name: "gcp", Label: "GCP n2-standard-8", MonthlyUSD: 285},
	"aws":          {Name: "aws", Label: "AWS m6i.2xlarge", MonthlyUSD: 310},
}

// DefaultBlob maps blob provider names to their storage and egress prices.
var DefaultBlob = map[string]BlobProvider{
	"aws-s3":        {Name: "aws-s3", Label: "AWS S3", StoragePerGB: 0.023, EgressPerGB: 0.09},
	"gcs":           {Name: "gcs", Label: "Google Cloud Storage", StoragePerGB: 0.020, EgressPerGB: 0.12},
	"azure-blob":    {Name: "azure-blob", Label: "Azure Blob (hot)", StoragePerGB: 0.018, EgressPerGB: 0.087},
	"cloudflare-r2": {Name: "cloudflare-r2", Label: "Cloudflare R2", StoragePerGB: 0.015, EgressPerGB: 0},
	"backblaze-b2":  {Name: "backblaze-b2", Label: "Backblaze B2", StoragePerGB: 0.006, EgressPerGB: 0.01},
}

var providerAliases = map[string]string{
	"hetzner-cloud": "hetzner",
	"do":            "digitalocean",
	"google":        "gcp",
	"ec2":           "aws",
	"s3":            "aws-s3",
	"azure":         "azure-blob",
	"r2":            "cloudflare-r2",
	"b2":            "backblaze-b2",
}

// NormalizeProviderName lowercases a provider name and resolves aliases.
// e.g., " S3 " -> "aws-s3"
func NormalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if canon, ok := providerAliases[name]; ok {
		return canon
	}
	return name
}

// ComputeProviders returns the merged compute table, cheapest first.
func (c Config) ComputeProviders() []ComputeProvider {
	merged := make(map[string]ComputeProvider, len(DefaultCompute))
	for name, p := range DefaultCompute {
		merged[name] = p
	}
	for raw, o := range c.Pricing.Compute {
		name := NormalizeProviderName(raw)
		p, ok := merged[name]
		if !ok {
			p = ComputeProvider{Name: name, Label: name}
		}
		if o.Label != "" {
			p.Label = o.Label
		}
		if o.MonthlyUSD != nil {
			p.MonthlyUSD = *o.MonthlyUSD
		}
		p.Overridden = true
		merged[name] = p
	}

	out := make([]ComputeProvider, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MonthlyUSD != out[j].MonthlyUSD {
			return out[i].MonthlyUSD < out[j].MonthlyUSD
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// BlobProviders returns the merged blob table, cheapest first under the
// configured assumptions.
func (c Config) BlobProviders() []BlobProvider {
	merged := make(map[string]BlobProvider, len(DefaultBlob))
	for name, p := range DefaultBlob {
		merged[name] = p
	}
	for raw, o := range c.Pricing.Blob {
		name := NormalizeProviderName(raw)
		p, ok := merged[name]
		if !ok {
			p = BlobProvider{Name: name, Label: name}
		}
		if o.Label != "" {
			p.Label = o.Label
		}
		if o.StoragePerGB != nil {
			p.StoragePerGB = *o.StoragePerGB
		}
		if o.EgressPerGB != nil {
			p.EgressPerGB = *o.EgressPerGB
		}
		p.Overridden = true
		merged[name] = p
	}

	a := c.SimAssumptions()
	out := make([]BlobProvider, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].Cost(a), out[j].Cost(a)
		if ci != cj {
			return ci < cj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// LookupCompute returns the compute provider for name, normalizing it first.
func (c Config) LookupCompute(name string) (ComputeProvider, error) {
	want := NormalizeProviderName(name)
	for _, p := range c.ComputeProviders() {
		if p.Name == want {
			return p, nil
		}
	}
	return ComputeProvider{}, fmt.Errorf("compute %q: %w", name, ErrUnknownProvider)
}

// LookupBlob returns the blob provider for name, normalizing it first.
func (c Config) LookupBlob(name string) (BlobProvider, error) {
	want := NormalizeProviderName(name)
	for _, p := range c.BlobProviders() {
		if p.Name == want {
			return p, nil
		}
	}
	return BlobProvider{}, fmt.Errorf("blob %q: %w", name, ErrUnknownProvider)
}

// Scenario resolves provider names into a simulation input using the
// configured assumptions.
func (c Config) Scenario(compute, blob string, tokenPrice, stake float64) (model.Scenario, error) {
	cp, err := c.LookupCompute(compute)
	if err != nil {
		return model.Scenario{}, err
	}
	bp, err := c.LookupBlob(blob)
	if err != nil {
		return model.Scenario{}, err
	}
	return model.Scenario{
		ComputeBaseMonthlyCost: cp.MonthlyUSD,
		StoragePerGBMonthly:    bp.StoragePerGB,
		EgressPerGBMonthly:     bp.EgressPerGB,
		TokenPrice:             tokenPrice,
		StakeAmount:            stake,
		Assumptions:            c.SimAssumptions(),
	}, nil
}

// CompareOptions returns every compute/blob pairing for sim.Compare.
func (c Config) CompareOptions() []sim.Option {
	computes := c.ComputeProviders()
	blobs := c.BlobProviders()

	opts := make([]sim.Option, 0, len(computes)*len(blobs))
	for _, cp := range computes {
		for _, bp := range blobs {
			opts = append(opts, sim.Option{
				Compute:        cp.Name,
				Blob:           bp.Name,
				ComputeMonthly: cp.MonthlyUSD,
				StoragePerGB:   bp.StoragePerGB,
				EgressPerGB:    bp.EgressPerGB,
			})
		}
	}
	return opts
}
