// Package scenario reads and writes YAML scenario files.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/model"

	"gopkg.in/yaml.v3"
)

// File is the on-disk scenario shape. Empty fields fall back to the
// configured defaults when resolved.
type File struct {
	Name        string              `yaml:"name,omitempty"`
	Compute     string              `yaml:"compute,omitempty"`
	Blob        string              `yaml:"blob,omitempty"`
	TokenPrice  *float64            `yaml:"token_price,omitempty"`
	Stake       *float64            `yaml:"stake,omitempty"`
	Assumptions *AssumptionsSection `yaml:"assumptions,omitempty"`
}

// AssumptionsSection overrides any subset of the simulation assumptions.
type AssumptionsSection struct {
	StorageGB        *float64 `yaml:"storage_gb,omitempty"`
	EgressGB         *float64 `yaml:"egress_gb,omitempty"`
	AnnualRewardRate *float64 `yaml:"annual_reward_rate,omitempty"`
	WeekCount        *int     `yaml:"week_count,omitempty"`
}

// Load reads a scenario file.
func Load(path string) (File, error) {
	var f File
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading scenario: %w", err)
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if f.Name == "" {
		base := filepath.Base(path)
		f.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return f, nil
}

// Save writes a scenario file, creating parent directories.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating scenario dir: %w", err)
	}
	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

// Selection is a scenario after defaults are applied, keeping the
// provider names alongside the resolved prices.
type Selection struct {
	Name     string
	Compute  string
	Blob     string
	Scenario model.Scenario
}

// Resolve applies cfg defaults to f and looks up provider prices.
func (f File) Resolve(cfg config.Config) (Selection, error) {
	sel := Selection{
		Name:    f.Name,
		Compute: cfg.General.Compute,
		Blob:    cfg.General.Blob,
	}
	if f.Compute != "" {
		sel.Compute = f.Compute
	}
	if f.Blob != "" {
		sel.Blob = f.Blob
	}

	price := cfg.General.TokenPrice
	if f.TokenPrice != nil {
		price = *f.TokenPrice
	}
	stake := cfg.General.Stake
	if f.Stake != nil {
		stake = *f.Stake
	}

	sc, err := cfg.Scenario(sel.Compute, sel.Blob, price, stake)
	if err != nil {
		return sel, err
	}
	sel.Compute = config.NormalizeProviderName(sel.Compute)
	sel.Blob = config.NormalizeProviderName(sel.Blob)

	if a := f.Assumptions; a != nil {
		if a.StorageGB != nil {
			sc.Assumptions.StorageGB = *a.StorageGB
		}
		if a.EgressGB != nil {
			sc.Assumptions.EgressGB = *a.EgressGB
		}
		if a.AnnualRewardRate != nil {
			sc.Assumptions.AnnualRewardRate = *a.AnnualRewardRate
		}
		if a.WeekCount != nil {
			if *a.WeekCount < 0 {
				return sel, errors.New("week_count must not be negative")
			}
			sc.Assumptions.WeekCount = *a.WeekCount
		}
	}

	sel.Scenario = sc
	return sel, nil
}

// FromSelection builds a file that resolves back to sel.
func FromSelection(sel Selection) File {
	sc := sel.Scenario
	a := sc.Assumptions
	return File{
		Name:       sel.Name,
		Compute:    sel.Compute,
		Blob:       sel.Blob,
		TokenPrice: &sc.TokenPrice,
		Stake:      &sc.StakeAmount,
		Assumptions: &AssumptionsSection{
			StorageGB:        &a.StorageGB,
			EgressGB:         &a.EgressGB,
			AnnualRewardRate: &a.AnnualRewardRate,
			WeekCount:        &a.WeekCount,
		},
	}
}
