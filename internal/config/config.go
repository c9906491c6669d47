// Package config loads stakesim configuration and provider price tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/theirongolddev/stakesim/internal/model"
)

// Config holds all stakesim configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Assumptions AssumptionsConfig `toml:"assumptions"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Server      ServerConfig      `toml:"server"`
	History     HistoryConfig     `toml:"history"`
	Pricing     PricingOverrides  `toml:"pricing"`
}

// GeneralConfig holds the default scenario.
type GeneralConfig struct {
	Compute    string  `toml:"compute"`
	Blob       string  `toml:"blob"`
	TokenPrice float64 `toml:"token_price"`
	Stake      float64 `toml:"stake"`
}

// AssumptionsConfig overrides individual simulation assumptions.
// Unset fields keep the stock values.
type AssumptionsConfig struct {
	StorageGB        *float64 `toml:"storage_gb,omitempty"`
	EgressGB         *float64 `toml:"egress_gb,omitempty"`
	AnnualRewardRate *float64 `toml:"annual_reward_rate,omitempty"`
	WeekCount        *int     `toml:"week_count,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// HistoryConfig holds run history settings.
type HistoryConfig struct {
	DBPath string `toml:"db_path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Compute:    "hetzner",
			Blob:       "aws-s3",
			TokenPrice: 0.27,
			Stake:      2_000_000,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8788",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stakesim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stakesim")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "stakesim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "stakesim")
}

// HistoryPath returns the run history database path.
func (c Config) HistoryPath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return filepath.Join(CacheDir(), "history.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment variables override file values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("STAKESIM_TOKEN_PRICE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing STAKESIM_TOKEN_PRICE: %w", err)
		}
		cfg.General.TokenPrice = f
	}
	if v := os.Getenv("STAKESIM_STAKE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing STAKESIM_STAKE: %w", err)
		}
		cfg.General.Stake = f
	}
	if v := os.Getenv("STAKESIM_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// SimAssumptions returns the stock assumptions with any configured
// overrides applied.
func (c Config) SimAssumptions() model.Assumptions {
	a := model.DefaultAssumptions()
	o := c.Assumptions
	if o.StorageGB != nil {
		a.StorageGB = *o.StorageGB
	}
	if o.EgressGB != nil {
		a.EgressGB = *o.EgressGB
	}
	if o.AnnualRewardRate != nil {
		a.AnnualRewardRate = *o.AnnualRewardRate
	}
	if o.WeekCount != nil {
		a.WeekCount = *o.WeekCount
	}
	return a
}
