package tui

import (
	"fmt"

	"github.com/theirongolddev/stakesim/internal/cli"
	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup form. Numbers stay strings
// until Apply so the form can validate them as typed.
type SetupValues struct {
	Compute    string
	Blob       string
	TokenPrice string
	Stake      string
	Theme      string
}

// NewSetupValues seeds the form with the current configuration.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Compute:    config.NormalizeProviderName(cfg.General.Compute),
		Blob:       config.NormalizeProviderName(cfg.General.Blob),
		TokenPrice: formatAmount(cfg.General.TokenPrice),
		Stake:      formatAmount(cfg.General.Stake),
		Theme:      cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the first-run form choosing default providers,
// scenario numbers and theme. Answers are written into v.
func NewSetupForm(cfg config.Config, v *SetupValues) *huh.Form {
	computeOpts := make([]huh.Option[string], 0)
	for _, p := range cfg.ComputeProviders() {
		computeOpts = append(computeOpts,
			huh.NewOption(fmt.Sprintf("%s (%s/mo)", p.Label, cli.FormatUSD(p.MonthlyUSD)), p.Name))
	}

	a := cfg.SimAssumptions()
	blobOpts := make([]huh.Option[string], 0)
	for _, p := range cfg.BlobProviders() {
		blobOpts = append(blobOpts,
			huh.NewOption(fmt.Sprintf("%s (%s/mo)", p.Label, cli.FormatUSD(p.Cost(a))), p.Name))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	validate := func(s string) error {
		_, err := parseAmount(s)
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to stakesim").
				Description("Pick the scenario the simulator starts from.\nEverything can be changed later with `stakesim setup`."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Compute provider").
				Description("Monthly price of the validator host.").
				Options(computeOpts...).
				Value(&v.Compute),
			huh.NewSelect[string]().
				Title("Blob storage provider").
				Description(fmt.Sprintf("Priced for %.0f GB stored and %.0f GB egress per month.", a.StorageGB, a.EgressGB)).
				Options(blobOpts...).
				Value(&v.Blob),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Token price (USD)").
				Placeholder("0.27").
				Validate(validate).
				Value(&v.TokenPrice),
			huh.NewInput().
				Title("Stake (tokens)").
				Placeholder("2000000").
				Validate(validate).
				Value(&v.Stake),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg config.Config) (config.Config, error) {
	price, err := parseAmount(v.TokenPrice)
	if err != nil {
		return cfg, fmt.Errorf("token price: %w", err)
	}
	stake, err := parseAmount(v.Stake)
	if err != nil {
		return cfg, fmt.Errorf("stake: %w", err)
	}
	cp, err := cfg.LookupCompute(v.Compute)
	if err != nil {
		return cfg, err
	}
	bp, err := cfg.LookupBlob(v.Blob)
	if err != nil {
		return cfg, err
	}

	cfg.General.Compute = cp.Name
	cfg.General.Blob = bp.Name
	cfg.General.TokenPrice = price
	cfg.General.Stake = stake
	if theme.Valid(v.Theme) {
		cfg.Appearance.Theme = v.Theme
	}
	return cfg, nil
}
