// Package theme defines color themes for the stakesim TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Focused control, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // Focus borders
	TextDim      lipgloss.Color // Hints, axes
	TextMuted    lipgloss.Color // Labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Gain lipgloss.Color // Positive money
	Loss lipgloss.Color // Negative money
	Warn lipgloss.Color

	// One colour per projection series.
	Earnings   lipgloss.Color
	InfraCost  lipgloss.Color
	Net        lipgloss.Color
	Cumulative lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#343331"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Gain:         lipgloss.Color("#A3B859"),
	Loss:         lipgloss.Color("#D14D41"),
	Warn:         lipgloss.Color("#DA702C"),
	Earnings:     lipgloss.Color("#879A39"),
	InfraCost:    lipgloss.Color("#DA702C"),
	Net:          lipgloss.Color("#4385BE"),
	Cumulative:   lipgloss.Color("#CE5D97"),
}

// CatppuccinMocha is a warm pastel theme with soft, soothing colors.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Gain:         lipgloss.Color("#A6E3A1"),
	Loss:         lipgloss.Color("#F38BA8"),
	Warn:         lipgloss.Color("#FAB387"),
	Earnings:     lipgloss.Color("#A6E3A1"),
	InfraCost:    lipgloss.Color("#FAB387"),
	Net:          lipgloss.Color("#89B4FA"),
	Cumulative:   lipgloss.Color("#F5C2E7"),
}

// TokyoNight is a cool blue/purple theme inspired by Tokyo city lights.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#414868"),
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Gain:         lipgloss.Color("#9ECE6A"),
	Loss:         lipgloss.Color("#F7768E"),
	Warn:         lipgloss.Color("#FF9E64"),
	Earnings:     lipgloss.Color("#9ECE6A"),
	InfraCost:    lipgloss.Color("#FF9E64"),
	Net:          lipgloss.Color("#7DCFFF"),
	Cumulative:   lipgloss.Color("#BB9AF7"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Gain:         lipgloss.Color("10"),
	Loss:         lipgloss.Color("1"),
	Warn:         lipgloss.Color("3"),
	Earnings:     lipgloss.Color("2"),
	InfraCost:    lipgloss.Color("3"),
	Net:          lipgloss.Color("4"),
	Cumulative:   lipgloss.Color("5"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Signed picks Gain or Loss for v.
func (t Theme) Signed(v float64) lipgloss.Color {
	if v < 0 {
		return t.Loss
	}
	return t.Gain
}
