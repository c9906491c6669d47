package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/tui/components"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCompute
	settingsFieldBlob
	settingsFieldPrice
	settingsFieldStake
	settingsFieldAddr
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a *App) settingsKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Down):
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case key.Matches(msg, keys.Up):
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case key.Matches(msg, keys.Enter):
		return true, a.settingsStartEdit()
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) settingsStartEdit() tea.Cmd {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	g := a.cfg.General

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldCompute:
		ti.Placeholder = "hetzner, ovh, digitalocean, gcp, aws"
		ti.SetValue(g.Compute)
	case settingsFieldBlob:
		ti.Placeholder = "aws-s3, gcs, azure-blob, cloudflare-r2, backblaze-b2"
		ti.SetValue(g.Blob)
	case settingsFieldPrice:
		ti.Placeholder = "0.27"
		ti.SetValue(formatAmount(g.TokenPrice))
	case settingsFieldStake:
		ti.Placeholder = "2000000"
		ti.SetValue(formatAmount(g.Stake))
	case settingsFieldAddr:
		ti.Placeholder = "127.0.0.1:8788"
		ti.SetValue(a.cfg.Server.Addr)
	}

	cmd := ti.Focus()
	a.settings.input = ti
	return cmd
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited field and persists the config.
// Invalid values are reported and nothing is written.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
	case settingsFieldCompute:
		p, err := cfg.LookupCompute(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.General.Compute = p.Name
	case settingsFieldBlob:
		p, err := cfg.LookupBlob(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.General.Blob = p.Name
	case settingsFieldPrice, settingsFieldStake:
		v, err := parseAmount(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		if a.settings.cursor == settingsFieldPrice {
			cfg.General.TokenPrice = v
		} else {
			cfg.General.Stake = v
		}
	case settingsFieldAddr:
		if val == "" {
			a.settings.saveErr = fmt.Errorf("address must not be empty")
			return
		}
		cfg.Server.Addr = val
	}

	a.settings.saveErr = config.Save(cfg)
	if a.settings.saveErr == nil {
		a.cfg = cfg
		theme.SetActive(cfg.Appearance.Theme)
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Gain).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	fields := []struct{ label, value string }{
		{"Theme", cfg.Appearance.Theme},
		{"Default compute", cfg.General.Compute},
		{"Default blob", cfg.General.Blob},
		{"Default price", formatAmount(cfg.General.TokenPrice) + " USD"},
		{"Default stake", formatAmount(cfg.General.Stake) + " tokens"},
		{"Server address", cfg.Server.Addr},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(gainStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	a0 := a.assumptions
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("History db:      ") + valueStyle.Render(cfg.HistoryPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Saved runs:      ") + valueStyle.Render(fmt.Sprintf("%d", len(a.runs))) + "\n")
	infoBody.WriteString(labelStyle.Render("Assumptions:     ") + valueStyle.Render(fmt.Sprintf(
		"%.0f GB stored, %.0f GB egress, %.1f%% reward, %d weeks",
		a0.StorageGB, a0.EgressGB, a0.AnnualRewardRate*100, a0.WeekCount)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
