package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/store"
	"github.com/theirongolddev/stakesim/internal/tui"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive simulator",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, sel, err := resolveSelection(cmd)
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// History is optional; the TUI shows it as unavailable.
	hist, err := store.Open(cfg.HistoryPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: history unavailable: %s\n", err)
	} else {
		defer func() { _ = hist.Close() }()
	}

	app := tui.NewApp(cfg, sel, hist, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
