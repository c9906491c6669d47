// Package tui provides the interactive Bubble Tea simulator for stakesim.
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/model"
	"github.com/theirongolddev/stakesim/internal/scenario"
	"github.com/theirongolddev/stakesim/internal/sim"
	"github.com/theirongolddev/stakesim/internal/store"
	"github.com/theirongolddev/stakesim/internal/tui/components"
	"github.com/theirongolddev/stakesim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// runsLoadedMsg carries the history list after a background load.
type runsLoadedMsg struct {
	runs []store.Run
	err  error
}

// runSavedMsg is sent when ctrl+s finished writing a run.
type runSavedMsg struct {
	id  int64
	err error
}

// runDeletedMsg is sent when a history entry was removed.
type runDeletedMsg struct {
	id  int64
	err error
}

const (
	tabSimulate = iota
	tabWeekly
	tabCompare
	tabHistory
	tabSettings
)

// Focusable controls on the Simulate tab.
const (
	focusCompute = iota
	focusBlob
	focusPrice
	focusStake
	focusCount // sentinel
)

// App is the root Bubble Tea model.
type App struct {
	cfg      config.Config
	computes []config.ComputeProvider
	blobs    []config.BlobProvider

	// Scenario controls
	name        string
	computeIdx  int
	blobIdx     int
	priceIn     textinput.Model
	stakeIn     textinput.Model
	focus       int
	editing     bool
	editOrig    string
	inputErr    string
	assumptions model.Assumptions

	// Derived from the controls on every change
	scenario    model.Scenario
	weeks       []model.WeekProjection
	summary     model.Summary
	breakEven   float64
	breakEvenOK bool
	rows        []model.ComparisonRow

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	help      help.Model
	status    string
	statusErr bool

	// Per-tab state
	weekOffset    int
	compareCursor int
	settings      settingsState

	// History
	history     *store.History
	runs        []store.Run
	runsLoaded  bool
	loadingRuns bool
	histCursor  int
	spinner     spinner.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates the simulator model starting from sel. hist may be nil,
// in which case the History tab is read-only empty and ctrl+s reports it.
func NewApp(cfg config.Config, sel scenario.Selection, hist *store.History, needSetup bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		cfg:         cfg,
		name:        sel.Name,
		assumptions: sel.Scenario.Assumptions,
		priceIn:     newNumberInput("0.27"),
		stakeIn:     newNumberInput("2000000"),
		help:        help.New(),
		history:     hist,
		loadingRuns: hist != nil,
		spinner:     sp,
		needSetup:   needSetup,
	}
	a.loadProviders()
	a.selectProviders(sel.Compute, sel.Blob)
	a.priceIn.SetValue(formatAmount(sel.Scenario.TokenPrice))
	a.stakeIn.SetValue(formatAmount(sel.Scenario.StakeAmount))
	a.recompute()

	if needSetup {
		a.setupVals = NewSetupValues(cfg)
		a.setupForm = NewSetupForm(cfg, a.setupVals)
	}
	return a
}

func newNumberInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 24
	ti.Width = 18
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.history != nil {
		cmds = append(cmds, loadRunsCmd(a.history), a.spinner.Tick)
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) loadProviders() {
	a.computes = a.cfg.ComputeProviders()
	a.blobs = a.cfg.BlobProviders()
}

// selectProviders points the selectors at the named providers, falling
// back to the first entry for names that are not in the tables.
func (a *App) selectProviders(compute, blob string) bool {
	found := true
	a.computeIdx, a.blobIdx = 0, 0

	c := config.NormalizeProviderName(compute)
	if i := indexOf(len(a.computes), func(i int) bool { return a.computes[i].Name == c }); i >= 0 {
		a.computeIdx = i
	} else {
		found = false
	}
	b := config.NormalizeProviderName(blob)
	if i := indexOf(len(a.blobs), func(i int) bool { return a.blobs[i].Name == b }); i >= 0 {
		a.blobIdx = i
	} else {
		found = false
	}
	return found
}

func indexOf(n int, match func(int) bool) int {
	for i := 0; i < n; i++ {
		if match(i) {
			return i
		}
	}
	return -1
}

// parseAmount parses a user-typed number. Underscores and thousands
// separators are accepted; NaN and infinities are not.
func parseAmount(s string) (float64, error) {
	clean := strings.NewReplacer("_", "", ",", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("value is empty")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recompute rebuilds the scenario from the controls and re-runs the
// simulation. Invalid numeric input keeps the previous projection.
func (a *App) recompute() {
	price, err := parseAmount(a.priceIn.Value())
	if err != nil {
		a.inputErr = "token price: " + err.Error()
		return
	}
	stake, err := parseAmount(a.stakeIn.Value())
	if err != nil {
		a.inputErr = "stake: " + err.Error()
		return
	}
	a.inputErr = ""

	cp := a.computes[a.computeIdx]
	bp := a.blobs[a.blobIdx]
	a.scenario = model.Scenario{
		ComputeBaseMonthlyCost: cp.MonthlyUSD,
		StoragePerGBMonthly:    bp.StoragePerGB,
		EgressPerGBMonthly:     bp.EgressPerGB,
		TokenPrice:             price,
		StakeAmount:            stake,
		Assumptions:            a.assumptions,
	}
	a.weeks = sim.Simulate(a.scenario)
	a.summary = sim.Summarize(a.weeks)
	a.breakEven, a.breakEvenOK = sim.BreakEvenStake(a.scenario)
	a.rows = sim.Compare(a.scenario, a.cfg.CompareOptions())

	a.weekOffset = min(a.weekOffset, max(len(a.weeks)-1, 0))
	a.compareCursor = min(a.compareCursor, max(len(a.rows)-1, 0))
}

func (a App) computeName() string { return a.computes[a.computeIdx].Name }
func (a App) blobName() string    { return a.blobs[a.blobIdx].Name }

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case runsLoadedMsg:
		a.loadingRuns = false
		if msg.err != nil {
			a.setStatus("loading history: "+msg.err.Error(), true)
			return a, nil
		}
		a.runs = msg.runs
		a.runsLoaded = true
		a.histCursor = min(a.histCursor, max(len(a.runs)-1, 0))
		return a, nil

	case runSavedMsg:
		if msg.err != nil {
			a.setStatus("saving run: "+msg.err.Error(), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("saved run #%d", msg.id), false)
		a.loadingRuns = true
		return a, tea.Batch(loadRunsCmd(a.history), a.spinner.Tick)

	case runDeletedMsg:
		if msg.err != nil {
			a.setStatus("deleting run: "+msg.err.Error(), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("deleted run #%d", msg.id), false)
		a.loadingRuns = true
		return a, tea.Batch(loadRunsCmd(a.history), a.spinner.Tick)

	case spinner.TickMsg:
		if a.loadingRuns {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.editing {
		return a.forwardToInput(msg)
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if a.editing {
		return a.updateNumberInput(msg)
	}

	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key.Matches(msg, keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Save):
		return a.saveRun()
	case key.Matches(msg, keys.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case key.Matches(msg, keys.PrevTab):
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}

	var (
		handled bool
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case tabSimulate:
		handled, cmd = a.simulateKey(msg)
	case tabWeekly:
		handled = a.weeklyKey(msg)
	case tabCompare:
		handled = a.compareKey(msg)
	case tabHistory:
		handled, cmd = a.historyKey(msg)
	case tabSettings:
		handled, cmd = a.settingsKey(msg)
	}
	if handled {
		return a, cmd
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

// simulateKey handles selector and input navigation on the Simulate tab.
// The pointer receiver lets updateKey keep the mutated copy.
func (a *App) simulateKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		a.focus = (a.focus - 1 + focusCount) % focusCount
	case key.Matches(msg, keys.Down):
		a.focus = (a.focus + 1) % focusCount
	case key.Matches(msg, keys.Left):
		a.cycleProvider(-1)
	case key.Matches(msg, keys.Right):
		a.cycleProvider(1)
	case key.Matches(msg, keys.Enter):
		switch a.focus {
		case focusCompute, focusBlob:
			a.cycleProvider(1)
		case focusPrice, focusStake:
			return true, a.startEditing()
		}
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) cycleProvider(step int) {
	switch a.focus {
	case focusCompute:
		a.computeIdx = (a.computeIdx + step + len(a.computes)) % len(a.computes)
	case focusBlob:
		a.blobIdx = (a.blobIdx + step + len(a.blobs)) % len(a.blobs)
	default:
		return
	}
	a.recompute()
}

func (a *App) focusedInput() *textinput.Model {
	if a.focus == focusPrice {
		return &a.priceIn
	}
	return &a.stakeIn
}

func (a App) focusedInputView() string {
	if a.focus == focusPrice {
		return a.priceIn.View()
	}
	return a.stakeIn.View()
}

func (a *App) startEditing() tea.Cmd {
	in := a.focusedInput()
	a.editing = true
	a.editOrig = in.Value()
	in.CursorEnd()
	return in.Focus()
}

// updateNumberInput handles keys while a numeric input is focused.
// Enter applies, Esc restores the value from before editing started.
func (a App) updateNumberInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := a.focusedInput()
	switch msg.String() {
	case "enter":
		in.Blur()
		a.editing = false
		a.recompute()
		if a.inputErr != "" {
			a.setStatus(a.inputErr, true)
		} else {
			a.setStatus("", false)
		}
		return a, nil
	case "esc":
		in.SetValue(a.editOrig)
		in.Blur()
		a.editing = false
		a.recompute()
		return a, nil
	}
	return a.forwardToInput(msg)
}

func (a App) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := a.focusedInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return a, cmd
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scroll(-1)
	case tea.MouseButtonWheelDown:
		a.scroll(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a *App) scroll(delta int) {
	switch a.activeTab {
	case tabWeekly:
		a.weekOffset = clamp(a.weekOffset+delta, 0, len(a.weeks)-1)
	case tabCompare:
		a.compareCursor = clamp(a.compareCursor+delta, 0, len(a.rows)-1)
	case tabHistory:
		a.histCursor = clamp(a.histCursor+delta, 0, len(a.runs)-1)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.applySetup()
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

// applySetup saves the setup answers and moves the controls to the new
// defaults.
func (a *App) applySetup() {
	cfg, err := a.setupVals.Apply(a.cfg)
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	if err := config.Save(cfg); err != nil {
		a.setStatus("saving config: "+err.Error(), true)
	} else {
		a.setStatus("saved "+config.Path(), false)
	}
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.loadProviders()
	a.selectProviders(cfg.General.Compute, cfg.General.Blob)
	a.priceIn.SetValue(formatAmount(cfg.General.TokenPrice))
	a.stakeIn.SetValue(formatAmount(cfg.General.Stake))
	a.recompute()
}

func (a App) saveRun() (tea.Model, tea.Cmd) {
	if a.history == nil {
		a.setStatus("history is unavailable", true)
		return a, nil
	}
	if a.inputErr != "" {
		a.setStatus("fix the inputs before saving", true)
		return a, nil
	}
	name := a.name
	if name == "" {
		name = a.computeName() + "+" + a.blobName()
	}
	run := store.Run{
		Name:     name,
		Compute:  a.computeName(),
		Blob:     a.blobName(),
		Scenario: a.scenario,
		Weeks:    a.weeks,
	}
	return a, saveRunCmd(a.history, run)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  stakesim needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	h := a.help
	h.ShowAll = true
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = descStyle
	h.Styles.FullSeparator = dimStyle

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Tabs"))
	b.WriteString("\n")
	for _, tab := range components.Tabs {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-6s", string(tab.Key))),
			descStyle.Render(tab.Name))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(h.View(keys))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccent.Render(a.computes[a.computeIdx].Label) +
		pillStyle.Render(" │ ") +
		pillAccent.Render(a.blobs[a.blobIdx].Label) +
		pillStyle.Render(" │ ") +
		pillAccent.Render(fmt.Sprintf("%d weeks", a.assumptions.WeekCount))
	if a.name != "" {
		pill += pillStyle.Render(" │ ") + pillAccent.Render(a.name)
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	statusBar := components.RenderStatusBar(w, a.computeName()+" / "+a.blobName(), a.status, a.statusErr)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabSimulate:
		content = a.renderSimulateTab(cw, contentH)
	case tabWeekly:
		content = a.renderWeeklyTab(cw, contentH)
	case tabCompare:
		content = a.renderCompareTab(cw, contentH)
	case tabHistory:
		content = a.renderHistoryTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func weekLabels(weeks []model.WeekProjection) []string {
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = "w" + strconv.Itoa(w.Week)
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── History commands ───────────────────────────────────────────

func loadRunsCmd(h *store.History) tea.Cmd {
	return func() tea.Msg {
		runs, err := h.ListRuns()
		return runsLoadedMsg{runs: runs, err: err}
	}
}

func saveRunCmd(h *store.History, run store.Run) tea.Cmd {
	return func() tea.Msg {
		id, err := h.SaveRun(run)
		return runSavedMsg{id: id, err: err}
	}
}

func deleteRunCmd(h *store.History, id int64) tea.Cmd {
	return func() tea.Msg {
		return runDeletedMsg{id: id, err: h.DeleteRun(id)}
	}
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
