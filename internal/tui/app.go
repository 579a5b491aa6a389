// Package tui provides the interactive Bubble Tea dashboard for housedash.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/housedash/internal/config"
	"github.com/theirongolddev/housedash/internal/model"
	"github.com/theirongolddev/housedash/internal/pipeline"
	"github.com/theirongolddev/housedash/internal/tui/components"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// CatalogLoadedMsg is sent when the one-time location catalog fetch finishes.
// A failed fetch arrives as an empty, non-nil catalog.
type CatalogLoadedMsg struct {
	Entries []pipeline.CatalogEntry
}

// LocationChangedMsg is emitted by the selector when the user commits a location.
type LocationChangedMsg struct {
	Value string
}

// DatasetMsg carries the result of a housing data fetch, tagged with the
// selection key and request generation it was issued for.
type DatasetMsg struct {
	Key     string
	Seq     uint64
	Dataset *model.Dataset
	Err     error
}

// Source is the housing API as seen by the dashboard.
type Source interface {
	pipeline.CatalogSource
	pipeline.DatasetSource
}

// Options configures a new App.
type Options struct {
	Source   Source
	Endpoint string // shown in the status bar
	Timeout  time.Duration
	Location string // initial selection, may be empty
	Log      zerolog.Logger

	// Rebuild returns a Source for updated API settings. When nil, API
	// changes made in the settings tab apply on next launch.
	Rebuild func(cfg config.Config) Source

	// Setup shows the first-run form before the dashboard.
	Setup bool
}

// App is the root Bubble Tea model.
type App struct {
	src      Source
	rebuild  func(config.Config) Source
	endpoint string
	timeout  time.Duration
	log      zerolog.Logger

	// Catalog
	catalog       []pipeline.CatalogEntry
	catalogLoaded bool

	// Current selection and its dataset. seq is bumped on every fetch so
	// late responses for superseded requests can be recognized.
	selected string
	seq      uint64
	dataset  *model.Dataset
	stats    *model.DerivedStats
	loading  bool
	errMsg   string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursors   [3]int // chart cursor per chart tab
	dataRow   int    // first visible row on the data tab

	selector selectorState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 180

	headerHeight      = 2 // tab bar + location row
	statusBarHeight   = 1
	scrollOverhead    = 10
	minHalfPageScroll = 1
	minContentHeight  = 5

	tabOverview = 0
	tabHistory  = 1
	tabForecast = 2
	tabData     = 3
	tabSettings = 4
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	a := App{
		src:       opts.Source,
		rebuild:   opts.Rebuild,
		endpoint:  opts.Endpoint,
		timeout:   timeout,
		log:       opts.Log,
		needSetup: opts.Setup,
		spinner:   sp,
		selector:  newSelectorState(),
	}
	if loc := strings.TrimSpace(opts.Location); loc != "" {
		a.selected = loc
		a.seq = 1
		a.loading = true
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		loadCatalogCmd(a.src, a.timeout, a.log),
		a.spinner.Tick,
	}
	if a.loading {
		cmds = append(cmds, fetchDatasetCmd(a.src, a.selected, a.seq, a.timeout))
	}
	if a.needSetup {
		cmds = append(cmds, func() tea.Msg { return startSetupMsg{} })
	}
	return tea.Batch(cmds...)
}

type startSetupMsg struct{}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case startSetupMsg:
		if !a.needSetup {
			return a, nil
		}
		a.setupVals = newSetupValues(loadConfigOrDefault())
		a.setupForm = newSetupForm(a.setupVals)
		if a.width > 0 {
			a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
		}
		return a, a.setupForm.Init()

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case CatalogLoadedMsg:
		a.catalog = msg.Entries
		a.catalogLoaded = true
		a.selector.refilter(a.catalog)
		return a, nil

	case LocationChangedMsg:
		return a.selectLocation(msg.Value)

	case DatasetMsg:
		if msg.Key != a.selected || msg.Seq != a.seq {
			a.log.Debug().
				Str("location", msg.Key).
				Uint64("seq", msg.Seq).
				Str("current", a.selected).
				Uint64("current_seq", a.seq).
				Msg("discarding stale housing response")
			return a, nil
		}
		a.loading = false
		if msg.Err != nil {
			a.log.Warn().Err(msg.Err).Str("location", msg.Key).Msg("housing data fetch failed")
			a.errMsg = pipeline.DatasetErrorMessage(msg.Err)
			a.dataset = nil
			a.stats = nil
			return a, nil
		}
		a.errMsg = ""
		a.dataset = msg.Dataset
		a.stats = pipeline.DeriveStats(msg.Dataset)
		a.resetCursors()
		return a, nil

	case spinner.TickMsg:
		if !a.loading && a.catalogLoaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.selector.open {
		var cmd tea.Cmd
		a.selector.input, cmd = a.selector.input.Update(msg)
		return a, cmd
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Open selector captures typing
	if a.selector.open {
		return a.updateSelector(msg)
	}

	// Settings tab has its own keybindings (text input)
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "s", "/":
		return a.openSelector()
	case "q":
		return a, tea.Quit
	case "r":
		if a.selected != "" {
			return a.refetch()
		}
		return a, nil
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}

	switch a.activeTab {
	case tabOverview, tabHistory, tabForecast:
		switch key {
		case "left":
			a.moveCursor(-1)
			return a, nil
		case "right":
			a.moveCursor(1)
			return a, nil
		case "home":
			a.cursors[a.activeTab] = 0
			return a, nil
		case "end":
			a.cursors[a.activeTab] = a.chartLen(a.activeTab) - 1
			return a, nil
		}
	case tabData:
		if a.updateDataScroll(key) {
			return a, nil
		}
	case tabSettings:
		switch key {
		case "j", "down":
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		case "k", "up":
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.selector.open {
		return a.updateSelectorMouse(msg)
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabData && a.dataRow > 0 {
			a.dataRow--
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		if a.activeTab == tabData {
			a.updateDataScroll("down")
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		switch msg.Y {
		case 0:
			if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
				a.activeTab = tab
			}
		case 1:
			return a.openSelector()
		}
		return a, nil
	}
	return a, nil
}

// selectLocation applies a committed selection and starts its fetch.
// Re-committing the current location leaves the dashboard untouched.
func (a App) selectLocation(value string) (tea.Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	if value == "" || value == a.selected {
		return a, nil
	}
	a.selected = value
	a.dataset = nil
	a.stats = nil
	return a.refetch()
}

// refetch issues a new request generation for the current selection.
func (a App) refetch() (tea.Model, tea.Cmd) {
	a.seq++
	a.loading = true
	a.errMsg = ""
	a.log.Debug().Str("location", a.selected).Uint64("seq", a.seq).Msg("fetching housing data")
	return a, tea.Batch(
		fetchDatasetCmd(a.src, a.selected, a.seq, a.timeout),
		a.spinner.Tick,
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		if err := a.saveSetupConfig(); err != nil {
			a.log.Warn().Err(err).Msg("saving setup config")
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// ─── Chart cursor ───────────────────────────────────────────────

func (a App) chartLen(tab int) int {
	if a.dataset == nil {
		return 0
	}
	switch tab {
	case tabHistory:
		return len(a.dataset.PastData)
	case tabForecast:
		return len(a.dataset.ForecastedPrices)
	default:
		return len(a.dataset.PastData) + len(a.dataset.ForecastedPrices)
	}
}

// resetCursors parks each chart cursor on the latest observed price.
func (a *App) resetCursors() {
	past := 0
	if a.dataset != nil {
		past = len(a.dataset.PastData)
	}
	a.cursors[tabOverview] = past - 1
	a.cursors[tabHistory] = past - 1
	a.cursors[tabForecast] = 0
	a.dataRow = 0
}

func (a *App) moveCursor(delta int) {
	n := a.chartLen(a.activeTab)
	if n == 0 {
		return
	}
	c := a.cursors[a.activeTab] + delta
	if c < 0 {
		c = 0
	}
	if c > n-1 {
		c = n - 1
	}
	a.cursors[a.activeTab] = c
}

func (a *App) updateDataScroll(key string) bool {
	rows := a.chartLen(tabOverview)
	halfPage := (a.height - scrollOverhead) / 2
	if halfPage < minHalfPageScroll {
		halfPage = minHalfPageScroll
	}
	switch key {
	case "j", "down":
		a.dataRow++
	case "k", "up":
		a.dataRow--
	case "ctrl+d":
		a.dataRow += halfPage
	case "ctrl+u":
		a.dataRow -= halfPage
	case "g":
		a.dataRow = 0
	case "G":
		a.dataRow = rows
	default:
		return false
	}
	maxRow := rows - dataVisibleRows(a.contentHeight())
	if a.dataRow > maxRow {
		a.dataRow = maxRow
	}
	if a.dataRow < 0 {
		a.dataRow = 0
	}
	return true
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// contentHeight is the number of lines between the header and the status bar.
func (a App) contentHeight() int {
	h := a.height - headerHeight - statusBarHeight
	if h < minContentHeight {
		return minContentHeight
	}
	return h
}

// contentLeft is the column where the centered content zone starts.
func (a App) contentLeft() int {
	return (a.width - a.contentWidth()) / 2
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  housedash needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

// viewLoading renders the centered spinner card shown while a dataset is
// in flight.
func (a App) viewLoading(w, h int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ " + a.selected))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading housing data..."))

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// viewEmpty renders the hint shown before any location is chosen.
func (a App) viewEmpty(w, h int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Surface).
		Padding(1, 4)
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("No location selected"))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("Press ") + keyStyle.Render("s") +
		hintStyle.Render(" to choose a location and view its price history"))
	if !a.catalogLoaded {
		b.WriteString("\n")
		b.WriteString(a.spinner.View())
		b.WriteString(hintStyle.Render(" Loading locations..."))
	}

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

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
		Foreground(t.Key).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o h f d x", "Jump to tab"},
		{"Tab ⇧Tab", "Next / Previous tab"},
		{"← →", "Move chart cursor"},
		{"j k", "Navigate lists"},
		{"^d ^u", "Half-page scroll"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"s /", "Select location"},
		{"Enter", "Confirm"},
		{"Esc", "Close / Cancel"},
		{"r", "Reload current location"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderLocationRow renders the second header line: the selector trigger
// plus the error banner when the last fetch failed.
func (a App) renderLocationRow(w int) string {
	t := theme.Active

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Error).Background(t.Surface).Bold(true)

	label := "Select a location"
	if a.selected != "" {
		label = a.selected
		if e, ok := pipeline.FindEntry(a.catalog, a.selected); ok {
			label = e.Display
		}
	}
	glyph := " ▾"
	if a.selector.open {
		glyph = " ▴"
	}

	row := pillStyle.Render(" Location: ") + accentStyle.Render(label) + pillStyle.Render(glyph)
	if a.errMsg != "" {
		row += pillStyle.Render("  │ ") + errStyle.Render("✗ "+a.errMsg)
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(row)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	// 1. Header (tab bar + location row)
	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderLocationRow(w)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.selected, a.endpoint)

	// 3. Content zone height
	contentH := a.contentHeight()

	// 4. Tab content
	var content string
	switch {
	case a.selector.open:
		content = a.renderSelector()
	case a.activeTab == tabSettings:
		content = a.renderSettingsTab(cw)
	case a.selected == "" && a.errMsg == "":
		return a.frame(header, a.viewEmpty(w, contentH), statusBar)
	case a.loading:
		return a.frame(header, a.viewLoading(w, contentH), statusBar)
	case a.dataset == nil:
		content = a.renderFetchError(cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw, contentH)
		case tabHistory:
			content = a.renderHistoryTab(cw, contentH)
		case tabForecast:
			content = a.renderForecastTab(cw, contentH)
		case tabData:
			content = a.renderDataTab(cw, contentH)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content zone
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return a.frame(header, content, statusBar)
}

func (a App) frame(header, content, statusBar string) string {
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(theme.Active.Background))
}

// renderFetchError renders the content shown after a failed fetch.
func (a App) renderFetchError(cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Error).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := errStyle.Render(a.errMsg) + "\n\n" +
		hintStyle.Render("[r] retry  [s] choose another location")
	return components.ContentCard("Error", body, cw)
}

// ─── Commands ───────────────────────────────────────────────────

// loadCatalogCmd fetches the location catalog once. Failures degrade to an
// empty catalog inside pipeline.LoadCatalog.
func loadCatalogCmd(src pipeline.CatalogSource, timeout time.Duration, log zerolog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return CatalogLoadedMsg{Entries: pipeline.LoadCatalog(ctx, src, log)}
	}
}

// fetchDatasetCmd fetches one location's dataset, tagging the result with
// the key and generation it was issued for.
func fetchDatasetCmd(src pipeline.DatasetSource, key string, seq uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		d, err := src.HousingData(ctx, key)
		return DatasetMsg{Key: key, Seq: seq, Dataset: d, Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

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
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is two columns between tabs.
		if i < len(components.Tabs)-1 {
			pos += 2
		}
	}
	return -1
}
