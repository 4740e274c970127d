// Package tui provides the interactive Bubble Tea dashboard for benchavg.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/benchavg/internal/cli"
	"github.com/theirongolddev/benchavg/internal/config"
	"github.com/theirongolddev/benchavg/internal/logging"
	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/pipeline"
	"github.com/theirongolddev/benchavg/internal/source"
	"github.com/theirongolddev/benchavg/internal/store"
	"github.com/theirongolddev/benchavg/internal/tui/components"
	"github.com/theirongolddev/benchavg/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataSource is what the dashboard reads records from.
type DataSource interface {
	Load(ctx context.Context) ([]model.Record, error)
	Inspect() (source.DataFile, error)
}

// DataLoadedMsg is sent when a load finishes, successfully or not.
type DataLoadedMsg struct {
	Records  []model.Record
	Source   source.DataFile
	LoadTime time.Duration
	Err      error
	// Import is set for SQLite stores that carry an import record.
	Import *store.ImportInfo
}

// importSource is implemented by sources that can describe the import a
// SQLite data file came from.
type importSource interface {
	LastImport(ctx context.Context) (store.ImportInfo, bool, error)
}

// Options configures NewApp.
type Options struct {
	Source DataSource
	Config config.Config
	// Setup shows the first-run form before the dashboard.
	Setup bool
	// Watch reloads when the data file changes on disk.
	Watch bool
}

const (
	tabOverview = iota
	tabRecords
	tabSource
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
	loadTimeout      = 30 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	src DataSource
	cfg config.Config

	// Data
	records    []model.Record
	dataFile   source.DataFile
	lastImport *store.ImportInfo
	loaded     bool
	loading    bool
	loadErr    error
	loadTime   time.Duration

	// Derived from records and the active range
	filtered []model.Record
	stats    model.AverageStats
	filtErr  error

	rng rangeState

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int
	offset    int
	notice    string
	noticeErr bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model

	watch   bool
	watcher *fileWatcher
}

// NewApp creates the dashboard model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		src:     opts.Source,
		cfg:     opts.Config,
		watch:   opts.Watch,
		spinner: sp,
		loading: true,
		rng:     newRangeState(),
	}

	if opts.Setup {
		vals := SetupValuesFrom(opts.Config)
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals)
		a.needSetup = true
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		loadDataCmd(a.src),
		a.spinner.Tick,
	}
	if a.watch {
		cmds = append(cmds, a.startWatch())
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Close releases the file watcher, if any.
func (a App) Close() error {
	return a.watcher.Close()
}

func (a App) startWatch() tea.Cmd {
	if a.src == nil {
		return nil
	}
	df, _ := a.src.Inspect() // Path is set even when the file is missing
	return startWatchCmd(df.Path)
}

// recompute derives the filtered set and averages from the loaded records.
func (a *App) recompute() {
	a.filtErr = nil
	a.filtered = a.records
	if a.rng.active {
		filtered, err := pipeline.FilterByRange(a.records, a.rng.start, a.rng.end)
		if err != nil {
			a.filtErr = err
			filtered = nil
		}
		a.filtered = filtered
	}
	a.stats = pipeline.CalculateAverage(a.filtered)

	if a.cursor >= len(a.filtered) {
		a.cursor = len(a.filtered) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.offset > a.cursor {
		a.offset = a.cursor
	}
}

func (a *App) setNotice(msg string, isErr bool) {
	a.notice = msg
	a.noticeErr = isErr
}

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

	case DataLoadedMsg:
		a.loaded = true
		a.loading = false
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		a.dataFile = msg.Source
		a.lastImport = msg.Import
		if msg.Err != nil {
			a.records = nil
			logging.Debug("dashboard load failed", "error", msg.Err)
		} else {
			a.records = msg.Records
		}
		a.recompute()
		return a, nil

	case watchStartedMsg:
		a.watcher = msg.w
		return a, waitForChange(a.watcher)

	case DataChangedMsg:
		a.setNotice("data file changed, reloading", false)
		var cmds []tea.Cmd
		if a.watcher != nil {
			cmds = append(cmds, waitForChange(a.watcher))
		}
		if !a.loading {
			a.loading = true
			cmds = append(cmds, loadDataCmd(a.src), a.spinner.Tick)
		}
		return a, tea.Batch(cmds...)

	case WatchErrorMsg:
		logging.Warn("data file watcher", "error", msg.Err)
		a.setNotice("live reload unavailable: "+msg.Err.Error(), true)
		if a.watcher != nil {
			return a, waitForChange(a.watcher)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.needSetup || a.rng.editing {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.rng.editing {
			return a.updateRangeInput(msg)
		}
		return a.updateKeys(msg)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.rng.editing {
		return a.updateRangeInput(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "r":
		if a.loading {
			return a, nil
		}
		a.loading = true
		a.setNotice("", false)
		return a, tea.Batch(loadDataCmd(a.src), a.spinner.Tick)
	case "/":
		return a.startRangeEdit()
	case "c":
		if a.rng.active {
			a.rng.clear()
			a.recompute()
			a.setNotice("range cleared", false)
		}
		return a, nil
	case "left", "h":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		return a, nil
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if a.activeTab == tabRecords {
		switch key {
		case "j", "down":
			a.moveCursor(1)
			return a, nil
		case "k", "up":
			a.moveCursor(-1)
			return a, nil
		case "ctrl+d":
			a.moveCursor(a.halfPage())
			return a, nil
		case "ctrl+u":
			a.moveCursor(-a.halfPage())
			return a, nil
		case "g", "home":
			a.moveCursor(-len(a.filtered))
			return a, nil
		case "G", "end":
			a.moveCursor(len(a.filtered))
			return a, nil
		}
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabRecords {
			a.moveCursor(-1)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabRecords {
			a.moveCursor(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		ApplySetup(&a.cfg, *a.setupVals)
		a.needSetup = false
		a.setupForm = nil
		if err := config.Save(a.cfg); err != nil {
			a.setNotice("saving config: "+err.Error(), true)
		} else {
			a.setNotice("saved "+config.ConfigPath(), false)
		}
		theme.SetActive(a.cfg.Appearance.Theme)

		// The data file and dev mode may have changed.
		if l, ok := a.src.(*pipeline.Loader); ok {
			l.DataFile = a.cfg.General.DataFile
			l.DevMode = a.cfg.General.Debug
			a.loading = true
			return a, tea.Batch(loadDataCmd(a.src), a.spinner.Tick)
		}
		return a, nil

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) moveCursor(delta int) {
	n := len(a.filtered)
	if n == 0 {
		a.cursor, a.offset = 0, 0
		return
	}
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}

	rows := a.recordRows()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
}

func (a App) halfPage() int {
	h := a.recordRows() / 2
	if h < 1 {
		h = 1
	}
	return h
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// contentHeight is the height between the header and the status bar.
func (a App) contentHeight() int {
	h := a.height - 3 // tab bar, range line, status bar
	if h < minContentHeight {
		h = minContentHeight
	}
	return h
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
	if !a.loaded {
		return a.viewLoading()
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
		"\n  Terminal too narrow (%d cols)\n\n  benchavg needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	path := "records"
	if l, ok := a.src.(*pipeline.Loader); ok {
		path = l.DataFile
	}

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ benchavg"))
	b.WriteString(subtitleStyle.Render(" · benchmark averages"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + path))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o e s", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move through records"},
		{"^d ^u", "Half-page scroll"},
		{"/", "Edit time range"},
		{"Tab", "Switch start / end while editing"},
		{"Enter", "Apply range"},
		{"Esc", "Cancel editing"},
		{"c", "Clear range"},
		{"r", "Reload data file"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	contentH := a.contentHeight()

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderRangeLine(w)

	info := components.StatusInfo{
		Records:  cli.FormatNumber(int64(len(a.records))),
		LoadTime: a.loadTime.Round(time.Millisecond).String(),
		Watching: a.watcher != nil,
		Message:  a.notice,
		IsError:  a.noticeErr,
	}
	if a.loadErr != nil {
		info.Records = ""
	}
	statusBar := components.RenderStatusBar(w, info)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabRecords:
		content = a.renderRecordsTab(cw, contentH)
	case tabSource:
		content = a.renderSourceTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// loadErrorHint explains a load failure in dashboard terms.
func loadErrorHint(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrFeatureDisabled):
		return "Dev mode is off. Restart with --debug or set [general] debug = true."
	case errors.Is(err, pipeline.ErrDataNotFound):
		return "The data file does not exist yet. It will load as soon as it is created."
	case errors.Is(err, pipeline.ErrMalformedData), errors.Is(err, pipeline.ErrMalformedRecord):
		return "Run `benchavg validate` for a full report."
	}
	return ""
}

// ─── Helpers ────────────────────────────────────────────────────

func loadDataCmd(src DataSource) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return DataLoadedMsg{Err: errors.New("no data source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		start := time.Now()
		records, err := src.Load(ctx)
		df, _ := src.Inspect()
		msg := DataLoadedMsg{
			Records:  records,
			Source:   df,
			LoadTime: time.Since(start),
			Err:      err,
		}
		if is, ok := src.(importSource); ok {
			info, found, importErr := is.LastImport(ctx)
			if importErr != nil {
				logging.Debug("reading import record", "error", importErr)
			} else if found {
				msg.Import = &info
			}
		}
		return msg
	}
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

// fillLinesWithBackground pads each line to width w with the background color.
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

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab under column x, or -1. Hitboxes follow the
// widths RenderTabBar uses, with a one-column separator between tabs.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
