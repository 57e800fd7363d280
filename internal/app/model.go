// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/aimkt-usage-tui/internal/config"
	"github.com/j-veylop/aimkt-usage-tui/internal/export"
	"github.com/j-veylop/aimkt-usage-tui/internal/services"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabOverview shows KPIs, traffic charts and the heatmap.
	TabOverview TabID = iota
	// TabReliability shows errors, failures, spend and quotas.
	TabReliability
	// TabBreakdown shows the dimension table and quality signals.
	TabBreakdown
	// TabInfo shows configuration, alerts and the export log.
	TabInfo
)

var tabNames = []string{"Overview", "Reliability", "Breakdown", "Info"}

// String returns the string representation of the TabID.
func (t TabID) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// InputCapturer is implemented by tabs that can take over the keyboard,
// for example while a text field is focused.
type InputCapturer interface {
	Capturing() bool
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	Tab4      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Range     key.Binding
	Dimension key.Binding
	Legend1   key.Binding
	Legend2   key.Binding
	TokensIn  key.Binding
	TokensOut key.Binding
	TokensAvg key.Binding
	Reset     key.Binding
	JSON      key.Binding
	CSV       key.Binding
	Copy      key.Binding
	Charts    key.Binding
	Alerts    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setFilterKeys(km)
	km = setActionKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "reliability"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "breakdown"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab"))
	return k
}

func setFilterKeys(k KeyMap) KeyMap {
	k.Range = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle time range"))
	k.Dimension = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "cycle dimension"))
	k.Legend1 = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle first service"))
	k.Legend2 = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "toggle second service"))
	k.TokensIn = key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "tokens in"))
	k.TokensOut = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "tokens out"))
	k.TokensAvg = key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "avg per request"))
	k.Reset = key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset filters"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.JSON = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export KPIs JSON"))
	k.CSV = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export tables CSV"))
	k.Copy = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy API command"))
	k.Charts = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "save chart PNGs"))
	k.Alerts = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "edit alerts"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Range, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.NextTab, k.PrevTab},
		{k.Range, k.Dimension, k.Legend1, k.Legend2, k.TokensIn, k.TokensOut, k.TokensAvg, k.Reset},
		{k.JSON, k.CSV, k.Copy, k.Charts, k.Alerts},
		{k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	FilterBar   lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)
	s.FilterBar = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)

	return s
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab

	// Shared state
	state     *State
	services  *services.Manager
	clipboard export.Clipboard
	keymap    KeyMap
	styles    Styles

	exportDir string
	dpr       float64

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. mgr and cfg may be nil,
// in which case the built-in profile and defaults are used and nothing
// is persisted.
func NewModel(mgr *services.Manager, cfg *config.Config) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	seed := usage.DefaultSeed
	timeRange := usage.Range24h
	alerts := usage.DefaultAlertThresholds()
	exportDir := "exports"
	dpr := 1.0
	if cfg != nil {
		seed = cfg.Seed
		timeRange = cfg.DefaultRange
		alerts = cfg.Alerts
		exportDir = cfg.ExportDir
		dpr = cfg.DevicePixelRatio
	}

	var profile *usage.Profile
	if mgr != nil {
		profile = mgr.Profile()
		alerts = mgr.Alerts()
	}

	return &Model{
		activeTab: TabOverview,
		tabs:      make([]Tab, len(tabNames)),
		state:     NewState(seed, profile, timeRange, alerts),
		services:  mgr,
		clipboard: export.SystemClipboard{},
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		exportDir: exportDir,
		dpr:       dpr,
		spinner:   s,
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// SetClipboard replaces the clipboard used by the copy action.
func (m *Model) SetClipboard(cb export.Clipboard) {
	m.clipboard = cb
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetKeyMap returns the key bindings.
func (m *Model) GetKeyMap() KeyMap {
	return m.keymap
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds,
			subscribeToServicesCmd(m.services),
			recordGenerationCmd(m.services, m.state.Snapshot(), "startup", m.state.Alerts()),
		)
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	if broadcastToTabs(msg) {
		cmds = append(cmds, m.updateAllTabs(msg))
	} else if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// broadcastToTabs reports whether msg changes data every tab renders, so
// inactive tabs must see it too.
func broadcastToTabs(msg tea.Msg) bool {
	switch msg.(type) {
	case SnapshotUpdatedMsg, FiltersChangedMsg, AlertsSavedMsg:
		return true
	}
	return false
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel), loadExportsCmd(m.services))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg)...)
	case ExportsLoadedMsg:
		m.state.SetExports(msg.Records)
	case SaveAlertsMsg:
		a := m.state.SetAlerts(msg.Alerts)
		cmds = append(cmds, saveAlertsCmd(m.services, a))
	case AlertsSavedMsg:
		if msg.Error != nil {
			cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Failed to save alerts: %v", msg.Error)))
		} else {
			cmds = append(cmds, notifySuccessCmd("Alert thresholds saved"))
			cmds = append(cmds, recordGenerationCmd(m.services, m.state.Snapshot(), "alerts", msg.Alerts))
		}
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("%s: %v", msg.Context, msg.Error)))
	case TabSwitchMsg:
		m.switchTab(msg.Tab)
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleExportResult(msg ExportResultMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if msg.Kind == export.KindCharts {
		m.state.ClearLoadingNotification()
	}
	if msg.Error != nil {
		cmds = append(cmds, notifyErrorCmd(msg.Message))
	} else {
		cmds = append(cmds, notifySuccessCmd(msg.Message))
	}
	cmds = append(cmds, loadExportsCmd(m.services))
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.ProfileChangedEvent:
		snap := m.state.SetProfile(e.Profile)
		return tea.Batch(
			m.afterRegenerate(snap, "profile"),
			notifyInfoCmd("Profile reloaded"),
		)

	case services.AlertBreachedEvent:
		details := make([]string, len(e.Breaches))
		for i, b := range e.Breaches {
			details[i] = b.Detail
		}
		return notifyWarningCmd(strings.Join(details, "; "))

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

func (m *Model) afterRegenerate(snap *usage.Snapshot, reason string) tea.Cmd {
	return tea.Batch(
		snapshotUpdatedCmd(snap, reason),
		recordGenerationCmd(m.services, snap, reason, m.state.Alerts()),
	)
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateAllTabs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, tab := range m.tabs {
		if tab == nil {
			continue
		}
		var cmd tea.Cmd
		m.tabs[i], cmd = tab.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-6)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(id TabID) {
	if id < 0 || int(id) >= len(m.tabs) {
		return
	}
	m.activeTab = id
	m.updateTabSizes()
}

func (m *Model) capturing() bool {
	if int(m.activeTab) >= len(m.tabs) || m.tabs[m.activeTab] == nil {
		return false
	}
	c, ok := m.tabs[m.activeTab].(InputCapturer)
	return ok && c.Capturing()
}

// handleKeyMsg handles global keys. handled is false when the key should
// reach the active tab instead.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}
	if m.capturing() {
		return nil, false
	}
	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Escape) {
			m.showHelp = false
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return nil, true
	}

	if cmd, ok := m.handleNavKey(msg); ok {
		return cmd, true
	}
	if cmd, ok := m.handleFilterKey(msg); ok {
		return cmd, true
	}
	return m.handleActionKey(msg)
}

func (m *Model) handleNavKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabOverview)
	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabReliability)
	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabBreakdown)
	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabInfo)
	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs)))
	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs)))
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Range):
		return m.afterRegenerate(m.state.CycleRange(), "range"), true

	case key.Matches(msg, m.keymap.Dimension):
		m.state.CycleDimension()
		return filtersChangedCmd(m.state.Filters()), true

	case key.Matches(msg, m.keymap.Legend1):
		return m.toggleLegend(0), true

	case key.Matches(msg, m.keymap.Legend2):
		return m.toggleLegend(1), true

	case key.Matches(msg, m.keymap.TokensIn, m.keymap.TokensOut, m.keymap.TokensAvg):
		t := m.state.Filters().Tokens
		switch {
		case key.Matches(msg, m.keymap.TokensIn):
			t.In = !t.In
		case key.Matches(msg, m.keymap.TokensOut):
			t.Out = !t.Out
		default:
			t.Avg = !t.Avg
		}
		m.state.SetTokenToggles(t)
		return filtersChangedCmd(m.state.Filters()), true

	case key.Matches(msg, m.keymap.Reset):
		return tea.Batch(
			m.afterRegenerate(m.state.Reset(), "reset"),
			notifyInfoCmd("Filters reset"),
		), true
	}
	return nil, false
}

func (m *Model) toggleLegend(idx int) tea.Cmd {
	names := m.state.Filters().Legends.Names()
	if idx >= len(names) {
		return nil
	}
	return m.afterRegenerate(m.state.ToggleLegend(names[idx]), "legend")
}

func (m *Model) handleActionKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.JSON):
		return exportJSONCmd(m.services, m.exportDir, m.state.Snapshot().KPIs), true

	case key.Matches(msg, m.keymap.CSV):
		return exportCSVCmd(m.services, m.exportDir, m.state.Snapshot(), m.state.Filters().Dimension), true

	case key.Matches(msg, m.keymap.Copy):
		return copyCommandCmd(m.services, m.clipboard, m.state.Filters()), true

	case key.Matches(msg, m.keymap.Charts):
		m.state.SetLoadingNotification("Rendering charts...")
		return saveChartsCmd(m.services, m.exportDir, m.state.Snapshot(), m.state.Filters(), m.dpr), true

	case key.Matches(msg, m.keymap.Alerts):
		m.switchTab(TabInfo)
		return func() tea.Msg { return EditAlertsMsg{} }, true
	}
	return nil, false
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if notifications := m.renderNotifications(); len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := m.padLines(strings.Split(mainView, "\n"))
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := lipgloss.Width(overlay)
	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]
		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

// padLines extends lines to the window height so overlays always land.
func (m *Model) padLines(lines []string) []string {
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) renderNavbar() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderFilterBar() string {
	f := m.state.Filters()

	legends := make([]string, len(f.Legends))
	for i, l := range f.Legends {
		mark := "○"
		if l.Active {
			mark = "●"
		}
		legends[i] = mark + " " + l.Name
	}

	var tokens []string
	if f.Tokens.In {
		tokens = append(tokens, "in")
	}
	if f.Tokens.Out {
		tokens = append(tokens, "out")
	}
	if f.Tokens.Avg {
		tokens = append(tokens, "avg")
	}
	if len(tokens) == 0 {
		tokens = append(tokens, "none")
	}

	line := fmt.Sprintf("Range %s  |  Dimension %s  |  %s  |  Tokens %s",
		f.Range.Label(), f.Dimension.Title(), strings.Join(legends, "  "), strings.Join(tokens, "/"))
	return m.styles.FilterBar.Render(ansi.Truncate(line, max(m.width-4, 0), "…"))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	toasts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := m.padLines(strings.Split(mainView, "\n"))

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)
	startY := 3

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			mainLines[lineIdx] = mainLine + strings.Repeat(" ", startX-mainLineWidth) + toastLine
		} else {
			mainLines[lineIdx] = ansi.Truncate(mainLine, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	sections := []string{"Navigation", "Filters", "Export", "General"}

	var lines []string
	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"), "")

	for i, group := range m.keymap.FullHelp() {
		lines = append(lines, m.styles.Highlight.Render(sections[i]))
		for _, binding := range group {
			lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
		}
		lines = append(lines, "")
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		if tabHelp := m.tabs[m.activeTab].ShortHelp(); len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.activeTab)))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.activeTab,
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
