package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/schema"
	"github.com/scribeworks/scribe-cfg/internal/session"
)

// Message types for async operations
type saveCompleteMsg struct {
	err      error
	duration time.Duration
}

type wifiScanCompleteMsg struct {
	err error
}

// rowKind determines how a settings row is displayed and edited
type rowKind int

const (
	rowText rowKind = iota // free text or numeric entry via textinput
	rowBool                // toggled directly with enter
	rowEnum                // picked from a fixed option list
	rowPin                 // picked from the GPIO catalog
	rowWiFi                // picked from the scanned network catalog
	rowSave                // the save button
)

// settingsRow is one navigable line on the dashboard
type settingsRow struct {
	kind      rowKind
	path      string // schema field path (empty for the save button)
	label     string
	section   string // section header, printed when it changes
	subsystem session.Subsystem // pin target for rowPin
}

// buildRows lays out the dashboard in document order
func buildRows() []settingsRow {
	rows := []settingsRow{
		{kind: rowText, path: "device.owner", label: "Owner", section: "Device"},
		{kind: rowText, path: "device.timezone", label: "Timezone", section: "Device"},

		{kind: rowWiFi, path: "device.wifi.ssid", label: "Network", section: "WiFi"},
		{kind: rowText, path: "device.wifi.password", label: "Password", section: "WiFi"},

		{kind: rowBool, path: "mqtt.enabled", label: "Enabled", section: "MQTT"},
		{kind: rowText, path: "mqtt.server", label: "Server", section: "MQTT"},
		{kind: rowText, path: "mqtt.port", label: "Port", section: "MQTT"},
		{kind: rowText, path: "mqtt.username", label: "Username", section: "MQTT"},
		{kind: rowText, path: "mqtt.password", label: "Password", section: "MQTT"},

		{kind: rowBool, path: "unbiddenInk.enabled", label: "Enabled", section: "Unbidden Ink"},
		{kind: rowText, path: "unbiddenInk.startHour", label: "Start hour", section: "Unbidden Ink"},
		{kind: rowText, path: "unbiddenInk.endHour", label: "End hour", section: "Unbidden Ink"},
		{kind: rowText, path: "unbiddenInk.frequencyMinutes", label: "Frequency (min)", section: "Unbidden Ink"},
		{kind: rowText, path: "unbiddenInk.prompt", label: "Prompt", section: "Unbidden Ink"},
		{kind: rowText, path: "unbiddenInk.chatgptApiToken", label: "API token", section: "Unbidden Ink"},

		{kind: rowPin, path: "device.printerTxPin", label: "Printer TX pin", section: "Hardware", subsystem: session.SubsystemPrinterTX},
		{kind: rowPin, path: "device.printerRxPin", label: "Printer RX pin", section: "Hardware", subsystem: session.SubsystemPrinterRX},
		{kind: rowPin, path: "device.printerDtrPin", label: "Printer DTR pin", section: "Hardware", subsystem: session.SubsystemPrinterDTR},
	}

	buttonSubsystems := []session.Subsystem{
		session.SubsystemButton1,
		session.SubsystemButton2,
		session.SubsystemButton3,
		session.SubsystemButton4,
	}
	for i, sub := range buttonSubsystems {
		n := i + 1
		section := fmt.Sprintf("Button %d", n)
		prefix := fmt.Sprintf("buttons.button%d.", n)
		rows = append(rows,
			settingsRow{kind: rowPin, path: prefix + "gpio", label: "GPIO", section: section, subsystem: sub},
			settingsRow{kind: rowEnum, path: prefix + "shortAction", label: "Short press", section: section},
			settingsRow{kind: rowEnum, path: prefix + "longAction", label: "Long press", section: section},
		)
	}

	rows = append(rows,
		settingsRow{kind: rowPin, path: "leds.pin", label: "Strip pin", section: "LED Strip", subsystem: session.SubsystemLedStrip},
		settingsRow{kind: rowText, path: "leds.count", label: "LED count", section: "LED Strip"},
		settingsRow{kind: rowText, path: "leds.brightness", label: "Brightness", section: "LED Strip"},
		settingsRow{kind: rowText, path: "leds.refreshRate", label: "Refresh rate", section: "LED Strip"},
	)

	for n := 1; n <= schema.MemoCount; n++ {
		rows = append(rows, settingsRow{
			kind:    rowText,
			path:    fmt.Sprintf("memos.memo%d", n),
			label:   fmt.Sprintf("Memo %d", n),
			section: "Memos",
		})
	}

	rows = append(rows, settingsRow{kind: rowSave, label: "Save to printer", section: "Actions"})
	return rows
}

// dashboardKeyMap defines key bindings for the dashboard screen
type dashboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Tab   key.Binding
	Enter key.Binding
	Back  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Back, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Enter},
		{k.Back, k.Help, k.Quit},
	}
}

// editorKeyMap defines key bindings while a field is being edited
type editorKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

// DashboardModel is the unified settings screen combining view + edit
type DashboardModel struct {
	// Printer connection
	PrinterName string
	Sess        *session.Session

	// Row layout
	Rows   []settingsRow
	Cursor int

	// Inline editing state
	Editing      bool
	EditRow      int
	Input        textinput.Model // for rowText
	Options      []string        // for rowEnum/rowPin/rowWiFi (raw values)
	OptionLabels []string        // display labels matching Options
	OptionCursor int

	// WiFi manual entry sub-state
	ManualSSID bool

	// Async operation state
	Saving       bool
	Scanning     bool
	SaveErr      error
	LastSaved    time.Time
	SaveDuration time.Duration

	// Validation feedback, refreshed after edits and failed saves
	FieldErrors session.Errors

	// WiFi safety check before save
	ShowingWiFiWarning bool
	initialSSID        string

	// Modal state
	ShowingHelp bool
	Spinner     spinner.Model

	// Navigation results
	BackRequested bool

	// UI state
	Width  int
	Height int
	Help   help.Model
	Keys   dashboardKeyMap
	EdKeys editorKeyMap
}

// NewDashboardModel creates a dashboard bound to a loaded session
func NewDashboardModel(printerName string, sess *session.Session) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	input := textinput.New()
	input.CharLimit = 512
	input.Width = 50

	h := help.New()

	keys := dashboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	edKeys := editorKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}

	initialSSID := ""
	if sess.Loaded() {
		initialSSID = sess.Working().Device.WiFi.SSID
	}

	return DashboardModel{
		PrinterName: printerName,
		Sess:        sess,
		Rows:        buildRows(),
		Cursor:      0,
		EditRow:     -1,
		Input:       input,
		Spinner:     s,
		initialSSID: initialSSID,
		Help:        h,
		Keys:        keys,
		EdKeys:      edKeys,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case saveCompleteMsg:
		m.Saving = false
		m.SaveErr = msg.err
		m.SaveDuration = msg.duration
		if msg.err == nil {
			m.LastSaved = time.Now()
			m.FieldErrors = nil
		} else if vErr, ok := msg.err.(*session.ValidationFailedError); ok {
			m.FieldErrors = vErr.Errors
		}
		return m, nil

	case wifiScanCompleteMsg:
		m.Scanning = false
		if msg.err == nil && m.Editing && m.Rows[m.EditRow].kind == rowWiFi {
			// Rebuild the option list from the fresh catalog
			m.Options, m.OptionLabels = m.wifiOptions()
			m.OptionCursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		if m.Saving || m.Scanning {
			return m, cmd
		}
		return m, nil
	}

	if m.ShowingHelp {
		return m.updateHelpModal(msg)
	}
	if m.ShowingWiFiWarning {
		return m.updateWiFiWarning(msg)
	}
	if m.Saving || m.Scanning {
		// Ignore input while an operation is in flight
		return m, nil
	}
	if m.Editing {
		return m.updateEditor(msg)
	}
	return m.updateNormalMode(msg)
}

// updateNormalMode handles input when no field is being edited
func (m DashboardModel) updateNormalMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		m.BackRequested = true
		return m, nil

	case "up", "k":
		m.Cursor--
		if m.Cursor < 0 {
			m.Cursor = len(m.Rows) - 1
		}

	case "down", "j":
		m.Cursor++
		if m.Cursor >= len(m.Rows) {
			m.Cursor = 0
		}

	case "tab":
		// Jump to the start of the next section
		current := m.Rows[m.Cursor].section
		for i := m.Cursor + 1; i < len(m.Rows); i++ {
			if m.Rows[i].section != current {
				m.Cursor = i
				return m, nil
			}
		}
		m.Cursor = 0

	case "enter", " ":
		return m.startEditing()

	case "?":
		m.ShowingHelp = true
	}

	return m, nil
}

// startEditing opens the appropriate editor for the focused row
func (m DashboardModel) startEditing() (tea.Model, tea.Cmd) {
	row := m.Rows[m.Cursor]

	switch row.kind {
	case rowSave:
		return m.startSave()

	case rowBool:
		// Toggle in place, no editor needed
		if v, err := m.Sess.Get(row.path); err == nil {
			if b, ok := v.(bool); ok {
				_ = m.Sess.SetValue(row.path, !b)
				m.FieldErrors = m.Sess.Validate()
			}
		}
		return m, nil

	case rowText:
		m.Editing = true
		m.EditRow = m.Cursor
		m.Input.SetValue("")
		m.Input.Placeholder = ""
		m.Input.EchoMode = textinput.EchoNormal
		def := schema.Lookup(row.path)
		if def != nil && def.Kind == schema.KindSecret {
			m.Input.EchoMode = textinput.EchoPassword
			m.Input.EchoCharacter = '•'
			m.Input.Placeholder = "leave empty to keep current"
		} else {
			m.Input.SetValue(m.displayValue(row))
		}
		m.Input.Focus()
		return m, nil

	case rowEnum:
		def := schema.Lookup(row.path)
		if def == nil {
			return m, nil
		}
		m.Editing = true
		m.EditRow = m.Cursor
		m.Options = append([]string(nil), def.Enum...)
		m.OptionLabels = make([]string, len(m.Options))
		current := m.displayValue(row)
		m.OptionCursor = 0
		for i, opt := range m.Options {
			if opt == "" {
				m.OptionLabels[i] = "(none)"
			} else {
				m.OptionLabels[i] = opt
			}
			if opt == current {
				m.OptionCursor = i
			}
		}
		return m, nil

	case rowPin:
		opts := m.Sess.PinOptionsFor(row.subsystem)
		m.Editing = true
		m.EditRow = m.Cursor
		m.Options = make([]string, len(opts))
		m.OptionLabels = make([]string, len(opts))
		current := m.displayValue(row)
		m.OptionCursor = 0
		for i, opt := range opts {
			m.Options[i] = fmt.Sprintf("%d", opt.Pin)
			m.OptionLabels[i] = pinOptionLabel(opt)
			if m.Options[i] == current {
				m.OptionCursor = i
			}
		}
		return m, nil

	case rowWiFi:
		m.Editing = true
		m.EditRow = m.Cursor
		m.ManualSSID = false
		m.Options, m.OptionLabels = m.wifiOptions()
		m.OptionCursor = 0
		current := m.Sess.Scan().EffectiveSSID()
		for i, opt := range m.Options {
			if opt == current {
				m.OptionCursor = i
			}
		}
		return m, nil
	}

	return m, nil
}

// pinOptionLabel formats one GPIO choice for the selector
func pinOptionLabel(opt session.PinOption) string {
	if opt.Pin == schema.PinUnassigned {
		return "Unassigned"
	}
	label := fmt.Sprintf("GPIO %d", opt.Pin)
	if opt.Description != "" {
		label += " " + opt.Description
	}
	if opt.InUse {
		label += fmt.Sprintf(" [in use: %s]", opt.AssignedTo)
	} else if !opt.IsSafe {
		label += " [not recommended]"
	}
	return label
}

// wifiOptions builds the selector entries from the scan coordinator
func (m DashboardModel) wifiOptions() ([]string, []string) {
	coord := m.Sess.Scan()

	var values []string
	var labels []string

	values = append(values, session.ManualEntryOption)
	labels = append(labels, "Enter SSID manually...")

	values = append(values, session.RescanOption)
	if coord.State() == session.ScanScanned {
		labels = append(labels, "Rescan networks...")
	} else {
		labels = append(labels, "Scan for networks...")
	}

	for _, nw := range coord.Catalog() {
		values = append(values, nw.SSID)
		security := "open"
		if nw.Secure {
			security = nw.Encryption
			if security == "" {
				security = "secured"
			}
		}
		labels = append(labels, fmt.Sprintf("%s (%s, %s)", nw.SSID, deviceapi.SignalLabel(nw.RSSI), security))
	}

	return values, labels
}

// updateEditor handles input while a field editor is open
func (m DashboardModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	row := m.Rows[m.EditRow]

	// Manual SSID entry reuses the text input inside the WiFi editor
	if row.kind == rowWiFi && m.ManualSSID {
		switch keyMsg.String() {
		case "esc":
			m.ManualSSID = false
			m.Input.Blur()
			return m, nil
		case "enter":
			m.Sess.Scan().SetManualSSID(m.Input.Value())
			m.Input.Blur()
			return m.closeEditor(), nil
		}
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(keyMsg)
		return m, cmd
	}

	switch row.kind {
	case rowText:
		switch keyMsg.String() {
		case "esc":
			m.Input.Blur()
			return m.closeEditor(), nil
		case "enter":
			value := m.Input.Value()
			def := schema.Lookup(row.path)
			if def != nil && def.Kind == schema.KindSecret && value == "" {
				// Empty secret entry means "keep the stored one"
				m.Input.Blur()
				return m.closeEditor(), nil
			}
			if err := m.Sess.Set(row.path, value); err != nil {
				if m.FieldErrors == nil {
					m.FieldErrors = session.Errors{}
				}
				m.FieldErrors[row.path] = err.Error()
				return m, nil
			}
			m.FieldErrors = m.Sess.Validate()
			m.Input.Blur()
			return m.closeEditor(), nil
		}
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(keyMsg)
		return m, cmd

	case rowEnum, rowPin, rowWiFi:
		switch keyMsg.String() {
		case "esc":
			return m.closeEditor(), nil

		case "up", "k":
			m.OptionCursor--
			if m.OptionCursor < 0 {
				m.OptionCursor = len(m.Options) - 1
			}

		case "down", "j":
			m.OptionCursor++
			if m.OptionCursor >= len(m.Options) {
				m.OptionCursor = 0
			}

		case "enter", " ":
			return m.commitOption(row)
		}
	}

	return m, nil
}

// commitOption applies the highlighted option for selector editors
func (m DashboardModel) commitOption(row settingsRow) (tea.Model, tea.Cmd) {
	if len(m.Options) == 0 {
		return m.closeEditor(), nil
	}
	choice := m.Options[m.OptionCursor]

	switch row.kind {
	case rowEnum:
		if err := m.Sess.Set(row.path, choice); err == nil {
			m.FieldErrors = m.Sess.Validate()
		}
		return m.closeEditor(), nil

	case rowPin:
		if err := m.Sess.Set(row.path, choice); err == nil {
			m.FieldErrors = m.Sess.Validate()
		}
		return m.closeEditor(), nil

	case rowWiFi:
		switch choice {
		case session.RescanOption:
			m.Scanning = true
			coord := m.Sess.Scan()
			return m, tea.Batch(
				m.Spinner.Tick,
				func() tea.Msg { return wifiScanCompleteMsg{err: coord.Scan()} },
			)
		case session.ManualEntryOption:
			m.ManualSSID = true
			m.Input.SetValue("")
			m.Input.EchoMode = textinput.EchoNormal
			m.Input.Placeholder = "network name"
			m.Input.Focus()
			return m, nil
		default:
			_ = m.Sess.Scan().Select(choice)
			m.FieldErrors = m.Sess.Validate()
			return m.closeEditor(), nil
		}
	}

	return m.closeEditor(), nil
}

// closeEditor returns to normal navigation mode
func (m DashboardModel) closeEditor() DashboardModel {
	m.Editing = false
	m.EditRow = -1
	m.ManualSSID = false
	m.Options = nil
	m.OptionLabels = nil
	return m
}

// startSave begins the save flow, with a WiFi safety check first
func (m DashboardModel) startSave() (tea.Model, tea.Cmd) {
	if !m.Sess.HasUnsavedChanges() {
		m.SaveErr = nil
		return m, nil
	}

	if m.wifiChanged() {
		m.ShowingWiFiWarning = true
		return m, nil
	}

	return m.doSave()
}

// wifiChanged reports whether the pending save touches WiFi credentials
func (m DashboardModel) wifiChanged() bool {
	if m.Sess.Secrets().IsTouched("device.wifi.password") {
		return true
	}
	return m.Sess.Working().Device.WiFi.SSID != m.initialSSID
}

// doSave dispatches the actual save command
func (m DashboardModel) doSave() (tea.Model, tea.Cmd) {
	m.Saving = true
	m.SaveErr = nil
	sess := m.Sess
	start := time.Now()
	return m, tea.Batch(
		m.Spinner.Tick,
		func() tea.Msg {
			err := sess.Save()
			return saveCompleteMsg{err: err, duration: time.Since(start)}
		},
	)
}

// updateWiFiWarning handles the WiFi change confirmation panel
func (m DashboardModel) updateWiFiWarning(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.ShowingWiFiWarning = false
		return m.doSave()
	case "n", "N", "esc", "q":
		m.ShowingWiFiWarning = false
	}
	return m, nil
}

// updateHelpModal handles input while the help overlay is open
func (m DashboardModel) updateHelpModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "?", "q", "enter":
			m.ShowingHelp = false
		}
	}
	return m, nil
}

// IsBackRequested reports whether the user asked to return to discovery
func (m DashboardModel) IsBackRequested() bool {
	return m.BackRequested
}

// displayValue formats the current value of a row for display
func (m DashboardModel) displayValue(row settingsRow) string {
	if row.path == "" {
		return ""
	}

	if row.kind == rowWiFi {
		return m.Sess.Scan().EffectiveSSID()
	}

	v, err := m.Sess.Get(row.path)
	if err != nil {
		return ""
	}

	def := schema.Lookup(row.path)
	switch val := v.(type) {
	case bool:
		if val {
			return "Enabled"
		}
		return "Disabled"
	case int:
		if def != nil && def.Kind == schema.KindPin && val == schema.PinUnassigned {
			return "Unassigned"
		}
		return fmt.Sprintf("%d", val)
	case string:
		if def != nil && def.Kind == schema.KindSecret {
			if val == "" {
				return "(not set)"
			}
			if deviceapi.IsMaskedValue(val) {
				return val
			}
			return deviceapi.MaskSecret(val)
		}
		if val == "" && def != nil && def.Kind == schema.KindEnum {
			return "(none)"
		}
		return val
	default:
		return fmt.Sprintf("%v", v)
	}
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.ShowingHelp {
		return RenderModal("", m.renderHelpContent(), m.Width, m.Height)
	}

	content := m.renderContent()

	var helpText string
	if m.Editing {
		helpText = m.Help.View(m.EdKeys)
	} else {
		helpText = m.Help.View(m.Keys)
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderContent builds the scrollable settings list with status panels
func (m DashboardModel) renderContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Settings: " + m.PrinterName))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")

	if m.ShowingWiFiWarning {
		b.WriteString(m.renderWiFiWarningPanel())
		b.WriteString("\n")
		return b.String()
	}

	if m.Saving {
		b.WriteString(fmt.Sprintf("\n  %s Saving settings to printer...\n", m.Spinner.View()))
		return b.String()
	}

	b.WriteString(m.renderRows())

	if m.SaveErr != nil {
		b.WriteString("\n")
		b.WriteString(ErrorBoxStyle.Render(fmt.Sprintf("Save failed: %v", m.SaveErr)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderStatusLine shows the unsaved-changes indicator
func (m DashboardModel) renderStatusLine() string {
	if m.Sess.HasUnsavedChanges() {
		return lipgloss.NewStyle().Foreground(WarningColor).Render("  ● Unsaved changes")
	}
	if !m.LastSaved.IsZero() {
		elapsed := time.Since(m.LastSaved).Round(time.Second)
		return SuccessBoxStyle.Render(fmt.Sprintf("  ✓ Saved %s ago (%s)", elapsed, m.SaveDuration.Round(time.Millisecond)))
	}
	return SubtitleStyle.Render("  No pending changes")
}

// renderRows renders every settings row, expanding the one being edited
func (m DashboardModel) renderRows() string {
	var b strings.Builder

	lastSection := ""
	for i, row := range m.Rows {
		if row.section != lastSection {
			lastSection = row.section
			b.WriteString(SectionHeaderStyle.Render("  " + row.section))
			b.WriteString("\n")
		}

		if m.Editing && i == m.EditRow {
			b.WriteString(m.renderEditor(row))
			b.WriteString("\n")
			continue
		}

		b.WriteString(m.renderRow(row, i == m.Cursor))
		b.WriteString("\n")
	}

	return b.String()
}

// renderRow renders one collapsed settings row
func (m DashboardModel) renderRow(row settingsRow, focused bool) string {
	if row.kind == rowSave {
		label := "[ " + row.label + " ]"
		if focused {
			return SelectedMenuItemStyle.Render("  → " + label)
		}
		return MenuItemStyle.Render("  " + label)
	}

	line := fmt.Sprintf("%-18s %s", row.label+":", m.displayValue(row))
	if focused {
		line = SelectedMenuItemStyle.Render("→ " + line)
	} else {
		line = MenuItemStyle.Render("  " + line)
	}

	if msg, ok := m.FieldErrors[row.path]; ok {
		line += FieldErrorStyle.Render("  ✗ " + msg)
	}

	return line
}

// renderEditor renders the expanded inline editor for the focused row
func (m DashboardModel) renderEditor(row settingsRow) string {
	var inner strings.Builder

	switch {
	case row.kind == rowText, row.kind == rowWiFi && m.ManualSSID:
		inner.WriteString(row.label + ": ")
		inner.WriteString(m.Input.View())

	case row.kind == rowWiFi && m.Scanning:
		inner.WriteString(fmt.Sprintf("%s Scanning for networks...", m.Spinner.View()))

	default:
		inner.WriteString(row.label + ":\n")
		for i, label := range m.OptionLabels {
			if i == m.OptionCursor {
				inner.WriteString(SelectedListItemStyle.Render("→ " + label))
			} else {
				inner.WriteString(ListItemStyle.Render(label))
			}
			if i < len(m.OptionLabels)-1 {
				inner.WriteString("\n")
			}
		}
	}

	return InlineEditorStyle().Render(inner.String())
}

// renderWiFiWarningPanel renders the pre-save WiFi credential warning
func (m DashboardModel) renderWiFiWarningPanel() string {
	var b strings.Builder

	b.WriteString("⚠ WiFi credentials are about to change\n\n")
	b.WriteString(fmt.Sprintf("The printer will reconnect using network %q.\n", m.Sess.Working().Device.WiFi.SSID))
	b.WriteString("If the credentials are wrong the printer drops off this network\n")
	b.WriteString("and must be recovered over its setup access point.\n\n")
	b.WriteString("Save anyway?  (y)es / (n)o")

	return WarningBoxStyle.Render(b.String())
}

// renderHelpContent renders the help modal body
func (m DashboardModel) renderHelpContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Keyboard Reference"))
	b.WriteString("\n")
	b.WriteString("  ↑/k, ↓/j    Move between fields\n")
	b.WriteString("  tab         Jump to next section\n")
	b.WriteString("  enter       Edit field / toggle / press button\n")
	b.WriteString("  esc         Cancel edit, or return to discovery\n")
	b.WriteString("  ?           Toggle this help\n")
	b.WriteString("  q           Quit\n\n")
	b.WriteString(SubtitleStyle.Render("Secrets show as masked values; entering a new one replaces\nthe stored secret, leaving the editor empty keeps it."))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("Press esc to close"))

	return InfoBoxStyle.Render(b.String())
}
