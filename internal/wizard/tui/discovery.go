package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scribeworks/scribe-cfg/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	printers []*discovery.Printer
	err      error
}

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

// manualModeKeyMap defines key bindings for manual IP entry mode
type manualModeKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (m manualModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (m manualModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Confirm, m.Cancel},
	}
}

// scanningKeyMap defines key bindings for scanning mode
type scanningKeyMap struct {
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (s scanningKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{s.Manual, s.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (s scanningKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{s.Manual, s.Quit},
	}
}

// emptyScreenKeyMap defines key bindings for empty results screen
type emptyScreenKeyMap struct {
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (e emptyScreenKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{e.Rescan, e.Manual, e.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (e emptyScreenKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{e.Rescan, e.Manual, e.Quit},
	}
}

// printerItem wraps a Printer for use with bubbles/list
type printerItem struct {
	printer *discovery.Printer
}

// Implement list.Item interface
func (p printerItem) FilterValue() string {
	// Filter by id, IP, or hostname
	return p.printer.ID + " " + p.printer.IP + " " + p.printer.Hostname
}

// Title returns the printer name for list display
func (p printerItem) Title() string {
	if p.printer.ID == "manual" {
		return fmt.Sprintf("Manual: %s", p.printer.IP)
	}
	return fmt.Sprintf("Scribe %s", p.printer.ID)
}

// Description returns printer details for list display
func (p printerItem) Description() string {
	firmware := "Unknown"
	if fw := p.printer.GetMetadata("version"); fw != "" {
		firmware = fw
	}
	return fmt.Sprintf("%s:%d • Firmware: %s • Ready", p.printer.IP, p.printer.Port, firmware)
}

// printerDelegate is a custom list delegate for rendering printer cards
type printerDelegate struct {
	width int
}

func (d printerDelegate) Height() int { return 8 } // Card height including borders

func (d printerDelegate) Spacing() int { return 1 } // Spacing between cards

func (d printerDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d printerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	printerItem, ok := item.(printerItem)
	if !ok {
		return
	}

	printer := printerItem.printer
	selected := index == m.Index()

	// Build printer name
	var printerName string
	if printer.ID == "manual" {
		printerName = fmt.Sprintf("Manual: %s", printer.IP)
	} else {
		printerName = fmt.Sprintf("Scribe %s", printer.ID)
	}

	// Get firmware version
	firmware := "Unknown"
	if fw := printer.GetMetadata("version"); fw != "" {
		firmware = fw
	}

	// Build content lines
	var content strings.Builder

	// Add selection indicator to printer name
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + printerName))
	} else {
		content.WriteString("  " + printerName)
	}
	content.WriteString("\n\n")

	// Printer details
	content.WriteString(fmt.Sprintf("  Hostname: %s\n", printer.Hostname))
	content.WriteString(fmt.Sprintf("  IP:       %s:%d\n", printer.IP, printer.Port))
	content.WriteString(fmt.Sprintf("  Firmware: %s\n", firmware))

	// Status with inline color styling (no border)
	statusStyle := lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	content.WriteString(fmt.Sprintf("  Status:   %s", statusStyle.Render("Ready")))

	// Create responsive card style
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2).
		MarginLeft(2)

	// Calculate card width (leave room for margins and borders)
	cardWidth := d.width - 6 // 2 for margin-left, 4 for border + padding
	if cardWidth < MinTerminalWidth-6 {
		cardWidth = MinTerminalWidth - 6
	}
	if cardWidth > MaxContentWidth-6 {
		cardWidth = MaxContentWidth - 6
	}

	cardStyle = cardStyle.Width(cardWidth)

	// Highlight selected card
	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// DiscoveryModel represents the printer discovery screen state
type DiscoveryModel struct {
	// Discovery state
	Scanning    bool
	PrinterList list.Model
	Selected    bool
	Err         error

	// Manual IP entry state
	ManualMode bool
	IPInput    textinput.Model

	// UI state
	Width         int
	Height        int
	Spinner       spinner.Model
	ProgressBar   progress.Model
	ScanStartTime time.Time
	Help          help.Model
	Keys          discoveryKeyMap
	ManualKeys    manualModeKeyMap
	ScanningKeys  scanningKeyMap
	EmptyKeys     emptyScreenKeyMap
}

// NewDiscoveryModel creates a new discovery screen model
func NewDiscoveryModel() DiscoveryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	// Initialize IP input
	ipInput := textinput.New()
	ipInput.Placeholder = "192.168.4.1"
	ipInput.CharLimit = 15 // Max length for IPv4 address
	ipInput.Width = 30

	// Initialize progress bar
	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	// Initialize printer list with custom delegate
	delegate := printerDelegate{width: MinTerminalWidth}
	printerList := list.New([]list.Item{}, delegate, 0, 0)
	printerList.Title = "Discovered Printers"
	printerList.SetShowStatusBar(false)
	printerList.SetFilteringEnabled(true)
	printerList.Styles.Title = TitleStyle

	// Initialize help
	h := help.New()

	// Initialize key bindings for normal mode
	keys := discoveryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "configure"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual IP"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	// Initialize key bindings for manual entry mode
	manualKeys := manualModeKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}

	// Initialize key bindings for scanning mode
	scanningKeys := scanningKeyMap{
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual IP"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	// Initialize key bindings for empty results
	emptyKeys := emptyScreenKeyMap{
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual IP"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	return DiscoveryModel{
		Scanning:     false,
		PrinterList:  printerList,
		Selected:     false,
		ManualMode:   false,
		IPInput:      ipInput,
		Spinner:      s,
		ProgressBar:  progressBar,
		Help:         h,
		Keys:         keys,
		ManualKeys:   manualKeys,
		ScanningKeys: scanningKeys,
		EmptyKeys:    emptyKeys,
	}
}

// Init initializes the discovery model
func (m DiscoveryModel) Init() tea.Cmd {
	// Start scanning immediately - send start message then begin scan
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		scanPrinters,
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Update list size
		m.PrinterList.SetWidth(msg.Width - 4)
		m.PrinterList.SetHeight(msg.Height - 10) // Leave room for header/footer

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		// Convert printers to list items
		items := make([]list.Item, len(msg.printers))
		for i, p := range msg.printers {
			items[i] = printerItem{printer: p}
		}
		m.PrinterList.SetItems(items)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Update list if not in manual mode or scanning
	if !m.ManualMode && !m.Scanning {
		m.PrinterList, cmd = m.PrinterList.Update(msg)
	}

	return m, cmd
}

// updateNormalMode handles keyboard input in normal printer list mode
func (m DiscoveryModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter", " ":
		// Get selected printer from list
		if selectedItem := m.PrinterList.SelectedItem(); selectedItem != nil {
			m.Selected = true
			return m, nil
		}

	case "r":
		// Rescan
		m.PrinterList.SetItems([]list.Item{})
		m.Err = nil
		return m, tea.Batch(
			func() tea.Msg { return scanStartMsg{} },
			scanPrinters,
			m.Spinner.Tick,
		)

	case "m":
		// Switch to manual IP entry mode
		m.ManualMode = true
		m.IPInput.SetValue("")
		m.IPInput.Focus()
	}

	// Let the list handle up/down navigation
	return m, nil
}

// updateManualMode handles keyboard input in manual IP entry mode
func (m DiscoveryModel) updateManualMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		// Cancel manual entry
		m.ManualMode = false
		m.IPInput.SetValue("")
		m.IPInput.Blur()
		return m, nil

	case "enter":
		value := m.IPInput.Value()
		if value != "" {
			// Create printer from manual IP
			printer := &discovery.Printer{
				ID:           "manual",
				Hostname:     value,
				IP:           value,
				Port:         discovery.DefaultPort,
				DiscoveredAt: time.Now(),
			}
			// Add to list
			newItem := printerItem{printer: printer}
			items := append([]list.Item{newItem}, m.PrinterList.Items()...)
			m.PrinterList.SetItems(items)
			m.PrinterList.Select(0) // Select the newly added item
			m.ManualMode = false
			m.IPInput.SetValue("")
			m.IPInput.Blur()
			return m, nil
		}
	}

	// Update the text input
	m.IPInput, cmd = m.IPInput.Update(msg)
	return m, cmd
}

// View renders the discovery screen
func (m DiscoveryModel) View() string {
	// Use default width if not set
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	// Build main content area
	var content string
	if m.ManualMode {
		content = m.renderManualEntry()
	} else if m.Scanning {
		content = m.renderScanning(width)
	} else {
		content = m.renderPrinterResults()
	}

	// Determine context-sensitive help text using bubbles/help
	var helpText string
	if m.ManualMode {
		helpText = m.Help.View(m.ManualKeys)
	} else if m.Scanning {
		helpText = m.Help.View(m.ScanningKeys)
	} else if len(m.PrinterList.Items()) > 0 {
		helpText = m.Help.View(m.Keys)
	} else {
		helpText = m.Help.View(m.EmptyKeys)
	}

	// Wrap with application container (full-screen layout with height)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderScanning renders a prominent, centered scanning progress display
func (m DiscoveryModel) renderScanning(width int) string {
	elapsed := time.Since(m.ScanStartTime)
	elapsedSec := int(elapsed.Seconds())

	// Estimate progress against the 10 second scan timeout
	progressPercent := elapsedSec * 100 / 10
	if progressPercent > 100 {
		progressPercent = 100
	}
	progressFloat := float64(progressPercent) / 100.0

	// Build content components
	title := fmt.Sprintf("%s SEARCHING FOR PRINTERS", m.Spinner.View())
	subtitle := "Scanning your network for Scribe printers..."

	// Use bubbles/progress component (ViewAs already includes percentage display)
	progressBar := m.ProgressBar.ViewAs(progressFloat)
	elapsedText := fmt.Sprintf("Elapsed: %ds", elapsedSec)

	// Use lipgloss.JoinVertical for layout composition
	content := lipgloss.JoinVertical(lipgloss.Center,
		"", // Top spacing
		TitleStyle.Render(title),
		"",
		SubtitleStyle.Render(subtitle),
		"",
		progressBar,
		"",
		SubtitleStyle.Render(elapsedText),
		"", // Bottom spacing
	)

	// Use lipgloss.Place for centering. Height = 0 means "no vertical
	// constraint" - let content determine height.
	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderPrinterResults renders the printer list or "no printers found" message
func (m DiscoveryModel) renderPrinterResults() string {
	var b strings.Builder

	b.WriteString("\n")

	if m.Err != nil {
		// Error state
		b.WriteString(RenderError(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n\n")

		// Troubleshooting hints
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the printer is powered on\n")
		b.WriteString("    • Check the printer is connected to this network\n")
		b.WriteString("    • Verify your firewall allows mDNS (UDP 5353)\n")
		b.WriteString("    • Use 'm' to enter the printer's IP directly\n")

	} else if len(m.PrinterList.Items()) == 0 {
		// No printers found
		b.WriteString("  ")
		warningStyle := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
		b.WriteString(warningStyle.Render("⚠ No printers found on your network"))
		b.WriteString("\n\n")

		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the printer is powered on\n")
		b.WriteString("    • Check the printer is connected to this network\n")
		b.WriteString("    • Verify your firewall allows mDNS (UDP 5353)\n")
		b.WriteString("    • Use 'r' to rescan or 'm' to enter an IP directly\n")
		b.WriteString("\n")

	} else {
		// Printers found - render the list
		b.WriteString(m.PrinterList.View())
	}

	return b.String()
}

// renderManualEntry renders the manual IP entry dialog
func (m DiscoveryModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle("Enter printer IP address"))
	b.WriteString("\n\n")

	// Input box using textinput component
	b.WriteString("  IP Address: ")
	b.WriteString(m.IPInput.View())
	b.WriteString("\n\n")

	return b.String()
}

// GetSelectedPrinter returns the selected printer (if any)
func (m DiscoveryModel) GetSelectedPrinter() *discovery.Printer {
	if m.Selected {
		if selectedItem := m.PrinterList.SelectedItem(); selectedItem != nil {
			if item, ok := selectedItem.(printerItem); ok {
				return item.printer
			}
		}
	}
	return nil
}

// scanPrinters is a command that performs printer discovery
func scanPrinters() tea.Msg {
	scanner := discovery.NewScanner()
	scanner.Timeout = 10 * time.Second

	printers, err := scanner.ScanForPrinters()
	return scanCompleteMsg{
		printers: printers,
		err:      err,
	}
}
