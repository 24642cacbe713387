package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/discovery"
	"github.com/scribeworks/scribe-cfg/internal/session"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDiscovery Screen = "discovery"
	ScreenDashboard Screen = "dashboard"
)

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen Screen

	// Screen models
	DiscoveryModel DiscoveryModel
	DashboardModel DashboardModel

	// Shared application state
	SelectedPrinter *discovery.Printer
	LastError       error

	// UI state
	Width  int
	Height int
}

// NewAppModel creates a new application model starting at the specified screen.
// When a printer is already known (picked on the command line), discovery is
// skipped and the dashboard opens directly.
func NewAppModel(startScreen Screen, printer *discovery.Printer) AppModel {
	model := AppModel{
		CurrentScreen:   startScreen,
		SelectedPrinter: printer,
	}

	switch startScreen {
	case ScreenDiscovery:
		model.DiscoveryModel = NewDiscoveryModel()
	case ScreenDashboard:
		if printer != nil {
			if dash, err := openDashboard(printer); err == nil {
				model.DashboardModel = dash
			} else {
				model.LastError = err
				model.CurrentScreen = ScreenDiscovery
				model.DiscoveryModel = NewDiscoveryModel()
			}
		}
	}

	return model
}

// openDashboard connects to the printer, loads its settings, and builds the
// dashboard model bound to the resulting session.
func openDashboard(printer *discovery.Printer) (DashboardModel, error) {
	client := deviceapi.NewClient(printer.IP, printer.Port)
	sess := session.New(client, session.NopNotifier{})
	if err := sess.Load(); err != nil {
		return DashboardModel{}, fmt.Errorf("failed to load settings from %s: %w", printer.IP, err)
	}

	name := printer.Hostname
	if name == "" {
		name = printer.IP
	}
	return NewDashboardModel(name, sess), nil
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.Init()
	case ScreenDashboard:
		return m.DashboardModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.DiscoveryModel.Width = msg.Width
		m.DiscoveryModel.Height = msg.Height
		m.DashboardModel.Width = msg.Width
		m.DashboardModel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenDiscovery:
		updated, c := m.DiscoveryModel.Update(msg)
		m.DiscoveryModel = updated.(DiscoveryModel)
		cmd = c

		// Check if user selected a printer
		if m.DiscoveryModel.Selected {
			m.SelectedPrinter = m.DiscoveryModel.GetSelectedPrinter()
			if m.SelectedPrinter != nil {
				return m.transitionToDashboard()
			}
		}

		// Check for quit (normal mode only, not during scan)
		if !m.DiscoveryModel.Scanning && !m.DiscoveryModel.ManualMode {
			if keyMsg, ok := msg.(tea.KeyMsg); ok {
				if keyMsg.String() == "q" || keyMsg.String() == "esc" {
					return m, tea.Quit
				}
			}
		}

	case ScreenDashboard:
		updated, c := m.DashboardModel.Update(msg)
		m.DashboardModel = updated.(DashboardModel)
		cmd = c

		// Check if user wants to go back to discovery
		if m.DashboardModel.IsBackRequested() {
			m.CurrentScreen = ScreenDiscovery
			m.DiscoveryModel = NewDiscoveryModel()
			m.DiscoveryModel.Width = m.Width
			m.DiscoveryModel.Height = m.Height
			return m, m.DiscoveryModel.Init()
		}
	}

	return m, cmd
}

// transitionToDashboard loads settings from the selected printer and switches
// screens. On load failure the discovery screen stays up with the error shown.
func (m AppModel) transitionToDashboard() (tea.Model, tea.Cmd) {
	dash, err := openDashboard(m.SelectedPrinter)
	if err != nil {
		m.LastError = err
		m.DiscoveryModel.Selected = false
		m.DiscoveryModel.Err = err
		return m, nil
	}

	m.LastError = nil
	m.CurrentScreen = ScreenDashboard
	m.DashboardModel = dash
	m.DashboardModel.Width = m.Width
	m.DashboardModel.Height = m.Height
	return m, m.DashboardModel.Init()
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.View()
	case ScreenDashboard:
		return m.DashboardModel.View()
	default:
		return "Unknown screen"
	}
}

// Run starts the interactive console, beginning at discovery or directly on a
// known printer's dashboard.
func Run(printer *discovery.Printer) error {
	start := ScreenDiscovery
	if printer != nil {
		start = ScreenDashboard
	}

	model := NewAppModel(start, printer)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
