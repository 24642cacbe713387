package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/scribeworks/scribe-cfg/internal/version"
)

// Application branding constants
const (
	AppName       = "SCRIBE SETTINGS CONSOLE"
	GitHubURL     = "github.com/scribeworks/scribe-cfg"
	GitHubFullURL = "https://github.com/scribeworks/scribe-cfg"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth  = 72  // Minimum supported terminal width
	MaxContentWidth   = 120 // Maximum content width before capping
	DefaultBoxPadding = 2   // Default padding inside boxes
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#FF8B94") // Pink
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	// Neutral colors
	TextColor       = lipgloss.Color("#FFFFFF") // White
	SubtleColor     = lipgloss.Color("#626262") // Gray
	BorderColor     = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor  = lipgloss.Color("#43BF6D") // Green (same as secondary)
	BackgroundColor = lipgloss.Color("#1A1A1A") // Dark gray
)

// Common styles
var (
	// Title style - large, bold, centered
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Menu item style (selected)
	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	// Section header style
	SectionHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				MarginTop(1)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor)

	// Field validation error style (inline, no border)
	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// Info box style
	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// List item style
	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// Selected list item style
	SelectedListItemStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(HighlightColor).
				Bold(true)

	// Focused input style
	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// Blurred input style
	BlurredInputStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	// Success box style (for result panels)
	SuccessBoxStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Error box style (for result panels)
	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	// Warning box style (for result panels)
	WarningBoxStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(1, 2)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render("  " + text)
}

// RenderHelp renders help text
func RenderHelp(text string) string {
	return HelpStyle.Render(text)
}

// RenderError renders an error message
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// RenderSuccess renders a success message
func RenderSuccess(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// RenderInfo renders an info box
func RenderInfo(text string) string {
	return InfoBoxStyle.Render(text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
// Returns a string formatted for use in the application container
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	// Join with space in between
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// BuildFooterContent creates footer content with help text
// Returns a styled string for use in the application container
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer is the wrapper for all screens in the application.
// It provides:
// - Consistent full-screen panel using terminal width/height
// - Application header (name, version, GitHub URL)
// - Context-sensitive footer (help text)
// - Bordered outer container
//
// Every screen should use this function. Pattern:
//
//	func (m Model) View() string {
//	    content := m.buildContent()
//	    helpText := "context-specific help..."
//	    return RenderApplicationContainer(content, helpText, m.Width, m.Height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	// Build header content
	header := BuildHeaderContent()

	// Build footer content
	footer := BuildFooterContent(footerText)

	// Create header section with bottom border
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	styledHeader := headerStyle.Render(header)

	// Create footer section with top border
	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	styledFooter := footerStyle.Render(footer)

	// Create content area. No padding here - callers control their own
	// content margins, so Width(terminalWidth-4) is the usable content width.
	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4) // Leave room for outer border

	styledContent := contentStyle.Render(content)

	// Combine header + content + footer vertically
	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styledHeader,
		styledContent,
		styledFooter,
	)

	// Create outer border container with full terminal height
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).   // Account for border width
		Height(terminalHeight - 2). // Full height for proper background
		AlignVertical(lipgloss.Top) // Align content to top, preventing footer expansion

	bordered := borderStyle.Render(innerContent)

	// Use lipgloss.Place to fill the full terminal and ensure proper positioning
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

// CalculateBoxWidth calculates the appropriate box width based on terminal width
// Uses full terminal width for maximum screen usage
func CalculateBoxWidth(terminalWidth int) int {
	if terminalWidth < MinTerminalWidth {
		return MinTerminalWidth
	}
	// Use full terminal width - no maximum cap for full-screen layout
	return terminalWidth
}

// SafePadding calculates safe padding that won't cause wrapping
// Returns 0 if width is too small for the requested padding
func SafePadding(width, requestedPadding int) int {
	if width < MinTerminalWidth {
		return 0
	}
	if requestedPadding*2 >= width {
		return 0
	}
	return requestedPadding
}

// SafeModalWidth calculates a safe modal width that respects terminal constraints
// Returns the minimum of requestedWidth and (terminalWidth - margin)
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	// Leave margin for borders and padding (4 chars: 2 for border, 2 for spacing)
	maxWidth := terminalWidth - 4

	// Ensure we don't go below minimum usable width
	if maxWidth < 40 {
		maxWidth = 40 // Absolute minimum for usability
	}

	// Return the smaller of requested width and max width
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}

// RenderModal renders a modal centered on screen, dimming the background
// with a whitespace overlay. Used for the help overlay, which benefits from
// covering the entire screen. Status feedback uses inline panels instead.
func RenderModal(background string, modalContent string, terminalWidth int, terminalHeight int) string {
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

// InlineEditorStyle returns styling for inline expanded editors
// Used when a settings field is being edited inline (not in a modal)
func InlineEditorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.Border{
			Top:    "━",
			Bottom: "━",
			Left:   "┃",
			Right:  "┃",
		}).
		BorderForeground(PrimaryColor).
		Padding(0, 1)
}

// ExpandedFieldStyle returns styling for fields being edited inline
// Provides a subtle highlight to indicate the field is in edit mode
func ExpandedFieldStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Background(lipgloss.Color("236")) // Subtle dark gray highlight
}
