package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DeviceOutput represents a box for displaying a raw device response.
// Used in verbose mode to show the JSON the printer actually returned.
type DeviceOutput struct {
	Title    string   // e.g., "Device Response"
	Content  string   // The raw response body
	Lines    []string // Parsed output lines (for filtering)
	Width    int      // Terminal width
	MaxLines int      // Maximum lines to display (0 = unlimited)
}

// NewDeviceOutput creates a new device response box
func NewDeviceOutput(content string) *DeviceOutput {
	return &DeviceOutput{
		Title:    "Device Response",
		Content:  content,
		Lines:    strings.Split(content, "\n"),
		Width:    GetTerminalWidth(),
		MaxLines: 0,
	}
}

// SetWidth sets the terminal width for responsive rendering
func (d *DeviceOutput) SetWidth(width int) *DeviceOutput {
	d.Width = width
	return d
}

// SetTitle sets a custom title for the box
func (d *DeviceOutput) SetTitle(title string) *DeviceOutput {
	d.Title = title
	return d
}

// SetMaxLines limits the number of lines displayed
func (d *DeviceOutput) SetMaxLines(max int) *DeviceOutput {
	d.MaxLines = max
	return d
}

// FilterLines filters the output to only show lines matching the given
// patterns. Useful for pulling specific fields out of a large config body.
func (d *DeviceOutput) FilterLines(patterns ...string) *DeviceOutput {
	var filtered []string
	for _, line := range d.Lines {
		for _, pattern := range patterns {
			if strings.Contains(line, pattern) {
				filtered = append(filtered, line)
				break
			}
		}
	}
	d.Lines = filtered
	d.Content = strings.Join(filtered, "\n")
	return d
}

// Render returns the styled device response box as a string
func (d *DeviceOutput) Render() string {
	width := d.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	// Apply max lines limit
	lines := d.Lines
	if d.MaxLines > 0 && len(lines) > d.MaxLines {
		lines = lines[:d.MaxLines]
		lines = append(lines, "... (output truncated)")
	}

	// Title styled
	titleStyled := DeviceOutputTitleStyle.Render(d.Title)

	// Content styled (preserve monospace formatting)
	contentStyled := DeviceOutputContentStyle.Render(strings.Join(lines, "\n"))

	// Combine title and content
	inner := lipgloss.JoinVertical(lipgloss.Left, titleStyled, "", contentStyled)

	// Box with muted border
	boxWidth := width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(boxWidth).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}

// String implements fmt.Stringer
func (d *DeviceOutput) String() string {
	return d.Render()
}

// RenderDeviceOutput renders a device response box with the given content
func RenderDeviceOutput(content string) string {
	return NewDeviceOutput(content).Render()
}
