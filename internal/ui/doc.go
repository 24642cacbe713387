// Package ui provides the styled terminal output components shared by the
// console commands: command headers, progress displays, result boxes, and
// confirmation prompts.
//
// # Components
//
//   - Header: boxed command title with parameters (printer address, etc.)
//   - Progress: step list with a progress bar for multi-step operations
//   - Result: success, failure, and warning boxes with troubleshooting tips
//   - DeviceOutput: raw device response box shown in verbose mode
//   - TaskRunner: orchestrates header, progress, and result for one operation
//   - PromptSecret: no-echo input for passwords and API tokens
//
// Rendering uses lipgloss styles with a shared palette, and adapts to the
// terminal width (capped between MinTerminalWidth and MaxContentWidth).
// Output goes through a Printer so commands can redirect it in tests.
package ui
