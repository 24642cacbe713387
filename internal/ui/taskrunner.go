package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TaskRunnerConfig configures a TaskRunner
type TaskRunnerConfig struct {
	Title      string            // e.g., "Save Settings"
	Command    string            // e.g., "scribe-cfg save"
	Params     map[string]string // Header parameters (printer address, etc.)
	TotalSteps int               // Number of steps (0 = no progress display)
	StepNames  []string          // Optional names for each step
	Verbose    bool              // Show raw device responses
	Output     io.Writer         // Defaults to os.Stdout
}

// TaskRunner orchestrates the header, progress, and result display for a
// multi-step device operation (save, network scan, test print).
type TaskRunner struct {
	config       TaskRunnerConfig
	header       *Header
	progress     *Progress
	output       io.Writer
	width        int
	startTime    time.Time
	deviceOutput string
}

// NewTaskRunner creates a runner for the given operation
func NewTaskRunner(config TaskRunnerConfig) *TaskRunner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := GetTerminalWidth()

	// Create header
	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	// Create progress tracker
	var progress *Progress
	if config.TotalSteps > 0 {
		progress = NewProgress("", config.TotalSteps)
		progress.SetWidth(width)
		if len(config.StepNames) > 0 {
			progress.SetStepNames(config.StepNames)
		}
	}

	return &TaskRunner{
		config:   config,
		header:   header,
		progress: progress,
		output:   config.Output,
		width:    width,
	}
}

// TaskOperation is the function signature for the actual device operation.
// The operation receives a StepCallback to report progress.
type TaskOperation func(onStep StepCallback) error

// Run executes the operation with UI updates.
// It displays the header, tracks progress, and shows the result.
func (r *TaskRunner) Run(ctx context.Context, operation TaskOperation) error {
	r.startTime = time.Now()

	// Print header
	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	// Create step callback
	stepCallback := r.createStepCallback()

	// Execute the operation
	err := operation(stepCallback)
	duration := time.Since(r.startTime)

	// Print final result
	if err != nil {
		r.printFailure(err, duration)
	} else {
		r.printSuccess(nil, duration)
	}

	return err
}

// RunWithResult executes the operation and allows custom result details.
// Returns the result details that were displayed.
func (r *TaskRunner) RunWithResult(ctx context.Context, operation func(onStep StepCallback) (map[string]string, error)) (map[string]string, error) {
	r.startTime = time.Now()

	// Print header
	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	// Create step callback
	stepCallback := r.createStepCallback()

	// Execute the operation
	details, err := operation(stepCallback)
	duration := time.Since(r.startTime)

	// Print final result
	if err != nil {
		r.printFailure(err, duration)
	} else {
		r.printSuccess(details, duration)
	}

	return details, err
}

// SetDeviceOutput stores a raw device response for verbose display
func (r *TaskRunner) SetDeviceOutput(output string) {
	r.deviceOutput = output
}

// createStepCallback creates the step callback function
func (r *TaskRunner) createStepCallback() StepCallback {
	return func(stepNumber int, name string, status StepStatus, message string) {
		if r.progress == nil {
			return
		}

		// Update step name if provided
		if name != "" && stepNumber > 0 && stepNumber <= len(r.progress.Steps) {
			r.progress.Steps[stepNumber-1].Name = name
		}

		// Update step status
		r.progress.UpdateStep(stepNumber, status, message)

		// Print progress line
		if status == StepComplete || status == StepFailed || status == StepSkipped {
			// Print completed step
			step := r.progress.Steps[stepNumber-1]
			_, _ = fmt.Fprintln(r.output, r.progress.renderStepLine(step))
		} else if status == StepRunning {
			// Print running step (will be overwritten when complete)
			step := r.progress.Steps[stepNumber-1]
			_, _ = fmt.Fprint(r.output, r.progress.renderStepLine(step)+"\r")
		}
	}
}

// printSuccess prints a success result with optional custom details
func (r *TaskRunner) printSuccess(details map[string]string, duration time.Duration) {
	_, _ = fmt.Fprintln(r.output)

	if details == nil {
		details = make(map[string]string)
	}
	details["Duration"] = duration.Round(time.Millisecond).String()

	result := NewSuccessResult(r.config.Title+" complete", details)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())

	r.printDeviceOutput()
}

// printFailure prints a failure result with troubleshooting
func (r *TaskRunner) printFailure(err error, duration time.Duration) {
	_, _ = fmt.Fprintln(r.output)

	// Default troubleshooting tips
	troubleshooting := []string{
		"Verify the printer is powered on and connected to WiFi",
		"Check the printer address with: scribe-cfg discover",
		"Run with --verbose for the raw device response",
	}

	result := NewFailureResult(r.config.Title+" failed", err, troubleshooting)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())

	r.printDeviceOutput()
}

// printDeviceOutput shows the raw response in verbose mode
func (r *TaskRunner) printDeviceOutput() {
	if !r.config.Verbose || r.deviceOutput == "" {
		return
	}
	_, _ = fmt.Fprintln(r.output)
	out := NewDeviceOutput(r.deviceOutput)
	out.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, out.Render())
}

// --- Simple helper functions for commands that don't need a full TaskRunner ---

// PrintCommandHeader prints a styled command header
func PrintCommandHeader(title, command string, params map[string]string) {
	width := GetTerminalWidth()
	header := NewHeader(title, command, params)
	header.SetWidth(width)
	fmt.Println(header.Render())
	fmt.Println()
}

// PrintSuccess prints a styled success result
func PrintSuccess(title string, details map[string]string) {
	width := GetTerminalWidth()
	result := NewSuccessResult(title, details)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintFailure prints a styled failure result
func PrintFailure(title string, err error, troubleshooting []string) {
	width := GetTerminalWidth()
	result := NewFailureResult(title, err, troubleshooting)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintWarning prints a styled warning result
func PrintWarning(title string, details map[string]string) {
	width := GetTerminalWidth()
	result := NewWarningResult(title, details)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintPleaseWait prints a styled "please wait" message for long-running
// operations such as a WiFi scan. The duration hint helps set expectations,
// e.g., "up to 10 seconds".
func PrintPleaseWait(message string, durationHint string) {
	style := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		PaddingLeft(2)

	hintStyle := lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	line := style.Render("⏳ " + message)
	if durationHint != "" {
		line += " " + hintStyle.Render("(" + durationHint + ")")
	}
	line += style.Render("...")

	fmt.Println()
	fmt.Println(line)
	fmt.Println()
}
