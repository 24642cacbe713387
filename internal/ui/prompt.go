package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// PromptSecret reads a secret value from the terminal without echoing it.
// Falls back to a plain line read when stdin is not a terminal (piped input).
func PromptSecret(label string) (string, error) {
	promptStyle := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)
	fmt.Print(promptStyle.Render(label + ": "))

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptLine reads a single line of input with the given label.
func PromptLine(label string) (string, error) {
	promptStyle := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)
	fmt.Print(promptStyle.Render(label + ": "))

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
