// Scribe-cfg is the settings console for Scribe networked thermal printers.
//
// It provides printer discovery, an interactive settings dashboard, and
// direct commands for reading and changing individual settings. The console
// talks to printers over their local HTTP API; nothing is sent anywhere
// else, and secrets are never written to disk.
//
// Usage:
//
//	scribe-cfg [command] [flags]
//
// Running without arguments launches the interactive console.
// See 'scribe-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribeworks/scribe-cfg/internal/logging"
	"github.com/scribeworks/scribe-cfg/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scribe-cfg",
	Short: "Scribe Printer Settings Console",
	Long: `A settings console for Scribe networked thermal printers.

Provides printer discovery, an interactive settings dashboard, and direct
commands for reading and changing individual settings over the printer's
local HTTP API.

If no command is specified, the interactive console will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive console when no subcommand given
		return runConsole(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scribe-cfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
