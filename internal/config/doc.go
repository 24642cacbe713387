// Package config manages the console's own configuration file: a YAML
// registry of known printers (nicknames, last known addresses) and
// application preferences. It is entirely client-side state; the printer's
// configuration document lives on the device and is handled by deviceapi.
//
// # Configuration File Location
//
// The file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/scribe-cfg/config.yaml or $HOME/.config/scribe-cfg/config.yaml
//   - macOS: $HOME/.config/scribe-cfg/config.yaml
//   - Windows: %LOCALAPPDATA%\scribe-cfg\config.yaml
//
// # Security
//
// This package NEVER stores secrets: no WiFi passwords, broker credentials
// or API tokens. Those live on the printer and are entered by the operator
// when changed.
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization. File writes
// go through a temp file and rename so a crash cannot corrupt the registry.
package config
