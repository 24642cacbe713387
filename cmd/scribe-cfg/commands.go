package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribeworks/scribe-cfg/internal/config"
	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/discovery"
	"github.com/scribeworks/scribe-cfg/internal/schema"
	"github.com/scribeworks/scribe-cfg/internal/session"
	"github.com/scribeworks/scribe-cfg/internal/ui"
	"github.com/scribeworks/scribe-cfg/internal/urls"
	"github.com/scribeworks/scribe-cfg/internal/wizard/tui"
)

// Command flags
var (
	printerAddr  string
	printerPort  int
	scanTimeout  int
	outputFormat string
	verbose      bool
)

func init() {
	// Common flags for printer commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&printerAddr, "printer", "", "Printer IP or registry hostname (skips discovery)")
	rootCmd.PersistentFlags().IntVar(&printerPort, "port", discovery.DefaultPort, "Printer HTTP port")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show raw device responses")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(memoCmd)
	rootCmd.AddCommand(wifiScanCmd)
	rootCmd.AddCommand(testLedCmd)
	rootCmd.AddCommand(ledsOffCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(testMqttCmd)
	rootCmd.AddCommand(testChatgptCmd)
	rootCmd.AddCommand(nicknameCmd)
}

// consoleCmd launches the interactive settings console
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Launch the interactive settings console",
	Long: `Launch the interactive settings console.

The console provides a full-screen interface for:
- Discovering printers on the network
- Editing all printer settings inline
- Picking GPIO pins from the board catalog with conflict checking
- Selecting a WiFi network from a live scan

This is the recommended way to configure printers for most users.`,
	Example: `  # Launch with printer discovery
  scribe-cfg console
  # Or simply (console is the default):
  scribe-cfg

  # Open a specific printer's dashboard directly
  scribe-cfg console --printer 192.168.4.16
  scribe-cfg --printer 192.168.4.16`,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	if printerAddr == "" {
		return tui.Run(nil)
	}

	ip, err := resolvePrinterIP()
	if err != nil {
		return err
	}

	printer := &discovery.Printer{
		ID:           "manual",
		Hostname:     printerAddr,
		IP:           ip,
		Port:         printerPort,
		DiscoveredAt: time.Now(),
	}
	return tui.Run(printer)
}

// discoverCmd finds printers on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover Scribe printers on the network",
	Long: `Discover Scribe printers using mDNS/DNS-SD.

Printers advertise an HTTP service with a "scribe-<id>.local" hostname.
Discovered printers are remembered in the local registry so later commands
can refer to them by hostname.`,
	Example: `  # Scan for 10 seconds (default)
  scribe-cfg discover

  # Quick 3-second scan
  scribe-cfg discover --timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ui.PrintPleaseWait("Scanning for Scribe printers", fmt.Sprintf("up to %d seconds", scanTimeout))

	printers, err := discovery.ScanForPrinters(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		ui.PrintFailure("Discovery", err, []string{
			"Verify your firewall allows mDNS (UDP 5353)",
			"Check the printer and this machine share a network segment",
			"See " + urls.TroubleshootingGuide,
		})
		return err
	}

	if len(printers) == 0 {
		fmt.Println("No printers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the printer is powered on and connected to WiFi")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --printer to specify an IP manually")
		fmt.Println("  - See " + urls.GettingStarted)
		return nil
	}

	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	fmt.Printf("Found %d printer(s):\n\n", len(printers))
	for i, p := range printers {
		reg.UpdateLastSeen(p.Hostname, p.IP)
		fmt.Printf("%d. %s\n", i+1, reg.DisplayName(p.Hostname))
		fmt.Printf("   Hostname: %s\n", p.Hostname)
		fmt.Printf("   IP:       %s:%d\n", p.IP, p.Port)
		if fw := p.GetMetadata("version"); fw != "" {
			fmt.Printf("   Firmware: %s\n", fw)
		}
		fmt.Println()
	}

	if err := reg.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	fmt.Println("Use 'scribe-cfg show --printer <ip>' to view printer settings")
	fmt.Println("Use 'scribe-cfg console' for interactive configuration")

	return nil
}

// showCmd displays the current printer settings
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show printer settings",
	Long: `Display the current settings of a Scribe printer.

Secrets (WiFi password, MQTT password, API token) are shown masked, exactly
as the printer reports them. They never leave the device in clear text.`,
	Example: `  # Show settings with auto-discovery
  scribe-cfg show

  # Show settings for a specific printer
  scribe-cfg show --printer 192.168.4.16

  # JSON output for scripting
  scribe-cfg show --printer 192.168.4.16 --format json`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	sess, ip, err := connectSession()
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		doc := make(map[string]any)
		for _, path := range schema.Paths() {
			v, err := sess.Get(path)
			if err != nil {
				continue
			}
			if def := schema.Lookup(path); def != nil && def.Kind == schema.KindSecret {
				if s, ok := v.(string); ok && !deviceapi.IsMaskedValue(s) {
					v = deviceapi.MaskSecret(s)
				}
			}
			doc[path] = v
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printSettings(sess, ip)
	return nil
}

// printSettings renders the working copy section by section
func printSettings(sess *session.Session, ip string) {
	wc := sess.Working()

	fmt.Printf("Settings for %s (%s:%d)\n\n", wc.Device.Mdns, ip, printerPort)

	fmt.Println("Device")
	fmt.Printf("  Owner:     %s\n", wc.Device.Owner)
	fmt.Printf("  Timezone:  %s\n", wc.Device.Timezone)
	fmt.Printf("  Firmware:  %s (%s)\n", wc.Device.FirmwareVersion, wc.Device.ChipModel)
	fmt.Printf("  Booted:    %s\n", wc.Device.BootTime)

	fmt.Println("\nWiFi")
	fmt.Printf("  SSID:      %s\n", wc.Device.WiFi.SSID)
	fmt.Printf("  Password:  %s\n", maskedDisplay(sess, "device.wifi.password"))
	if wc.Device.WiFi.Connected {
		fmt.Printf("  Status:    connected, signal %s\n", wc.Device.WiFi.SignalStrength)
		fmt.Printf("  Address:   %s (gw %s, dns %s)\n",
			wc.Device.IPAddress, wc.Device.WiFi.Gateway, wc.Device.WiFi.DNS)
	} else {
		fmt.Printf("  Status:    not connected\n")
	}

	fmt.Println("\nMQTT")
	fmt.Printf("  Enabled:   %t\n", wc.MQTT.Enabled)
	fmt.Printf("  Server:    %s:%d\n", wc.MQTT.Server, wc.MQTT.Port)
	fmt.Printf("  Username:  %s\n", wc.MQTT.Username)
	fmt.Printf("  Password:  %s\n", maskedDisplay(sess, "mqtt.password"))
	fmt.Printf("  Topic:     %s\n", wc.Device.MqttTopic)

	fmt.Println("\nUnbidden Ink")
	fmt.Printf("  Enabled:   %t\n", wc.UnbiddenInk.Enabled)
	fmt.Printf("  Window:    %02d:00 to %02d:00, every %d min\n",
		wc.UnbiddenInk.StartHour, wc.UnbiddenInk.EndHour, wc.UnbiddenInk.FrequencyMinutes)
	fmt.Printf("  Prompt:    %s\n", wc.UnbiddenInk.Prompt)
	fmt.Printf("  API token: %s\n", maskedDisplay(sess, "unbiddenInk.chatgptApiToken"))
	if wc.UnbiddenInk.NextScheduled != "" {
		fmt.Printf("  Next:      %s\n", wc.UnbiddenInk.NextScheduled)
	}

	fmt.Println("\nButtons")
	for i := range wc.Buttons.Buttons {
		b := wc.Buttons.Buttons[i]
		fmt.Printf("  Button %d:  GPIO %s, short=%s long=%s\n",
			i+1, pinDisplay(b.Gpio), actionDisplay(b.ShortAction), actionDisplay(b.LongAction))
	}

	fmt.Println("\nLED Strip")
	fmt.Printf("  Pin:       %s\n", pinDisplay(wc.Leds.Pin))
	fmt.Printf("  LEDs:      %d at brightness %d, %d Hz refresh\n",
		wc.Leds.Count, wc.Leds.Brightness, wc.Leds.RefreshRate)

	fmt.Println("\nPrinter Pins")
	fmt.Printf("  TX:        %s\n", pinDisplay(wc.Device.PrinterTxPin))
	fmt.Printf("  RX:        %s\n", pinDisplay(wc.Device.PrinterRxPin))
	fmt.Printf("  DTR:       %s\n", pinDisplay(wc.Device.PrinterDtrPin))

	fmt.Println("\nMemos")
	for i, memo := range wc.Memos {
		fmt.Printf("  Memo %d:    %s\n", i+1, memo)
	}
}

func maskedDisplay(sess *session.Session, path string) string {
	v, err := sess.Get(path)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	if s == "" {
		return "(not set)"
	}
	if deviceapi.IsMaskedValue(s) {
		return s
	}
	return deviceapi.MaskSecret(s)
}

func pinDisplay(pin int) string {
	if pin == schema.PinUnassigned {
		return "unassigned"
	}
	return strconv.Itoa(pin)
}

func actionDisplay(action string) string {
	if action == "" {
		return "(none)"
	}
	return action
}

// fieldsCmd lists every settable field path
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List all settable field paths",
	Long: `List every field path accepted by 'scribe-cfg set', with its type and
allowed values or range.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range schema.Paths() {
			def := schema.Lookup(path)
			line := fmt.Sprintf("  %-36s %s", path, def.Kind)
			switch def.Kind {
			case schema.KindNumber:
				line += fmt.Sprintf(" (%d to %d)", def.Min, def.Max)
			case schema.KindEnum:
				line += fmt.Sprintf(" (one of: %v)", def.Enum)
			}
			fmt.Println(line)
		}
		return nil
	},
}

// setCmd changes a single setting and saves it to the printer
var setCmd = &cobra.Command{
	Use:   "set <field> [value]",
	Short: "Change a printer setting",
	Long: `Change a single printer setting and save it.

Field paths follow the settings document structure; run 'scribe-cfg fields'
for the full list. Only the changed field is sent to the printer; everything
else, including stored secrets, is left untouched.

For secret fields (passwords, API tokens) the value may be omitted, in which
case it is prompted for without echoing.`,
	Example: `  # Change the owner name
  scribe-cfg set device.owner Alice --printer 192.168.4.16

  # Point MQTT at a new broker
  scribe-cfg set mqtt.server broker.local --printer 192.168.4.16

  # Change the MQTT password without echoing it
  scribe-cfg set mqtt.password --printer 192.168.4.16

  # Rebind a button
  scribe-cfg set buttons.button2.shortAction QUOTE --printer 192.168.4.16`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	def := schema.Lookup(path)
	if def == nil {
		return fmt.Errorf("unknown field %q (run 'scribe-cfg fields' for the list)", path)
	}

	var value string
	if len(args) == 2 {
		value = args[1]
	} else if def.Kind == schema.KindSecret {
		var err error
		value, err = ui.PromptSecret("New value for " + path)
		if err != nil {
			return err
		}
	} else {
		return fmt.Errorf("missing value for %s", path)
	}

	sess, ip, err := connectSession()
	if err != nil {
		return err
	}

	if err := sess.Set(path, value); err != nil {
		return err
	}

	if errs := sess.Validate(); !errs.IsValid() {
		printFieldErrors(errs)
		return fmt.Errorf("settings are invalid; nothing was saved")
	}

	// Changing WiFi credentials can take the printer off the network, so it
	// needs an explicit confirmation before anything is uploaded.
	if strings.HasPrefix(path, "device.wifi.") {
		if !ui.WiFiChangeConfirmation(sess.Working().Device.WiFi.SSID) {
			return nil
		}
	}

	runner := ui.NewTaskRunner(ui.TaskRunnerConfig{
		Title:      "Save Settings",
		Command:    fmt.Sprintf("scribe-cfg set %s", path),
		Params:     map[string]string{"Printer": fmt.Sprintf("%s:%d", ip, printerPort)},
		TotalSteps: 2,
		StepNames:  []string{"Validate settings", "Upload changes"},
		Verbose:    verbose,
	})

	return runner.Run(context.Background(), func(onStep ui.StepCallback) error {
		onStep(1, "", ui.StepRunning, "")
		onStep(1, "", ui.StepComplete, "")

		onStep(2, "", ui.StepRunning, "")
		if err := sess.Save(); err != nil {
			onStep(2, "", ui.StepFailed, "")
			return err
		}
		onStep(2, "", ui.StepComplete, "")
		return nil
	})
}

// memoCmd shows or replaces one of the four memos
var memoCmd = &cobra.Command{
	Use:   "memo <slot> [text]",
	Short: "Show or set a memo",
	Long: `Show or replace one of the printer's four memos.

Memos are short texts (up to 500 characters) bound to button actions
MEMO1 through MEMO4. Setting a memo uploads all four slots, as the
printer replaces the whole set at once.`,
	Example: `  # Show memo 2
  scribe-cfg memo 2 --printer 192.168.4.16

  # Replace memo 2
  scribe-cfg memo 2 "Remember to feed the cat" --printer 192.168.4.16`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMemo,
}

func runMemo(cmd *cobra.Command, args []string) error {
	slot, err := strconv.Atoi(args[0])
	if err != nil || slot < 1 || slot > schema.MemoCount {
		return fmt.Errorf("memo slot must be 1 to %d", schema.MemoCount)
	}
	path := fmt.Sprintf("memos.memo%d", slot)

	sess, _, err := connectSession()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		v, err := sess.Get(path)
		if err != nil {
			return err
		}
		fmt.Printf("Memo %d: %s\n", slot, v)
		return nil
	}

	if err := sess.Set(path, args[1]); err != nil {
		return err
	}
	if errs := sess.Validate(); !errs.IsValid() {
		printFieldErrors(errs)
		return fmt.Errorf("memo is invalid; nothing was saved")
	}
	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Printf("✓ Memo %d saved\n", slot)
	return nil
}

// wifiScanCmd lists WiFi networks visible to the printer
var wifiScanCmd = &cobra.Command{
	Use:   "wifi-scan",
	Short: "List WiFi networks visible to the printer",
	Long: `Ask the printer to scan for WiFi networks and list the results.

The printer reports one entry per access point; entries with the same name
are collapsed to the strongest signal.`,
	RunE: runWifiScan,
}

func runWifiScan(cmd *cobra.Command, args []string) error {
	ip, err := resolvePrinterIP()
	if err != nil {
		return err
	}
	client := deviceapi.NewClient(ip, printerPort)

	ui.PrintPleaseWait("Asking printer to scan for networks", "up to 10 seconds")

	networks, err := client.ScanNetworks()
	if err != nil {
		ui.PrintFailure("WiFi scan", err, []string{
			"Verify the printer is reachable at " + ip,
			"See " + urls.WiFiSetup,
		})
		return err
	}

	networks = session.DedupNetworks(networks)
	if len(networks) == 0 {
		fmt.Println("No networks found.")
		return nil
	}

	fmt.Printf("Found %d network(s):\n\n", len(networks))
	for _, nw := range networks {
		security := "open"
		if nw.Secure {
			security = nw.Encryption
			if security == "" {
				security = "secured"
			}
		}
		fmt.Printf("  %-32s %-7s %4d dBm  ch %-3d %s\n",
			nw.SSID, deviceapi.SignalLabel(nw.RSSI), nw.RSSI, nw.Channel, security)
	}
	return nil
}

// testLedCmd previews an LED effect on the strip
var testLedCmd = &cobra.Command{
	Use:   "test-led <effect>",
	Short: "Preview an LED effect on the printer",
	Long: `Trigger an LED effect on the printer's strip so it can be previewed
before binding it to a button.

Valid effects: ` + fmt.Sprintf("%v", schema.LedEffects),
	Example: `  scribe-cfg test-led rainbow --printer 192.168.4.16
  scribe-cfg test-led chase_single --printer 192.168.4.16`,
	Args: cobra.ExactArgs(1),
	RunE: runTestLed,
}

func runTestLed(cmd *cobra.Command, args []string) error {
	effect := args[0]
	if !schema.IsValidLedEffect(effect) {
		return fmt.Errorf("unknown effect %q (valid: %v)", effect, schema.LedEffects)
	}

	ip, err := resolvePrinterIP()
	if err != nil {
		return err
	}
	client := deviceapi.NewClient(ip, printerPort)

	if err := client.TriggerEffect(&deviceapi.EffectRequest{Effect: effect}); err != nil {
		return fmt.Errorf("failed to trigger effect: %w", err)
	}
	fmt.Printf("✓ Effect %q running. Use 'scribe-cfg leds-off' to stop it.\n", effect)
	return nil
}

// ledsOffCmd turns the LED strip off
var ledsOffCmd = &cobra.Command{
	Use:   "leds-off",
	Short: "Turn the printer's LED strip off",
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := resolvePrinterIP()
		if err != nil {
			return err
		}
		client := deviceapi.NewClient(ip, printerPort)
		if err := client.LedsOff(); err != nil {
			return fmt.Errorf("failed to turn LEDs off: %w", err)
		}
		fmt.Println("✓ LEDs off")
		return nil
	},
}

// printCmd sends a test print
var printCmd = &cobra.Command{
	Use:   "print [message]",
	Short: "Send a test print to the printer",
	Long: `Send a message to the printer for immediate local printing.
With no message, a default test line is printed.`,
	Example: `  scribe-cfg print --printer 192.168.4.16
  scribe-cfg print "Hello from the console" --printer 192.168.4.16`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := "Scribe settings console test print"
		if len(args) == 1 {
			message = args[0]
		}

		ip, err := resolvePrinterIP()
		if err != nil {
			return err
		}
		client := deviceapi.NewClient(ip, printerPort)
		if err := client.Print(message); err != nil {
			return fmt.Errorf("test print failed: %w", err)
		}
		fmt.Println("✓ Sent to printer")
		return nil
	},
}

// testMqttCmd verifies the configured MQTT broker connection
var testMqttCmd = &cobra.Command{
	Use:   "test-mqtt",
	Short: "Test the MQTT broker connection",
	Long: `Ask the printer to connect to its configured MQTT broker.

The stored password is used unless it was just changed in this session,
so the secret never travels in clear text unnecessarily.
See ` + urls.MQTTSetup + ` for broker configuration help.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := connectSession()
		if err != nil {
			return err
		}
		if err := sess.TestMQTT(); err != nil {
			return fmt.Errorf("MQTT test failed: %w", err)
		}
		fmt.Println("✓ MQTT broker reachable")
		return nil
	},
}

// testChatgptCmd verifies the stored API token
var testChatgptCmd = &cobra.Command{
	Use:   "test-chatgpt",
	Short: "Test the ChatGPT API token",
	Long: `Ask the printer to verify its ChatGPT API token against the API.
See ` + urls.UnbiddenInkGuide + ` for obtaining a token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := connectSession()
		if err != nil {
			return err
		}
		if err := sess.TestChatGPT(); err != nil {
			return fmt.Errorf("API token test failed: %w", err)
		}
		fmt.Println("✓ API token accepted")
		return nil
	},
}

// nicknameCmd names a printer in the local registry
var nicknameCmd = &cobra.Command{
	Use:   "nickname <hostname> <name>",
	Short: "Set a nickname for a printer",
	Long: `Set a friendly name for a printer in the local registry. The nickname
is shown by 'scribe-cfg discover' instead of the mDNS hostname.`,
	Example: `  scribe-cfg nickname scribe-a1b2c3.local kitchen`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg.SetNickname(args[0], args[1])
		if err := reg.Save(); err != nil {
			return fmt.Errorf("failed to save registry: %w", err)
		}
		fmt.Printf("✓ %s is now %q\n", args[0], args[1])
		return nil
	},
}

// printFieldErrors lists validation failures sorted by field path
func printFieldErrors(errs session.Errors) {
	paths := make([]string, 0, len(errs))
	for path := range errs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fmt.Println("Validation errors:")
	for _, path := range paths {
		fmt.Printf("  ✗ %s: %s\n", path, errs[path])
	}
}

// connectSession resolves the target printer, connects, and loads a session
func connectSession() (*session.Session, string, error) {
	ip, err := resolvePrinterIP()
	if err != nil {
		return nil, "", err
	}

	client := deviceapi.NewClient(ip, printerPort)
	notifier := session.NotifierFunc(func(message string, severity session.Severity) {
		if severity == session.SeverityError || severity == session.SeverityWarning {
			fmt.Printf("! %s\n", message)
		}
	})

	sess := session.New(client, notifier)
	if err := sess.Load(); err != nil {
		return nil, "", fmt.Errorf("failed to load settings from %s:%d: %w", ip, printerPort, err)
	}
	return sess, ip, nil
}

// resolvePrinterIP determines the target printer address from the --printer
// flag, the registry, or discovery.
func resolvePrinterIP() (string, error) {
	if printerAddr != "" {
		// Literal IP address
		if net.ParseIP(printerAddr) != nil {
			return printerAddr, nil
		}

		// Registry hostname or nickname with a known address
		if reg, err := config.LoadRegistry(); err == nil {
			for hostname, p := range reg.Printers {
				if hostname == printerAddr || p.Nickname == printerAddr {
					if p.LastIP != "" {
						return p.LastIP, nil
					}
				}
			}
		}

		return "", fmt.Errorf("unknown printer %q: not an IP and not in the registry (run 'scribe-cfg discover' first)", printerAddr)
	}

	// No flag: discover, but only proceed when the answer is unambiguous
	fmt.Println("No printer specified, attempting discovery...")
	printers, err := discovery.ScanForPrinters(5 * time.Second)
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}

	if len(printers) == 0 {
		return "", fmt.Errorf("no printers found; use --printer to specify an address")
	}

	if len(printers) > 1 {
		fmt.Printf("Found %d printers:\n", len(printers))
		for i, p := range printers {
			fmt.Printf("%d. %s (%s)\n", i+1, p.Hostname, p.IP)
		}
		return "", fmt.Errorf("multiple printers found; use --printer to pick one")
	}

	p := printers[0]
	fmt.Printf("Found printer: %s (%s)\n\n", p.Hostname, p.IP)
	return p.IP, nil
}
