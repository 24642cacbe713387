package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://scribeworks.github.io/scribe/

// GettingStarted is the quick start guide for new users
// setting up a Scribe printer for the first time.
const GettingStarted = "https://scribeworks.github.io/scribe/getting-started/overview/"

// WiFiSetup covers joining the printer's setup access point
// and recovering a printer that has dropped off the network.
const WiFiSetup = "https://scribeworks.github.io/scribe/setup/wifi/"

// MQTTSetup is the guide for connecting a printer to an MQTT
// broker, including TLS ports and credential configuration.
const MQTTSetup = "https://scribeworks.github.io/scribe/setup/mqtt/"

// PinoutGuide documents the ESP32-C3 GPIO pinout, which pins
// are safe for buttons and the LED strip, and why the strapping
// pins should be avoided.
const PinoutGuide = "https://scribeworks.github.io/scribe/hardware/pinout/"

// UnbiddenInkGuide explains scheduled AI-generated printing
// and how to obtain an API token for it.
const UnbiddenInkGuide = "https://scribeworks.github.io/scribe/features/unbidden-ink/"

// TroubleshootingGuide provides solutions to common issues:
// discovery failures, unreachable printers, and paper jams.
const TroubleshootingGuide = "https://scribeworks.github.io/scribe/troubleshooting/"
