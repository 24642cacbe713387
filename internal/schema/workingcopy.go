package schema

// PinUnassigned is the sentinel pin value meaning "not connected". It is
// always selectable and never participates in conflict detection.
const PinUnassigned = -1

// ButtonCount is the number of physical buttons on the appliance.
const ButtonCount = 4

// MemoCount is the number of stored memos.
const MemoCount = 4

// MemoMaxLength is the maximum length of one memo, matching the firmware.
const MemoMaxLength = 500

// WorkingCopy is the console's mutable replica of the configuration
// document for one editing session. It is exclusively owned by the session
// that created it; all mutation goes through session operations.
type WorkingCopy struct {
	Device      DeviceSettings
	MQTT        MQTTSettings
	UnbiddenInk UnbiddenInkSettings
	Buttons     ButtonsSettings
	Leds        LedSettings
	Memos       [MemoCount]string
	Pins        PinCatalog
}

// DeviceSettings is the device identity section plus printer UART pins.
type DeviceSettings struct {
	Owner    string
	Timezone string

	PrinterTxPin  int
	PrinterRxPin  int
	PrinterDtrPin int

	WiFi WiFiSettings

	// Read-only status, kept for display
	MaxCharacters   int
	FirmwareVersion string
	ChipModel       string
	BootTime        string
	Mdns            string
	IPAddress       string
	PrinterName     string
	MqttTopic       string
}

// WiFiSettings holds credentials plus read-only connection status. Password
// holds the display value: the server's mask until the operator types a
// replacement.
type WiFiSettings struct {
	SSID     string
	Password string

	Connected      bool
	MacAddress     string
	Gateway        string
	DNS            string
	SignalStrength string
}

// MQTTSettings is the broker section.
type MQTTSettings struct {
	Enabled  bool
	Server   string
	Port     int
	Username string
	Password string

	Connected bool // read-only
}

// UnbiddenInkSettings is the scheduled-generation section.
type UnbiddenInkSettings struct {
	Enabled          bool
	StartHour        int
	EndHour          int
	FrequencyMinutes int
	Prompt           string
	ChatgptApiToken  string

	NextScheduled string            // read-only
	PromptPresets map[string]string // read-only
}

// ButtonsSettings holds the four button configurations plus read-only
// hardware timing parameters.
type ButtonsSettings struct {
	Buttons [ButtonCount]ButtonSettings

	DebounceTime  int
	LongPressTime int
	ActiveLow     bool
	MinInterval   int
	MaxPerMinute  int
}

// ButtonSettings is one physical button's GPIO and action bindings.
type ButtonSettings struct {
	Gpio           int
	ShortAction    string
	ShortMqttTopic string
	LongAction     string
	LongMqttTopic  string
	ShortLedEffect string
	LongLedEffect  string
}

// LedSettings is the LED strip section.
type LedSettings struct {
	Enabled     bool // read-only: strip support compiled into the firmware
	Pin         int
	Count       int
	Brightness  int
	RefreshRate int
}

// PinCatalog is the board's GPIO inventory as reported by the device:
// which pins exist, which are electrically safe, and a description per pin.
type PinCatalog struct {
	Available    []int
	Safe         []int
	Descriptions map[int]string
}

// IsSafe reports whether pin is on the board's electrically-safe list.
func (c *PinCatalog) IsSafe(pin int) bool {
	for _, p := range c.Safe {
		if p == pin {
			return true
		}
	}
	return false
}

// Description returns the board's label for a pin, or "" if unknown.
func (c *PinCatalog) Description(pin int) string {
	return c.Descriptions[pin]
}

// Clone returns a deep copy of the working copy. Slices and maps are
// copied so the clone can be mutated independently.
func (wc *WorkingCopy) Clone() *WorkingCopy {
	out := *wc

	out.Pins.Available = append([]int(nil), wc.Pins.Available...)
	out.Pins.Safe = append([]int(nil), wc.Pins.Safe...)
	if wc.Pins.Descriptions != nil {
		out.Pins.Descriptions = make(map[int]string, len(wc.Pins.Descriptions))
		for k, v := range wc.Pins.Descriptions {
			out.Pins.Descriptions[k] = v
		}
	}
	if wc.UnbiddenInk.PromptPresets != nil {
		out.UnbiddenInk.PromptPresets = make(map[string]string, len(wc.UnbiddenInk.PromptPresets))
		for k, v := range wc.UnbiddenInk.PromptPresets {
			out.UnbiddenInk.PromptPresets[k] = v
		}
	}

	return &out
}
