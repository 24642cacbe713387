package deviceapi

import (
	"encoding/json"
	"fmt"
)

// Document represents the full configuration document returned by
// GET /api/config, plus the memos fetched from GET /api/memos.
//
// Scalar fields are pointers so a merge can distinguish "field absent from
// the response" from "field present with a zero value". The firmware is not
// guaranteed to return every field (older builds omit sections entirely),
// so callers must treat every pointer as optional.
type Document struct {
	Device      *DeviceSection      `json:"device,omitempty"`
	MQTT        *MQTTSection        `json:"mqtt,omitempty"`
	UnbiddenInk *UnbiddenInkSection `json:"unbiddenInk,omitempty"`
	Buttons     *ButtonsSection     `json:"buttons,omitempty"`
	Leds        *LedsSection        `json:"leds,omitempty"`
	GPIO        *GPIOSection        `json:"gpio,omitempty"`
	Memos       *MemosSection       `json:"memos,omitempty"`
}

// DeviceSection holds device identity plus the nested WiFi configuration.
type DeviceSection struct {
	Owner         *string `json:"owner,omitempty"`
	Timezone      *string `json:"timezone,omitempty"`
	MaxCharacters *int    `json:"maxCharacters,omitempty"`

	// Read-only runtime information
	FirmwareVersion *string `json:"firmwareVersion,omitempty"`
	ChipModel       *string `json:"chipModel,omitempty"`
	BootTime        *string `json:"bootTime,omitempty"`
	Mdns            *string `json:"mdns,omitempty"`
	IPAddress       *string `json:"ipAddress,omitempty"`
	PrinterName     *string `json:"printerName,omitempty"`
	MqttTopic       *string `json:"mqttTopic,omitempty"`
	Type            *string `json:"type,omitempty"`

	// Printer UART pin assignments
	PrinterTxPin  *int `json:"printerTxPin,omitempty"`
	PrinterRxPin  *int `json:"printerRxPin,omitempty"`
	PrinterDtrPin *int `json:"printerDtrPin,omitempty"`

	WiFi *WiFiSection `json:"wifi,omitempty"`
}

// WiFiSection holds WiFi credentials plus read-only connection status.
// Password is returned masked by the device (see MaskSecret).
type WiFiSection struct {
	SSID     *string `json:"ssid,omitempty"`
	Password *string `json:"password,omitempty"`

	FallbackApSsid     *string `json:"fallbackApSsid,omitempty"`
	FallbackApPassword *string `json:"fallbackApPassword,omitempty"`
	FallbackApMdns     *string `json:"fallbackApMdns,omitempty"`

	Status *WiFiStatus `json:"status,omitempty"`
}

// WiFiStatus is read-only connection state, always excluded from writes.
type WiFiStatus struct {
	Connected      *bool   `json:"connected,omitempty"`
	ApStaMode      *bool   `json:"apStaMode,omitempty"`
	IPAddress      *string `json:"ipAddress,omitempty"`
	MacAddress     *string `json:"macAddress,omitempty"`
	Gateway        *string `json:"gateway,omitempty"`
	DNS            *string `json:"dns,omitempty"`
	SignalStrength *string `json:"signalStrength,omitempty"`
}

// MQTTSection holds broker configuration. Password is returned masked.
type MQTTSection struct {
	Enabled  *bool   `json:"enabled,omitempty"`
	Server   *string `json:"server,omitempty"`
	Port     *int    `json:"port,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`

	// Read-only broker connection state
	Connected *bool `json:"connected,omitempty"`
}

// UnbiddenInkSection configures scheduled AI-generated printouts.
// ChatgptApiToken is returned masked.
type UnbiddenInkSection struct {
	Enabled          *bool   `json:"enabled,omitempty"`
	StartHour        *int    `json:"startHour,omitempty"`
	EndHour          *int    `json:"endHour,omitempty"`
	FrequencyMinutes *int    `json:"frequencyMinutes,omitempty"`
	Prompt           *string `json:"prompt,omitempty"`
	ChatgptApiToken  *string `json:"chatgptApiToken,omitempty"`

	// Read-only scheduling status
	PromptPresets map[string]string `json:"promptPresets,omitempty"`
	NextScheduled *string           `json:"nextScheduled,omitempty"`
}

// ButtonsSection holds the four physical button configurations plus
// read-only timing parameters.
type ButtonsSection struct {
	Count         *int  `json:"count,omitempty"`
	DebounceTime  *int  `json:"debounceTime,omitempty"`
	LongPressTime *int  `json:"longPressTime,omitempty"`
	ActiveLow     *bool `json:"activeLow,omitempty"`
	MinInterval   *int  `json:"minInterval,omitempty"`
	MaxPerMinute  *int  `json:"maxPerMinute,omitempty"`

	Button1 *ButtonConfig `json:"button1,omitempty"`
	Button2 *ButtonConfig `json:"button2,omitempty"`
	Button3 *ButtonConfig `json:"button3,omitempty"`
	Button4 *ButtonConfig `json:"button4,omitempty"`
}

// ButtonConfig is one physical button's GPIO and action bindings.
type ButtonConfig struct {
	Gpio           *int    `json:"gpio,omitempty"`
	ShortAction    *string `json:"shortAction,omitempty"`
	ShortMqttTopic *string `json:"shortMqttTopic,omitempty"`
	LongAction     *string `json:"longAction,omitempty"`
	LongMqttTopic  *string `json:"longMqttTopic,omitempty"`
	ShortLedEffect *string `json:"shortLedEffect,omitempty"`
	LongLedEffect  *string `json:"longLedEffect,omitempty"`
}

// LedsSection configures the addressable LED strip.
type LedsSection struct {
	Enabled     *bool `json:"enabled,omitempty"`
	Pin         *int  `json:"pin,omitempty"`
	Count       *int  `json:"count,omitempty"`
	Brightness  *int  `json:"brightness,omitempty"`
	RefreshRate *int  `json:"refreshRate,omitempty"`

	// Read-only defaults for the effect playground
	EffectDefaults map[string]EffectDefaults `json:"effectDefaults,omitempty"`
}

// EffectDefaults is the firmware's default parameter set for one LED effect.
type EffectDefaults struct {
	Speed     int      `json:"speed"`
	Intensity int      `json:"intensity"`
	Cycles    int      `json:"cycles"`
	Colors    []string `json:"colors"`
}

// GPIOSection is the board's pin catalog: which pins exist, which are
// electrically safe, and a human description per pin. Read-only.
type GPIOSection struct {
	AvailablePins   []int          `json:"availablePins,omitempty"`
	SafePins        []int          `json:"safePins,omitempty"`
	PinDescriptions map[string]string `json:"pinDescriptions,omitempty"`
}

// MemosSection holds the four stored memos (GET/POST /api/memos).
type MemosSection struct {
	Memo1 *string `json:"memo1,omitempty"`
	Memo2 *string `json:"memo2,omitempty"`
	Memo3 *string `json:"memo3,omitempty"`
	Memo4 *string `json:"memo4,omitempty"`
}

// ScannedNetwork is one entry from GET /api/wifi-scan. The device reports
// duplicates (one entry per BSSID); deduplication is the caller's job.
type ScannedNetwork struct {
	SSID           string `json:"ssid"`
	RSSI           int    `json:"rssi"`
	Channel        int    `json:"channel"`
	Secure         bool   `json:"secure"`
	Encryption     string `json:"encryption"`
	SignalStrength string `json:"signalStrength"`
}

// scanResponse is the wire envelope for /api/wifi-scan.
type scanResponse struct {
	Count    int              `json:"count"`
	Networks []ScannedNetwork `json:"networks"`
}

// EffectRequest triggers a hardware LED effect via POST /api/leds/test.
type EffectRequest struct {
	Effect    string   `json:"effect"`
	Speed     int      `json:"speed,omitempty"`
	Intensity int      `json:"intensity,omitempty"`
	Cycles    int      `json:"cycles,omitempty"`
	Colors    []string `json:"colors,omitempty"`
}

// MQTTTestRequest tests broker credentials via POST /api/test-mqtt.
// Password is omitted when empty so the device substitutes its stored
// secret - the same non-regression rule the save path follows.
type MQTTTestRequest struct {
	Server   string `json:"server"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// ParseDocument parses a configuration document from raw response data.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration document: %w", err)
	}
	return &doc, nil
}

// SignalLabel converts an RSSI reading to the firmware's descriptive
// strength label (Strong/Good/Fair/Weak at -50/-60/-70 dBm).
func SignalLabel(rssi int) string {
	switch {
	case rssi >= -50:
		return "Strong"
	case rssi >= -60:
		return "Good"
	case rssi >= -70:
		return "Fair"
	default:
		return "Weak"
	}
}

// String returns a human-readable one-line summary of the document.
func (d *Document) String() string {
	owner := "unknown"
	fw := "?"
	ip := "?"
	if d.Device != nil {
		if d.Device.Owner != nil {
			owner = *d.Device.Owner
		}
		if d.Device.FirmwareVersion != nil {
			fw = *d.Device.FirmwareVersion
		}
		if d.Device.IPAddress != nil {
			ip = *d.Device.IPAddress
		}
	}
	return fmt.Sprintf("Scribe printer (owner: %s, fw: %s, ip: %s)", owner, fw, ip)
}
