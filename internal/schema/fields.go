package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldKind classifies a registry field for validation and rendering.
type FieldKind int

const (
	KindString FieldKind = iota
	KindSecret
	KindNumber
	KindBool
	KindEnum
	KindPin
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSecret:
		return "secret"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindPin:
		return "pin"
	default:
		return "unknown"
	}
}

// FieldDef describes one editable field of the working copy.
type FieldDef struct {
	// Path is the dot-delimited address, e.g. "device.wifi.ssid".
	Path string

	Kind FieldKind

	// Min and Max bound KindNumber fields (inclusive). Both zero means
	// unbounded.
	Min, Max int

	// Enum lists the accepted values for KindEnum fields.
	Enum []string

	// MaxLen bounds string length; zero means unbounded.
	MaxLen int

	Get func(wc *WorkingCopy) any
	Set func(wc *WorkingCopy, v any)
}

var fields []FieldDef

var fieldsByPath map[string]*FieldDef

func init() {
	fields = buildRegistry()
	fieldsByPath = make(map[string]*FieldDef, len(fields))
	for i := range fields {
		fieldsByPath[fields[i].Path] = &fields[i]
	}
}

// Lookup returns the field definition for a path, or nil if the path is
// not an editable field.
func Lookup(path string) *FieldDef {
	return fieldsByPath[path]
}

// Paths returns all editable field paths in sorted order.
func Paths() []string {
	out := make([]string, 0, len(fields))
	for i := range fields {
		out = append(out, fields[i].Path)
	}
	sort.Strings(out)
	return out
}

// SecretPaths returns the paths of all secret fields.
func SecretPaths() []string {
	var out []string
	for i := range fields {
		if fields[i].Kind == KindSecret {
			out = append(out, fields[i].Path)
		}
	}
	sort.Strings(out)
	return out
}

// ParseValue converts a textual value to the field's native type. Used by
// the command line surface, where everything arrives as a string.
func (f *FieldDef) ParseValue(raw string) (any, error) {
	switch f.Kind {
	case KindString, KindSecret, KindEnum:
		return raw, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false, got %q", f.Path, raw)
		}
		return b, nil
	case KindNumber, KindPin:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: expected a number, got %q", f.Path, raw)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%s: unsupported field kind", f.Path)
	}
}

func buildRegistry() []FieldDef {
	defs := []FieldDef{
		{
			Path: "device.owner", Kind: KindString, MaxLen: 50,
			Get: func(wc *WorkingCopy) any { return wc.Device.Owner },
			Set: func(wc *WorkingCopy, v any) { wc.Device.Owner = v.(string) },
		},
		{
			Path: "device.timezone", Kind: KindString, MaxLen: 64,
			Get: func(wc *WorkingCopy) any { return wc.Device.Timezone },
			Set: func(wc *WorkingCopy, v any) { wc.Device.Timezone = v.(string) },
		},
		{
			Path: "device.printerTxPin", Kind: KindPin,
			Get: func(wc *WorkingCopy) any { return wc.Device.PrinterTxPin },
			Set: func(wc *WorkingCopy, v any) { wc.Device.PrinterTxPin = v.(int) },
		},
		{
			Path: "device.printerRxPin", Kind: KindPin,
			Get: func(wc *WorkingCopy) any { return wc.Device.PrinterRxPin },
			Set: func(wc *WorkingCopy, v any) { wc.Device.PrinterRxPin = v.(int) },
		},
		{
			Path: "device.printerDtrPin", Kind: KindPin,
			Get: func(wc *WorkingCopy) any { return wc.Device.PrinterDtrPin },
			Set: func(wc *WorkingCopy, v any) { wc.Device.PrinterDtrPin = v.(int) },
		},
		{
			Path: "device.wifi.ssid", Kind: KindString, MaxLen: 32,
			Get: func(wc *WorkingCopy) any { return wc.Device.WiFi.SSID },
			Set: func(wc *WorkingCopy, v any) { wc.Device.WiFi.SSID = v.(string) },
		},
		{
			Path: "device.wifi.password", Kind: KindSecret, MaxLen: 63,
			Get: func(wc *WorkingCopy) any { return wc.Device.WiFi.Password },
			Set: func(wc *WorkingCopy, v any) { wc.Device.WiFi.Password = v.(string) },
		},
		{
			Path: "mqtt.enabled", Kind: KindBool,
			Get: func(wc *WorkingCopy) any { return wc.MQTT.Enabled },
			Set: func(wc *WorkingCopy, v any) { wc.MQTT.Enabled = v.(bool) },
		},
		{
			Path: "mqtt.server", Kind: KindString, MaxLen: 253,
			Get: func(wc *WorkingCopy) any { return wc.MQTT.Server },
			Set: func(wc *WorkingCopy, v any) { wc.MQTT.Server = v.(string) },
		},
		{
			Path: "mqtt.port", Kind: KindNumber, Min: 1, Max: 65535,
			Get: func(wc *WorkingCopy) any { return wc.MQTT.Port },
			Set: func(wc *WorkingCopy, v any) { wc.MQTT.Port = v.(int) },
		},
		{
			Path: "mqtt.username", Kind: KindString, MaxLen: 64,
			Get: func(wc *WorkingCopy) any { return wc.MQTT.Username },
			Set: func(wc *WorkingCopy, v any) { wc.MQTT.Username = v.(string) },
		},
		{
			Path: "mqtt.password", Kind: KindSecret, MaxLen: 128,
			Get: func(wc *WorkingCopy) any { return wc.MQTT.Password },
			Set: func(wc *WorkingCopy, v any) { wc.MQTT.Password = v.(string) },
		},
		{
			Path: "unbiddenInk.enabled", Kind: KindBool,
			Get: func(wc *WorkingCopy) any { return wc.UnbiddenInk.Enabled },
			Set: func(wc *WorkingCopy, v any) { wc.UnbiddenInk.Enabled = v.(bool) },
		},
		{
			Path: "unbiddenInk.startHour", Kind: KindNumber, Min: 0, Max: 24,
			Get: func(wc *WorkingCopy) any { return wc.UnbiddenInk.StartHour },
			Set: func(wc *WorkingCopy, v any) { wc.UnbiddenInk.StartHour = v.(int) },
		},
		{
			Path: "unbiddenInk.endHour", Kind: KindNumber, Min: 0, Max: 24,
			Get: func(wc *WorkingCopy) any { return wc.UnbiddenInk.EndHour },
			Set: func(wc *WorkingCopy, v any) { wc.UnbiddenInk.EndHour = v.(int) },
		},
		{
			Path: "unbiddenInk.frequencyMinutes", Kind: KindNumber, Min: 15, Max: 480,
			Get: func(wc *WorkingCopy) any { return wc.UnbiddenInk.FrequencyMinutes },
			Set: func(wc *WorkingCopy, v any) { wc.UnbiddenInk.FrequencyMinutes = v.(int) },
		},
		{
			Path: "unbiddenInk.prompt", Kind: KindString, MaxLen: 500,
			Get: func(wc *WorkingCopy) any { return wc.UnbiddenInk.Prompt },
			Set: func(wc *WorkingCopy, v any) { wc.UnbiddenInk.Prompt = v.(string) },
		},
		{
			Path: "unbiddenInk.chatgptApiToken", Kind: KindSecret, MaxLen: 256,
			Get: func(wc *WorkingCopy) any { return wc.UnbiddenInk.ChatgptApiToken },
			Set: func(wc *WorkingCopy, v any) { wc.UnbiddenInk.ChatgptApiToken = v.(string) },
		},
		{
			Path: "leds.pin", Kind: KindPin,
			Get: func(wc *WorkingCopy) any { return wc.Leds.Pin },
			Set: func(wc *WorkingCopy, v any) { wc.Leds.Pin = v.(int) },
		},
		{
			Path: "leds.count", Kind: KindNumber, Min: 1, Max: 300,
			Get: func(wc *WorkingCopy) any { return wc.Leds.Count },
			Set: func(wc *WorkingCopy, v any) { wc.Leds.Count = v.(int) },
		},
		{
			Path: "leds.brightness", Kind: KindNumber, Min: 0, Max: 255,
			Get: func(wc *WorkingCopy) any { return wc.Leds.Brightness },
			Set: func(wc *WorkingCopy, v any) { wc.Leds.Brightness = v.(int) },
		},
		{
			Path: "leds.refreshRate", Kind: KindNumber, Min: 10, Max: 120,
			Get: func(wc *WorkingCopy) any { return wc.Leds.RefreshRate },
			Set: func(wc *WorkingCopy, v any) { wc.Leds.RefreshRate = v.(int) },
		},
	}

	for i := 0; i < ButtonCount; i++ {
		i := i
		prefix := fmt.Sprintf("buttons.button%d.", i+1)
		defs = append(defs,
			FieldDef{
				Path: prefix + "gpio", Kind: KindPin,
				Get: func(wc *WorkingCopy) any { return wc.Buttons.Buttons[i].Gpio },
				Set: func(wc *WorkingCopy, v any) { wc.Buttons.Buttons[i].Gpio = v.(int) },
			},
			FieldDef{
				Path: prefix + "shortAction", Kind: KindEnum, Enum: ButtonActions,
				Get: func(wc *WorkingCopy) any { return wc.Buttons.Buttons[i].ShortAction },
				Set: func(wc *WorkingCopy, v any) { wc.Buttons.Buttons[i].ShortAction = v.(string) },
			},
			FieldDef{
				Path: prefix + "shortMqttTopic", Kind: KindString, MaxLen: 128,
				Get: func(wc *WorkingCopy) any { return wc.Buttons.Buttons[i].ShortMqttTopic },
				Set: func(wc *WorkingCopy, v any) { wc.Buttons.Buttons[i].ShortMqttTopic = v.(string) },
			},
			FieldDef{
				Path: prefix + "longAction", Kind: KindEnum, Enum: ButtonActions,
				Get: func(wc *WorkingCopy) any { return wc.Buttons.Buttons[i].LongAction },
				Set: func(wc *WorkingCopy, v any) { wc.Buttons.Buttons[i].LongAction = v.(string) },
			},
			FieldDef{
				Path: prefix + "longMqttTopic", Kind: KindString, MaxLen: 128,
				Get: func(wc *WorkingCopy) any { return wc.Buttons.Buttons[i].LongMqttTopic },
				Set: func(wc *WorkingCopy, v any) { wc.Buttons.Buttons[i].LongMqttTopic = v.(string) },
			},
			FieldDef{
				Path: prefix + "shortLedEffect", Kind: KindEnum, Enum: LedEffects,
				Get: func(wc *WorkingCopy) any { return wc.Buttons.Buttons[i].ShortLedEffect },
				Set: func(wc *WorkingCopy, v any) { wc.Buttons.Buttons[i].ShortLedEffect = v.(string) },
			},
			FieldDef{
				Path: prefix + "longLedEffect", Kind: KindEnum, Enum: LedEffects,
				Get: func(wc *WorkingCopy) any { return wc.Buttons.Buttons[i].LongLedEffect },
				Set: func(wc *WorkingCopy, v any) { wc.Buttons.Buttons[i].LongLedEffect = v.(string) },
			},
		)
	}

	for i := 0; i < MemoCount; i++ {
		i := i
		defs = append(defs, FieldDef{
			Path: fmt.Sprintf("memos.memo%d", i+1), Kind: KindString, MaxLen: MemoMaxLength,
			Get: func(wc *WorkingCopy) any { return wc.Memos[i] },
			Set: func(wc *WorkingCopy, v any) { wc.Memos[i] = v.(string) },
		})
	}

	return defs
}
