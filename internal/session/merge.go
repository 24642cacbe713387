package session

import (
	"strconv"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/schema"
)

// Merge folds a device document into a fresh working copy. Every field the
// schema declares ends up populated: values present in the document win,
// absent scalars keep the factory default. Sections entirely missing from
// the response are reported as warnings so the caller can emit a diagnostic;
// a partial document is never an error.
func Merge(doc *deviceapi.Document) (*schema.WorkingCopy, []string) {
	wc := schema.Defaults()
	var warnings []string

	if doc.Device != nil {
		mergeDevice(doc.Device, wc)
	} else {
		warnings = append(warnings, "device section missing from response, using defaults")
	}

	if doc.MQTT != nil {
		mergeMQTT(doc.MQTT, wc)
	} else {
		warnings = append(warnings, "mqtt section missing from response, using defaults")
	}

	if doc.UnbiddenInk != nil {
		mergeUnbiddenInk(doc.UnbiddenInk, wc)
	} else {
		warnings = append(warnings, "unbiddenInk section missing from response, using defaults")
	}

	if doc.Buttons != nil {
		mergeButtons(doc.Buttons, wc)
	} else {
		warnings = append(warnings, "buttons section missing from response, using defaults")
	}

	if doc.Leds != nil {
		mergeLeds(doc.Leds, wc)
	} else {
		warnings = append(warnings, "leds section missing from response, using defaults")
	}

	if doc.GPIO != nil {
		mergeGPIO(doc.GPIO, wc)
	} else {
		warnings = append(warnings, "gpio section missing from response, pin catalog unavailable")
	}

	if doc.Memos != nil {
		takeStr(&wc.Memos[0], doc.Memos.Memo1)
		takeStr(&wc.Memos[1], doc.Memos.Memo2)
		takeStr(&wc.Memos[2], doc.Memos.Memo3)
		takeStr(&wc.Memos[3], doc.Memos.Memo4)
	}

	return wc, warnings
}

func mergeDevice(d *deviceapi.DeviceSection, wc *schema.WorkingCopy) {
	takeStr(&wc.Device.Owner, d.Owner)
	takeStr(&wc.Device.Timezone, d.Timezone)
	takeInt(&wc.Device.PrinterTxPin, d.PrinterTxPin)
	takeInt(&wc.Device.PrinterRxPin, d.PrinterRxPin)
	takeInt(&wc.Device.PrinterDtrPin, d.PrinterDtrPin)

	takeInt(&wc.Device.MaxCharacters, d.MaxCharacters)
	takeStr(&wc.Device.FirmwareVersion, d.FirmwareVersion)
	takeStr(&wc.Device.ChipModel, d.ChipModel)
	takeStr(&wc.Device.BootTime, d.BootTime)
	takeStr(&wc.Device.Mdns, d.Mdns)
	takeStr(&wc.Device.IPAddress, d.IPAddress)
	takeStr(&wc.Device.PrinterName, d.PrinterName)
	takeStr(&wc.Device.MqttTopic, d.MqttTopic)

	if d.WiFi == nil {
		return
	}
	takeStr(&wc.Device.WiFi.SSID, d.WiFi.SSID)
	takeStr(&wc.Device.WiFi.Password, d.WiFi.Password)
	if s := d.WiFi.Status; s != nil {
		takeBool(&wc.Device.WiFi.Connected, s.Connected)
		takeStr(&wc.Device.WiFi.MacAddress, s.MacAddress)
		takeStr(&wc.Device.WiFi.Gateway, s.Gateway)
		takeStr(&wc.Device.WiFi.DNS, s.DNS)
		takeStr(&wc.Device.WiFi.SignalStrength, s.SignalStrength)
	}
}

func mergeMQTT(m *deviceapi.MQTTSection, wc *schema.WorkingCopy) {
	takeBool(&wc.MQTT.Enabled, m.Enabled)
	takeStr(&wc.MQTT.Server, m.Server)
	takeInt(&wc.MQTT.Port, m.Port)
	takeStr(&wc.MQTT.Username, m.Username)
	takeStr(&wc.MQTT.Password, m.Password)
	takeBool(&wc.MQTT.Connected, m.Connected)
}

func mergeUnbiddenInk(u *deviceapi.UnbiddenInkSection, wc *schema.WorkingCopy) {
	takeBool(&wc.UnbiddenInk.Enabled, u.Enabled)
	takeInt(&wc.UnbiddenInk.StartHour, u.StartHour)
	takeInt(&wc.UnbiddenInk.EndHour, u.EndHour)
	takeInt(&wc.UnbiddenInk.FrequencyMinutes, u.FrequencyMinutes)
	takeStr(&wc.UnbiddenInk.Prompt, u.Prompt)
	takeStr(&wc.UnbiddenInk.ChatgptApiToken, u.ChatgptApiToken)
	takeStr(&wc.UnbiddenInk.NextScheduled, u.NextScheduled)
	if u.PromptPresets != nil {
		wc.UnbiddenInk.PromptPresets = u.PromptPresets
	}
}

func mergeButtons(b *deviceapi.ButtonsSection, wc *schema.WorkingCopy) {
	takeInt(&wc.Buttons.DebounceTime, b.DebounceTime)
	takeInt(&wc.Buttons.LongPressTime, b.LongPressTime)
	takeBool(&wc.Buttons.ActiveLow, b.ActiveLow)
	takeInt(&wc.Buttons.MinInterval, b.MinInterval)
	takeInt(&wc.Buttons.MaxPerMinute, b.MaxPerMinute)

	for i, src := range []*deviceapi.ButtonConfig{b.Button1, b.Button2, b.Button3, b.Button4} {
		if src == nil {
			continue
		}
		dst := &wc.Buttons.Buttons[i]
		takeInt(&dst.Gpio, src.Gpio)
		takeStr(&dst.ShortAction, src.ShortAction)
		takeStr(&dst.ShortMqttTopic, src.ShortMqttTopic)
		takeStr(&dst.LongAction, src.LongAction)
		takeStr(&dst.LongMqttTopic, src.LongMqttTopic)
		takeStr(&dst.ShortLedEffect, src.ShortLedEffect)
		takeStr(&dst.LongLedEffect, src.LongLedEffect)
	}
}

func mergeLeds(l *deviceapi.LedsSection, wc *schema.WorkingCopy) {
	takeBool(&wc.Leds.Enabled, l.Enabled)
	takeInt(&wc.Leds.Pin, l.Pin)
	takeInt(&wc.Leds.Count, l.Count)
	takeInt(&wc.Leds.Brightness, l.Brightness)
	takeInt(&wc.Leds.RefreshRate, l.RefreshRate)
}

func mergeGPIO(g *deviceapi.GPIOSection, wc *schema.WorkingCopy) {
	wc.Pins.Available = append([]int(nil), g.AvailablePins...)
	wc.Pins.Safe = append([]int(nil), g.SafePins...)
	wc.Pins.Descriptions = make(map[int]string, len(g.PinDescriptions))
	for k, v := range g.PinDescriptions {
		if pin, err := strconv.Atoi(k); err == nil {
			wc.Pins.Descriptions[pin] = v
		}
	}
}

func takeStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func takeInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func takeBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
