package session

import (
	"testing"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }
func boolp(b bool) *bool    { return &b }

func TestMergeFullDocument(t *testing.T) {
	doc := &deviceapi.Document{
		Device: &deviceapi.DeviceSection{
			Owner:        strp("Pat"),
			Timezone:     strp("Australia/Sydney"),
			PrinterTxPin: intp(21),
			WiFi: &deviceapi.WiFiSection{
				SSID:     strp("Home"),
				Password: strp("●●●●●●●●"),
				Status: &deviceapi.WiFiStatus{
					Connected:  boolp(true),
					MacAddress: strp("AA:BB:CC:DD:EE:FF"),
				},
			},
		},
		MQTT: &deviceapi.MQTTSection{
			Enabled: boolp(true),
			Server:  strp("broker.local"),
			Port:    intp(8883),
		},
		UnbiddenInk: &deviceapi.UnbiddenInkSection{
			Enabled:          boolp(true),
			FrequencyMinutes: intp(120),
		},
		Buttons: &deviceapi.ButtonsSection{
			Button2: &deviceapi.ButtonConfig{Gpio: intp(10), ShortAction: strp("NEWS")},
		},
		Leds: &deviceapi.LedsSection{Pin: intp(2), Brightness: intp(200)},
		GPIO: &deviceapi.GPIOSection{
			AvailablePins:   []int{2, 4, 10, 21},
			SafePins:        []int{2, 4, 10, 21},
			PinDescriptions: map[string]string{"2": "Safe", "nonsense": "skipped"},
		},
		Memos: &deviceapi.MemosSection{Memo1: strp("Call the plumber")},
	}

	wc, warnings := Merge(doc)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if wc.Device.Owner != "Pat" || wc.Device.Timezone != "Australia/Sydney" {
		t.Errorf("device identity not merged: %+v", wc.Device)
	}
	if wc.Device.WiFi.SSID != "Home" || !wc.Device.WiFi.Connected {
		t.Errorf("wifi not merged: %+v", wc.Device.WiFi)
	}
	if wc.MQTT.Port != 8883 || wc.MQTT.Server != "broker.local" {
		t.Errorf("mqtt not merged: %+v", wc.MQTT)
	}
	if wc.UnbiddenInk.FrequencyMinutes != 120 {
		t.Errorf("unbiddenInk not merged: %+v", wc.UnbiddenInk)
	}
	if wc.Buttons.Buttons[1].Gpio != 10 || wc.Buttons.Buttons[1].ShortAction != "NEWS" {
		t.Errorf("button2 not merged: %+v", wc.Buttons.Buttons[1])
	}
	if wc.Leds.Pin != 2 || wc.Leds.Brightness != 200 {
		t.Errorf("leds not merged: %+v", wc.Leds)
	}
	if wc.Pins.Descriptions[2] != "Safe" {
		t.Errorf("pin descriptions not merged: %v", wc.Pins.Descriptions)
	}
	if _, ok := wc.Pins.Descriptions[0]; ok {
		t.Error("unparseable pin key should be skipped")
	}
	if wc.Memos[0] != "Call the plumber" {
		t.Errorf("memo1 not merged: %q", wc.Memos[0])
	}
}

// Fields absent from the response keep their defaults; nothing comes back
// "missing".
func TestMergePartialDocumentFallsBackToDefaults(t *testing.T) {
	doc := &deviceapi.Document{
		Device: &deviceapi.DeviceSection{Owner: strp("Pat")},
		MQTT:   &deviceapi.MQTTSection{Server: strp("broker.local")},
	}

	wc, warnings := Merge(doc)

	if wc.Device.Timezone == "" {
		t.Error("absent timezone should fall back to the default, not empty")
	}
	if wc.MQTT.Port != 1883 {
		t.Errorf("absent mqtt port = %d, want default 1883", wc.MQTT.Port)
	}
	if wc.Leds.Count != 30 {
		t.Errorf("absent leds section: count = %d, want default 30", wc.Leds.Count)
	}
	if wc.Buttons.Buttons[0].Gpio != 4 {
		t.Errorf("absent buttons section: button1 gpio = %d, want default 4", wc.Buttons.Buttons[0].Gpio)
	}

	// Missing sections warn but never fail
	if len(warnings) == 0 {
		t.Error("missing sections should produce warnings")
	}
	for _, w := range warnings {
		t.Logf("warning: %s", w)
	}
}

func TestMergeEmptyDocument(t *testing.T) {
	wc, warnings := Merge(&deviceapi.Document{})
	if wc == nil {
		t.Fatal("merge of an empty document must still produce a working copy")
	}
	if len(warnings) != 6 {
		t.Errorf("got %d warnings, want 6 (one per missing section)", len(warnings))
	}
}
