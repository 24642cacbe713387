package schema

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		path string
		kind FieldKind
	}{
		{"device.owner", KindString},
		{"device.wifi.password", KindSecret},
		{"mqtt.port", KindNumber},
		{"mqtt.enabled", KindBool},
		{"buttons.button3.shortAction", KindEnum},
		{"buttons.button1.gpio", KindPin},
		{"leds.pin", KindPin},
		{"memos.memo4", KindString},
	}

	for _, tt := range tests {
		f := Lookup(tt.path)
		if f == nil {
			t.Errorf("Lookup(%q) = nil", tt.path)
			continue
		}
		if f.Kind != tt.kind {
			t.Errorf("Lookup(%q).Kind = %s, want %s", tt.path, f.Kind, tt.kind)
		}
	}

	if Lookup("device.firmwareVersion") != nil {
		t.Error("read-only fields must not be editable")
	}
	if Lookup("no.such.path") != nil {
		t.Error("unknown path should return nil")
	}
}

func TestFieldGetSetRoundTrip(t *testing.T) {
	wc := Defaults()

	owner := Lookup("device.owner")
	owner.Set(wc, "Alex")
	if got := owner.Get(wc); got != "Alex" {
		t.Errorf("device.owner = %v, want Alex", got)
	}

	gpio := Lookup("buttons.button2.gpio")
	gpio.Set(wc, 10)
	if wc.Buttons.Buttons[1].Gpio != 10 {
		t.Errorf("button2 gpio = %d, want 10", wc.Buttons.Buttons[1].Gpio)
	}
	// Closure must capture the right index
	if wc.Buttons.Buttons[0].Gpio != 4 {
		t.Errorf("button1 gpio changed unexpectedly: %d", wc.Buttons.Buttons[0].Gpio)
	}

	memo := Lookup("memos.memo2")
	memo.Set(wc, "pick up parcel")
	if wc.Memos[1] != "pick up parcel" {
		t.Errorf("memo2 = %q", wc.Memos[1])
	}
}

func TestParseValue(t *testing.T) {
	port := Lookup("mqtt.port")
	if v, err := port.ParseValue("1883"); err != nil || v != 1883 {
		t.Errorf("ParseValue(1883) = %v, %v", v, err)
	}
	if _, err := port.ParseValue("not-a-number"); err == nil {
		t.Error("expected error for non-numeric port")
	}

	enabled := Lookup("mqtt.enabled")
	if v, err := enabled.ParseValue("true"); err != nil || v != true {
		t.Errorf("ParseValue(true) = %v, %v", v, err)
	}
	if _, err := enabled.ParseValue("yep"); err == nil {
		t.Error("expected error for non-bool value")
	}

	pin := Lookup("leds.pin")
	if v, err := pin.ParseValue("-1"); err != nil || v != -1 {
		t.Errorf("ParseValue(-1) = %v, %v", v, err)
	}
}

func TestDefaults(t *testing.T) {
	wc := Defaults()

	if wc.Leds.Count != 30 || wc.Leds.Brightness != 100 || wc.Leds.RefreshRate != 60 {
		t.Errorf("unexpected LED defaults: %+v", wc.Leds)
	}
	if wc.Device.PrinterTxPin != 21 {
		t.Errorf("printer TX pin = %d, want 21", wc.Device.PrinterTxPin)
	}
	if wc.Device.PrinterRxPin != PinUnassigned || wc.Device.PrinterDtrPin != PinUnassigned {
		t.Error("RX and DTR pins should default to unassigned")
	}

	wantPins := [ButtonCount]int{4, 5, 6, 7}
	for i, b := range wc.Buttons.Buttons {
		if b.Gpio != wantPins[i] {
			t.Errorf("button%d gpio = %d, want %d", i+1, b.Gpio, wantPins[i])
		}
		if !IsValidAction(b.ShortAction) || !IsValidLedEffect(b.ShortLedEffect) {
			t.Errorf("button%d default bindings invalid: %+v", i+1, b)
		}
	}
}

func TestClone(t *testing.T) {
	wc := Defaults()
	wc.Pins = PinCatalog{
		Available:    []int{2, 4, 5},
		Safe:         []int{2, 4},
		Descriptions: map[int]string{4: "Safe"},
	}

	clone := wc.Clone()
	clone.Device.Owner = "changed"
	clone.Pins.Descriptions[4] = "changed"
	clone.Pins.Safe[0] = 99

	if wc.Device.Owner == "changed" {
		t.Error("scalar mutation leaked into original")
	}
	if wc.Pins.Descriptions[4] != "Safe" {
		t.Error("map mutation leaked into original")
	}
	if wc.Pins.Safe[0] != 2 {
		t.Error("slice mutation leaked into original")
	}
}

func TestPinCatalogIsSafe(t *testing.T) {
	c := PinCatalog{Safe: []int{2, 4, 5}}
	if !c.IsSafe(4) {
		t.Error("pin 4 should be safe")
	}
	if c.IsSafe(13) {
		t.Error("pin 13 should not be safe")
	}
}
