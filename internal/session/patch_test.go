package session

import (
	"encoding/json"
	"testing"

	"github.com/scribeworks/scribe-cfg/internal/schema"
)

// A load immediately followed by a save must produce an empty payload: no
// plain field differs from the baseline and no secret is touched.
func TestBuildPayloadZeroEditsIsEmpty(t *testing.T) {
	wc := validWorkingCopy()
	wc.Device.WiFi.Password = "●●●●●●●●"
	wc.MQTT.Password = "●●●●"
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	patch, memos := BuildPayload(baseline, wc, secrets)
	if !patch.IsEmpty() {
		raw, _ := json.Marshal(patch)
		t.Errorf("zero-edit payload should be empty, got %s", raw)
	}
	if memos != nil {
		t.Error("zero-edit memos payload should be nil")
	}
}

func TestBuildPayloadOnlyChangedFields(t *testing.T) {
	wc := validWorkingCopy()
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	wc.Device.Owner = "Sam"
	wc.Leds.Brightness = 255

	patch, _ := BuildPayload(baseline, wc, secrets)

	if patch.Device == nil || patch.Device.Owner == nil || *patch.Device.Owner != "Sam" {
		t.Error("changed owner missing from payload")
	}
	if patch.Device.Timezone != nil {
		t.Error("unchanged timezone leaked into payload")
	}
	if patch.Leds == nil || patch.Leds.Brightness == nil || *patch.Leds.Brightness != 255 {
		t.Error("changed brightness missing from payload")
	}
	if patch.MQTT != nil || patch.UnbiddenInk != nil || patch.Buttons != nil {
		t.Error("untouched sections leaked into payload")
	}
}

// Untouched secrets are omitted entirely, even though the working copy holds
// the server's mask. Sending the mask would overwrite the real secret.
func TestBuildPayloadSecretNonRegression(t *testing.T) {
	wc := validWorkingCopy()
	wc.MQTT.Password = "●●●●●●●●"
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	// Change a plain field in the same section as the secret
	wc.MQTT.Server = "other.broker.local"

	patch, _ := BuildPayload(baseline, wc, secrets)
	if patch.MQTT == nil || patch.MQTT.Server == nil {
		t.Fatal("changed server missing from payload")
	}
	if patch.MQTT.Password != nil {
		t.Error("untouched secret must be omitted from the payload")
	}
}

func TestBuildPayloadTouchedSecretIncluded(t *testing.T) {
	wc := validWorkingCopy()
	wc.Device.WiFi.Password = "●●●●●●●●"
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	secrets.MarkTouched("device.wifi.password", "brandNewPass1")
	wc.Device.WiFi.Password = "brandNewPass1"

	patch, _ := BuildPayload(baseline, wc, secrets)
	if patch.Device == nil || patch.Device.WiFi == nil || patch.Device.WiFi.Password == nil {
		t.Fatal("touched secret missing from payload")
	}
	if *patch.Device.WiFi.Password != "brandNewPass1" {
		t.Errorf("password = %q", *patch.Device.WiFi.Password)
	}
}

func TestBuildPayloadRevertedSecretOmitted(t *testing.T) {
	wc := validWorkingCopy()
	wc.Device.WiFi.Password = "●●●●●●●●"
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	secrets.MarkTouched("device.wifi.password", "tempEdit12345")
	wc.Device.WiFi.Password = "tempEdit12345"
	secrets.MarkTouched("device.wifi.password", "●●●●●●●●")
	wc.Device.WiFi.Password = "●●●●●●●●"

	patch, _ := BuildPayload(baseline, wc, secrets)
	if !patch.IsEmpty() {
		t.Error("a reverted secret edit must leave the payload empty")
	}
}

func TestBuildPayloadButtonDiff(t *testing.T) {
	wc := validWorkingCopy()
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	wc.Buttons.Buttons[2].ShortAction = "POKE"

	patch, _ := BuildPayload(baseline, wc, secrets)
	if patch.Buttons == nil || patch.Buttons.Button3 == nil {
		t.Fatal("button3 change missing from payload")
	}
	if *patch.Buttons.Button3.ShortAction != "POKE" {
		t.Errorf("shortAction = %q", *patch.Buttons.Button3.ShortAction)
	}
	if patch.Buttons.Button1 != nil || patch.Buttons.Button2 != nil || patch.Buttons.Button4 != nil {
		t.Error("unchanged buttons leaked into payload")
	}
	if patch.Buttons.Button3.Gpio != nil {
		t.Error("unchanged gpio leaked into the button patch")
	}
}

// Any memo edit sends all four: the firmware replaces the set wholesale.
func TestBuildPayloadMemosFullSection(t *testing.T) {
	wc := validWorkingCopy()
	wc.Memos = [schema.MemoCount]string{"a", "b", "c", "d"}
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	wc.Memos[1] = "changed"

	patch, memos := BuildPayload(baseline, wc, secrets)
	if !patch.IsEmpty() {
		t.Error("memo edits must not touch the config patch")
	}
	if memos == nil {
		t.Fatal("memo change missing from payload")
	}
	if memos.Memo1 != "a" || memos.Memo2 != "changed" || memos.Memo3 != "c" || memos.Memo4 != "d" {
		t.Errorf("memos payload = %+v", memos)
	}
}

func TestBuildPayloadPinChange(t *testing.T) {
	wc := validWorkingCopy()
	baseline := wc.Clone()
	secrets := NewSecretTracker(wc)

	wc.Device.PrinterDtrPin = 2 // was unassigned

	patch, _ := BuildPayload(baseline, wc, secrets)
	if patch.Device == nil || patch.Device.PrinterDtrPin == nil || *patch.Device.PrinterDtrPin != 2 {
		t.Error("DTR pin change missing from payload")
	}
}
