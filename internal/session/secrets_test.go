package session

import (
	"testing"

	"github.com/scribeworks/scribe-cfg/internal/schema"
)

func TestSecretTrackerTouchDetection(t *testing.T) {
	wc := schema.Defaults()
	wc.Device.WiFi.Password = "●●●●"
	tracker := NewSecretTracker(wc)

	const path = "device.wifi.password"

	// Re-rendering the field's own mask must not touch it
	tracker.MarkTouched(path, "●●●●")
	if tracker.IsTouched(path) {
		t.Error("reassigning the baseline mask must not count as touched")
	}

	tracker.MarkTouched(path, "newSecret123")
	if !tracker.IsTouched(path) {
		t.Error("entering a new value must count as touched")
	}

	// Reverting the edit before save clears the flag
	tracker.MarkTouched(path, "●●●●")
	if tracker.IsTouched(path) {
		t.Error("reverting to the baseline must reset touched")
	}
}

func TestSecretTrackerMaskLookalikeIgnored(t *testing.T) {
	wc := schema.Defaults()
	wc.MQTT.Password = "ab●●●●●●●●yz"
	tracker := NewSecretTracker(wc)

	// A different mask-shaped value is still a display artifact, not an edit
	tracker.MarkTouched("mqtt.password", "●●●●●●●●")
	if tracker.IsTouched("mqtt.password") {
		t.Error("a mask-shaped value must never count as touched")
	}
}

func TestSecretTrackerEmptyBaseline(t *testing.T) {
	wc := schema.Defaults()
	tracker := NewSecretTracker(wc)

	const path = "unbiddenInk.chatgptApiToken"
	if tracker.HasStoredSecret(path) {
		t.Error("empty baseline means no stored secret")
	}

	tracker.MarkTouched(path, "sk-newtoken")
	if !tracker.IsTouched(path) {
		t.Error("setting a token on an empty baseline must count as touched")
	}

	tracker.MarkTouched(path, "")
	if tracker.IsTouched(path) {
		t.Error("clearing back to the empty baseline must reset touched")
	}
}

func TestSecretTrackerRebaseline(t *testing.T) {
	wc := schema.Defaults()
	wc.Device.WiFi.Password = "●●●●●●●●"
	tracker := NewSecretTracker(wc)

	tracker.MarkTouched("device.wifi.password", "hunter2hunter2")
	wc.Device.WiFi.Password = "hunter2hunter2"

	tracker.Rebaseline(wc)
	if tracker.IsTouched("device.wifi.password") {
		t.Error("rebaseline must clear touched flags")
	}
	if tracker.Baseline("device.wifi.password") != "hunter2hunter2" {
		t.Error("rebaseline must adopt the current value")
	}
}

func TestSecretTrackerUnknownPath(t *testing.T) {
	tracker := NewSecretTracker(schema.Defaults())
	tracker.MarkTouched("no.such.path", "value")
	if tracker.IsTouched("no.such.path") {
		t.Error("unknown paths are never touched")
	}
}
