package session

import (
	"testing"

	"github.com/scribeworks/scribe-cfg/internal/schema"
)

func testWorkingCopy() *schema.WorkingCopy {
	wc := schema.Defaults()
	wc.Pins = schema.PinCatalog{
		Available: []int{2, 4, 5, 6, 7, 10, 13, 20, 21},
		Safe:      []int{2, 4, 5, 6, 7, 10, 20, 21},
		Descriptions: map[int]string{
			13: "Boot strapping pin",
		},
	}
	return wc
}

func TestUsedPinsExcludesSentinel(t *testing.T) {
	wc := testWorkingCopy()
	// RX and DTR default to unassigned
	used := UsedPins(wc)

	if _, ok := used[schema.PinUnassigned]; ok {
		t.Error("sentinel must never appear in used pins")
	}
	// Defaults: TX 21, buttons 4/5/6/7, LED strip 20
	want := map[int]Subsystem{
		21: SubsystemPrinterTX,
		4:  SubsystemButton1,
		5:  SubsystemButton2,
		6:  SubsystemButton3,
		7:  SubsystemButton4,
		20: SubsystemLedStrip,
	}
	if len(used) != len(want) {
		t.Fatalf("used pins = %v, want %v", used, want)
	}
	for pin, sub := range want {
		if used[pin] != sub {
			t.Errorf("pin %d owned by %s, want %s", pin, used[pin].Label(), sub.Label())
		}
	}
}

func TestUsedPinsDocumentOrderWins(t *testing.T) {
	wc := testWorkingCopy()
	wc.Buttons.Buttons[0].Gpio = 20 // same as LED strip, button comes first

	used := UsedPins(wc)
	if used[20] != SubsystemButton1 {
		t.Errorf("pin 20 owned by %s, want Button 1 (first in document order)", used[20].Label())
	}
}

func TestPinOptionsConflict(t *testing.T) {
	wc := testWorkingCopy()
	wc.Leds.Pin = 4 // collides with button 1's default

	var opt4 *PinOption
	opts := PinOptions(wc, SubsystemLedStrip)
	for i := range opts {
		if opts[i].Pin == 4 {
			opt4 = &opts[i]
			break
		}
	}
	if opt4 == nil {
		t.Fatal("pin 4 missing from options")
	}
	if opt4.Available {
		t.Error("pin held by another subsystem must not be available")
	}
	if !opt4.InUse || opt4.AssignedTo != "Button 1" {
		t.Errorf("pin 4 should show as in use by Button 1, got %+v", opt4)
	}
}

func TestPinOptionsOwnPinNotInUse(t *testing.T) {
	wc := testWorkingCopy()

	for _, opt := range PinOptions(wc, SubsystemLedStrip) {
		if opt.Pin == 20 {
			if opt.InUse {
				t.Error("a subsystem's own pin must not count as in use for itself")
			}
			if !opt.Available {
				t.Error("a subsystem's own pin must stay available")
			}
		}
	}
}

func TestPinOptionsSentinelAlwaysAvailable(t *testing.T) {
	wc := testWorkingCopy()
	opts := PinOptions(wc, SubsystemButton1)

	if opts[0].Pin != schema.PinUnassigned {
		t.Fatal("sentinel should lead the option list")
	}
	if !opts[0].Available {
		t.Error("sentinel must always be available")
	}
}

func TestPinOptionsUnsafePin(t *testing.T) {
	wc := testWorkingCopy()

	for _, opt := range PinOptions(wc, SubsystemButton1) {
		if opt.Pin == 13 {
			if opt.IsSafe || opt.Available {
				t.Errorf("pin 13 is off the safe list, got %+v", opt)
			}
			if opt.Description != "Boot strapping pin" {
				t.Errorf("description = %q", opt.Description)
			}
		}
	}
}

func TestPinOptionsPure(t *testing.T) {
	wc := testWorkingCopy()
	a := PinOptions(wc, SubsystemButton2)
	b := PinOptions(wc, SubsystemButton2)

	if len(a) != len(b) {
		t.Fatal("repeated calls disagree")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("option %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPinConflicts(t *testing.T) {
	wc := testWorkingCopy()
	if conflicts := PinConflicts(wc); len(conflicts) != 0 {
		t.Errorf("defaults should be conflict-free, got %v", conflicts)
	}

	wc.Leds.Pin = 4
	conflicts := PinConflicts(wc)
	msg, ok := conflicts["leds.pin"]
	if !ok {
		t.Fatalf("expected conflict at leds.pin, got %v", conflicts)
	}
	if msg != "GPIO 4 is already used by Button 1" {
		t.Errorf("message = %q", msg)
	}
	if _, ok := conflicts["buttons.button1.gpio"]; ok {
		t.Error("the document-order owner must not be flagged")
	}
}

func TestPinConflictsSentinelExempt(t *testing.T) {
	wc := testWorkingCopy()
	wc.Device.PrinterRxPin = schema.PinUnassigned
	wc.Device.PrinterDtrPin = schema.PinUnassigned

	if conflicts := PinConflicts(wc); len(conflicts) != 0 {
		t.Errorf("two unassigned subsystems must not conflict, got %v", conflicts)
	}
}
