package session

import (
	"fmt"
	"sort"

	"github.com/scribeworks/scribe-cfg/internal/schema"
)

// Subsystem identifies one pin-consuming hardware subsystem. The ordering
// is document order; when two subsystems claim the same pin, the earlier
// one is treated as the owner and the later one is blocked.
type Subsystem int

const (
	SubsystemPrinterTX Subsystem = iota
	SubsystemPrinterRX
	SubsystemPrinterDTR
	SubsystemButton1
	SubsystemButton2
	SubsystemButton3
	SubsystemButton4
	SubsystemLedStrip
)

func (s Subsystem) Label() string {
	switch s {
	case SubsystemPrinterTX:
		return "Printer TX"
	case SubsystemPrinterRX:
		return "Printer RX"
	case SubsystemPrinterDTR:
		return "Printer DTR"
	case SubsystemButton1, SubsystemButton2, SubsystemButton3, SubsystemButton4:
		return fmt.Sprintf("Button %d", int(s-SubsystemButton1)+1)
	case SubsystemLedStrip:
		return "LED strip"
	default:
		return "Unknown"
	}
}

// FieldPath returns the working-copy path holding this subsystem's pin.
func (s Subsystem) FieldPath() string {
	switch s {
	case SubsystemPrinterTX:
		return "device.printerTxPin"
	case SubsystemPrinterRX:
		return "device.printerRxPin"
	case SubsystemPrinterDTR:
		return "device.printerDtrPin"
	case SubsystemButton1, SubsystemButton2, SubsystemButton3, SubsystemButton4:
		return fmt.Sprintf("buttons.button%d.gpio", int(s-SubsystemButton1)+1)
	case SubsystemLedStrip:
		return "leds.pin"
	default:
		return ""
	}
}

// Assignment pairs a subsystem with its currently configured pin.
type Assignment struct {
	Subsystem Subsystem
	Pin       int
}

// PinOption describes one candidate pin for a subsystem being configured.
type PinOption struct {
	Pin         int
	Description string

	// IsSafe: the pin is on the board's electrically-safe list.
	IsSafe bool

	// InUse: the pin is held by a different subsystem than the one being
	// configured.
	InUse bool

	// AssignedTo is the owning subsystem's label when InUse.
	AssignedTo string

	// Available: selectable without creating a conflict. The unassigned
	// sentinel is always available.
	Available bool
}

// Assignments lists every subsystem's pin in document order, including
// unassigned ones.
func Assignments(wc *schema.WorkingCopy) []Assignment {
	out := []Assignment{
		{SubsystemPrinterTX, wc.Device.PrinterTxPin},
		{SubsystemPrinterRX, wc.Device.PrinterRxPin},
		{SubsystemPrinterDTR, wc.Device.PrinterDtrPin},
	}
	for i := range wc.Buttons.Buttons {
		out = append(out, Assignment{SubsystemButton1 + Subsystem(i), wc.Buttons.Buttons[i].Gpio})
	}
	out = append(out, Assignment{SubsystemLedStrip, wc.Leds.Pin})
	return out
}

// UsedPins maps each assigned pin to its owning subsystem. The unassigned
// sentinel is never counted. When two subsystems hold the same pin, the
// first in document order owns it.
func UsedPins(wc *schema.WorkingCopy) map[int]Subsystem {
	used := make(map[int]Subsystem)
	for _, a := range Assignments(wc) {
		if a.Pin == schema.PinUnassigned {
			continue
		}
		if _, taken := used[a.Pin]; !taken {
			used[a.Pin] = a.Subsystem
		}
	}
	return used
}

// PinOptions computes the candidate pins for one subsystem from the current
// working copy. Pure: the same working copy always yields the same options,
// so callers can recompute on every edit. The unassigned sentinel leads the
// list and is always available.
func PinOptions(wc *schema.WorkingCopy, target Subsystem) []PinOption {
	used := UsedPins(wc)

	options := []PinOption{{
		Pin:         schema.PinUnassigned,
		Description: "Not connected",
		Available:   true,
	}}

	pins := append([]int(nil), wc.Pins.Available...)
	sort.Ints(pins)

	for _, pin := range pins {
		opt := PinOption{
			Pin:         pin,
			Description: wc.Pins.Description(pin),
			IsSafe:      wc.Pins.IsSafe(pin),
		}
		if owner, taken := used[pin]; taken && owner != target {
			opt.InUse = true
			opt.AssignedTo = owner.Label()
		}
		opt.Available = opt.IsSafe && !opt.InUse
		options = append(options, opt)
	}

	return options
}

// PinConflicts returns, for every subsystem whose pin is already owned by an
// earlier subsystem, a field-path keyed message naming the owner. An empty
// map means no conflicts.
func PinConflicts(wc *schema.WorkingCopy) map[string]string {
	used := UsedPins(wc)
	conflicts := make(map[string]string)
	for _, a := range Assignments(wc) {
		if a.Pin == schema.PinUnassigned {
			continue
		}
		if owner := used[a.Pin]; owner != a.Subsystem {
			conflicts[a.Subsystem.FieldPath()] = fmt.Sprintf("GPIO %d is already used by %s", a.Pin, owner.Label())
		}
	}
	return conflicts
}
