package schema

// Button action identifiers understood by the firmware. The empty string
// means the press is unbound.
var ButtonActions = []string{
	"",
	"JOKE",
	"RIDDLE",
	"QUOTE",
	"QUIZ",
	"NEWS",
	"CHARACTER_TEST",
	"POKE",
	"UNBIDDEN_INK",
	"MEMO1",
	"MEMO2",
	"MEMO3",
	"MEMO4",
}

// LED effect identifiers understood by the firmware.
var LedEffects = []string{
	"chase_single",
	"chase_multi",
	"rainbow",
	"twinkle",
	"pulse",
	"matrix",
	"none",
}

// IsValidAction reports whether s is a recognised button action.
func IsValidAction(s string) bool {
	for _, a := range ButtonActions {
		if a == s {
			return true
		}
	}
	return false
}

// IsValidLedEffect reports whether s is a recognised LED effect.
func IsValidLedEffect(s string) bool {
	for _, e := range LedEffects {
		if e == s {
			return true
		}
	}
	return false
}

// Factory defaults matching the firmware's compiled-in configuration. Used
// to fill fields the device response omits, so the working copy is always
// fully populated.
func Defaults() *WorkingCopy {
	wc := &WorkingCopy{
		Device: DeviceSettings{
			Timezone:      "Europe/London",
			MaxCharacters: 1000,
			PrinterTxPin:  21,
			PrinterRxPin:  PinUnassigned,
			PrinterDtrPin: PinUnassigned,
		},
		MQTT: MQTTSettings{
			Port: 1883,
		},
		UnbiddenInk: UnbiddenInkSettings{
			StartHour:        8,
			EndHour:          22,
			FrequencyMinutes: 60,
			Prompt:           "Generate a short, surprising creative piece: a tiny story, an unusual fact, a poem, or a thought experiment.",
		},
		Buttons: ButtonsSettings{
			DebounceTime:  50,
			LongPressTime: 2000,
			ActiveLow:     true,
			MinInterval:   5000,
			MaxPerMinute:  10,
		},
		Leds: LedSettings{
			Pin:         20,
			Count:       30,
			Brightness:  100,
			RefreshRate: 60,
		},
	}

	defaultActions := [ButtonCount]struct {
		short, shortEffect, long, longEffect string
	}{
		{"JOKE", "chase_single", "CHARACTER_TEST", "pulse"},
		{"RIDDLE", "chase_multi", "CHARACTER_TEST", "pulse"},
		{"QUOTE", "rainbow", "CHARACTER_TEST", "pulse"},
		{"QUIZ", "twinkle", "CHARACTER_TEST", "pulse"},
	}
	defaultPins := [ButtonCount]int{4, 5, 6, 7}

	for i := range wc.Buttons.Buttons {
		wc.Buttons.Buttons[i] = ButtonSettings{
			Gpio:           defaultPins[i],
			ShortAction:    defaultActions[i].short,
			ShortLedEffect: defaultActions[i].shortEffect,
			LongAction:     defaultActions[i].long,
			LongLedEffect:  defaultActions[i].longEffect,
		}
	}

	return wc
}
