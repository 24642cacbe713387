package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/schema"
)

// Errors maps field paths to human-readable validation messages.
type Errors map[string]string

// IsValid reports whether no rule failed.
func (e Errors) IsValid() bool { return len(e) == 0 }

// Scheduled-generation interval bounds. The field is stored in minutes but
// the rule is about wall-clock spacing, so the check converts first.
const (
	minInkInterval = 15 * time.Minute
	maxInkInterval = 8 * time.Hour
)

// Validate runs the full rule table against the working copy and returns a
// field→message error map. Registry-declared bounds and enums are checked
// first, then cross-field rules and pin conflicts. Validation never mutates
// the working copy. Secret values never appear in messages.
func Validate(wc *schema.WorkingCopy, secrets *SecretTracker) Errors {
	errs := make(Errors)

	for _, path := range schema.Paths() {
		f := schema.Lookup(path)
		checkField(f, wc, errs)
	}

	checkRequired(wc, errs)
	checkTimezone(wc, errs)
	checkWiFi(wc, errs)
	checkMQTT(wc, errs)
	checkUnbiddenInk(wc, secrets, errs)
	checkPins(wc, errs)

	return errs
}

// checkField applies the registry-declared constraints: numeric ranges,
// enum membership, and string length caps.
func checkField(f *schema.FieldDef, wc *schema.WorkingCopy, errs Errors) {
	switch f.Kind {
	case schema.KindNumber:
		v := f.Get(wc).(int)
		if f.Min != 0 || f.Max != 0 {
			if v < f.Min || v > f.Max {
				errs[f.Path] = fmt.Sprintf("must be between %d and %d", f.Min, f.Max)
			}
		}
	case schema.KindEnum:
		v := f.Get(wc).(string)
		for _, allowed := range f.Enum {
			if v == allowed {
				return
			}
		}
		errs[f.Path] = fmt.Sprintf("%q is not a recognised value", v)
	case schema.KindString:
		v := f.Get(wc).(string)
		if f.MaxLen > 0 && len(v) > f.MaxLen {
			errs[f.Path] = fmt.Sprintf("must be at most %d characters", f.MaxLen)
		}
	case schema.KindSecret:
		v := f.Get(wc).(string)
		if f.MaxLen > 0 && len(v) > f.MaxLen {
			errs[f.Path] = fmt.Sprintf("must be at most %d characters", f.MaxLen)
		}
	}
}

func checkRequired(wc *schema.WorkingCopy, errs Errors) {
	if wc.Device.Owner == "" {
		errs["device.owner"] = "owner name is required"
	}
	if wc.Device.Timezone == "" {
		errs["device.timezone"] = "timezone is required"
	}
}

// checkTimezone applies the firmware's IANA format rule: Area/Location with
// at least one interior slash, no spaces, at most 50 characters, and only
// letters, digits, underscores, hyphens, plus signs and slashes.
func checkTimezone(wc *schema.WorkingCopy, errs Errors) {
	tz := wc.Device.Timezone
	if tz == "" {
		// Reported by the required rule.
		return
	}
	if len(tz) > 50 ||
		!strings.Contains(tz, "/") ||
		strings.HasPrefix(tz, "/") || strings.HasSuffix(tz, "/") ||
		!isTimezoneCharset(tz) {
		errs["device.timezone"] = "must be an IANA timezone like Europe/London"
	}
}

func isTimezoneCharset(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '_' || c == '/' || c == '-' || c == '+':
		default:
			return false
		}
	}
	return true
}

func checkWiFi(wc *schema.WorkingCopy, errs Errors) {
	if wc.Device.WiFi.SSID == "" {
		errs["device.wifi.ssid"] = "network name is required"
	}
	// A freshly typed WPA2 password must be 8-63 characters. Masked
	// placeholders and empty values stand for the stored secret and are
	// exempt.
	pw := wc.Device.WiFi.Password
	if pw != "" && !deviceapi.IsMaskedValue(pw) {
		if len(pw) < 8 || len(pw) > 63 {
			errs["device.wifi.password"] = "password must be 8-63 characters"
		}
	}
}

func checkMQTT(wc *schema.WorkingCopy, errs Errors) {
	if !wc.MQTT.Enabled {
		return
	}
	if wc.MQTT.Server == "" {
		errs["mqtt.server"] = "broker address is required when MQTT is enabled"
	} else if strings.IndexFunc(wc.MQTT.Server, isSpace) != -1 {
		errs["mqtt.server"] = "broker address must not contain whitespace"
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func checkUnbiddenInk(wc *schema.WorkingCopy, secrets *SecretTracker, errs Errors) {
	ink := &wc.UnbiddenInk
	if !ink.Enabled {
		return
	}

	if ink.StartHour >= ink.EndHour {
		errs["unbiddenInk.startHour"] = "start hour must be before end hour"
	}

	interval := time.Duration(ink.FrequencyMinutes) * time.Minute
	if interval < minInkInterval || interval > maxInkInterval {
		errs["unbiddenInk.frequencyMinutes"] = fmt.Sprintf(
			"interval must be between %s and %s", minInkInterval, maxInkInterval)
	}

	if ink.Prompt == "" {
		errs["unbiddenInk.prompt"] = "prompt is required when scheduled generation is enabled"
	}

	// The token is required only when the feature is on and the device
	// has no stored secret to fall back to.
	if ink.ChatgptApiToken == "" && (secrets == nil || !secrets.HasStoredSecret("unbiddenInk.chatgptApiToken")) {
		errs["unbiddenInk.chatgptApiToken"] = "API token is required when scheduled generation is enabled"
	}
}

func checkPins(wc *schema.WorkingCopy, errs Errors) {
	for path, msg := range PinConflicts(wc) {
		errs[path] = msg
	}

	// Assigned pins must be on the board's safe list when the device
	// reported one.
	if len(wc.Pins.Safe) == 0 {
		return
	}
	for _, a := range Assignments(wc) {
		if a.Pin == schema.PinUnassigned {
			continue
		}
		path := a.Subsystem.FieldPath()
		if _, conflicted := errs[path]; conflicted {
			continue
		}
		if !wc.Pins.IsSafe(a.Pin) {
			errs[path] = fmt.Sprintf("GPIO %d is not safe to use on this board", a.Pin)
		}
	}
}
