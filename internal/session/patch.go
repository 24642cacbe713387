package session

import (
	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/schema"
)

// BuildPayload produces the smallest document fragment representing the
// operator's edits: the working copy diffed against the baseline captured at
// load. Read-only fields are excluded by the patch types themselves. Secret
// fields are included only when the tracker says the operator entered a new
// value. An untouched secret is omitted entirely so the device keeps its
// stored value, and a load immediately followed by a save is a no-op.
//
// Memos come back separately: the firmware replaces the whole memo set on
// write, so any changed memo yields a full MemosPatch. A nil MemosPatch
// means no memo changed.
func BuildPayload(baseline, wc *schema.WorkingCopy, secrets *SecretTracker) (*deviceapi.DocumentPatch, *deviceapi.MemosPatch) {
	patch := &deviceapi.DocumentPatch{
		Device:      buildDevicePatch(baseline, wc, secrets),
		MQTT:        buildMQTTPatch(baseline, wc, secrets),
		UnbiddenInk: buildUnbiddenInkPatch(baseline, wc, secrets),
		Buttons:     buildButtonsPatch(baseline, wc),
		Leds:        buildLedsPatch(baseline, wc),
	}
	return patch, buildMemosPatch(baseline, wc)
}

func buildDevicePatch(baseline, wc *schema.WorkingCopy, secrets *SecretTracker) *deviceapi.DevicePatch {
	p := &deviceapi.DevicePatch{
		Owner:         strIfChanged(baseline.Device.Owner, wc.Device.Owner),
		Timezone:      strIfChanged(baseline.Device.Timezone, wc.Device.Timezone),
		PrinterTxPin:  intIfChanged(baseline.Device.PrinterTxPin, wc.Device.PrinterTxPin),
		PrinterRxPin:  intIfChanged(baseline.Device.PrinterRxPin, wc.Device.PrinterRxPin),
		PrinterDtrPin: intIfChanged(baseline.Device.PrinterDtrPin, wc.Device.PrinterDtrPin),
	}

	wifi := &deviceapi.WiFiPatch{
		SSID: strIfChanged(baseline.Device.WiFi.SSID, wc.Device.WiFi.SSID),
	}
	if secrets.IsTouched("device.wifi.password") {
		pw := wc.Device.WiFi.Password
		wifi.Password = &pw
	}
	if wifi.SSID != nil || wifi.Password != nil {
		p.WiFi = wifi
	}

	if p.Owner == nil && p.Timezone == nil && p.PrinterTxPin == nil &&
		p.PrinterRxPin == nil && p.PrinterDtrPin == nil && p.WiFi == nil {
		return nil
	}
	return p
}

func buildMQTTPatch(baseline, wc *schema.WorkingCopy, secrets *SecretTracker) *deviceapi.MQTTPatch {
	p := &deviceapi.MQTTPatch{
		Enabled:  boolIfChanged(baseline.MQTT.Enabled, wc.MQTT.Enabled),
		Server:   strIfChanged(baseline.MQTT.Server, wc.MQTT.Server),
		Port:     intIfChanged(baseline.MQTT.Port, wc.MQTT.Port),
		Username: strIfChanged(baseline.MQTT.Username, wc.MQTT.Username),
	}
	if secrets.IsTouched("mqtt.password") {
		pw := wc.MQTT.Password
		p.Password = &pw
	}

	if p.Enabled == nil && p.Server == nil && p.Port == nil && p.Username == nil && p.Password == nil {
		return nil
	}
	return p
}

func buildUnbiddenInkPatch(baseline, wc *schema.WorkingCopy, secrets *SecretTracker) *deviceapi.UnbiddenInkPatch {
	p := &deviceapi.UnbiddenInkPatch{
		Enabled:          boolIfChanged(baseline.UnbiddenInk.Enabled, wc.UnbiddenInk.Enabled),
		StartHour:        intIfChanged(baseline.UnbiddenInk.StartHour, wc.UnbiddenInk.StartHour),
		EndHour:          intIfChanged(baseline.UnbiddenInk.EndHour, wc.UnbiddenInk.EndHour),
		FrequencyMinutes: intIfChanged(baseline.UnbiddenInk.FrequencyMinutes, wc.UnbiddenInk.FrequencyMinutes),
		Prompt:           strIfChanged(baseline.UnbiddenInk.Prompt, wc.UnbiddenInk.Prompt),
	}
	if secrets.IsTouched("unbiddenInk.chatgptApiToken") {
		token := wc.UnbiddenInk.ChatgptApiToken
		p.ChatgptApiToken = &token
	}

	if p.Enabled == nil && p.StartHour == nil && p.EndHour == nil &&
		p.FrequencyMinutes == nil && p.Prompt == nil && p.ChatgptApiToken == nil {
		return nil
	}
	return p
}

func buildButtonsPatch(baseline, wc *schema.WorkingCopy) *deviceapi.ButtonsPatch {
	p := &deviceapi.ButtonsPatch{}
	slots := [schema.ButtonCount]**deviceapi.ButtonPatch{&p.Button1, &p.Button2, &p.Button3, &p.Button4}

	for i := 0; i < schema.ButtonCount; i++ {
		old, cur := &baseline.Buttons.Buttons[i], &wc.Buttons.Buttons[i]
		bp := &deviceapi.ButtonPatch{
			Gpio:           intIfChanged(old.Gpio, cur.Gpio),
			ShortAction:    strIfChanged(old.ShortAction, cur.ShortAction),
			ShortMqttTopic: strIfChanged(old.ShortMqttTopic, cur.ShortMqttTopic),
			LongAction:     strIfChanged(old.LongAction, cur.LongAction),
			LongMqttTopic:  strIfChanged(old.LongMqttTopic, cur.LongMqttTopic),
			ShortLedEffect: strIfChanged(old.ShortLedEffect, cur.ShortLedEffect),
			LongLedEffect:  strIfChanged(old.LongLedEffect, cur.LongLedEffect),
		}
		if bp.Gpio != nil || bp.ShortAction != nil || bp.ShortMqttTopic != nil ||
			bp.LongAction != nil || bp.LongMqttTopic != nil ||
			bp.ShortLedEffect != nil || bp.LongLedEffect != nil {
			*slots[i] = bp
		}
	}

	if p.IsEmpty() {
		return nil
	}
	return p
}

func buildLedsPatch(baseline, wc *schema.WorkingCopy) *deviceapi.LedsPatch {
	p := &deviceapi.LedsPatch{
		Pin:         intIfChanged(baseline.Leds.Pin, wc.Leds.Pin),
		Count:       intIfChanged(baseline.Leds.Count, wc.Leds.Count),
		Brightness:  intIfChanged(baseline.Leds.Brightness, wc.Leds.Brightness),
		RefreshRate: intIfChanged(baseline.Leds.RefreshRate, wc.Leds.RefreshRate),
	}
	if p.Pin == nil && p.Count == nil && p.Brightness == nil && p.RefreshRate == nil {
		return nil
	}
	return p
}

func buildMemosPatch(baseline, wc *schema.WorkingCopy) *deviceapi.MemosPatch {
	if baseline.Memos == wc.Memos {
		return nil
	}
	return &deviceapi.MemosPatch{
		Memo1: wc.Memos[0],
		Memo2: wc.Memos[1],
		Memo3: wc.Memos[2],
		Memo4: wc.Memos[3],
	}
}

func strIfChanged(old, new string) *string {
	if old == new {
		return nil
	}
	return &new
}

func intIfChanged(old, new int) *int {
	if old == new {
		return nil
	}
	return &new
}

func boolIfChanged(old, new bool) *bool {
	if old == new {
		return nil
	}
	return &new
}
