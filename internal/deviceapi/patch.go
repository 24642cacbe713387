package deviceapi

// DocumentPatch is a partial configuration document for POST /api/config.
// The device applies it with merge-patch semantics: any field omitted here
// is left unchanged on the device. Patch types only carry user-editable
// fields, so read-only status can never be written back by construction.
//
// Secret fields (wifi.password, mqtt.password, unbiddenInk.chatgptApiToken)
// must only be set when the operator actually typed a new value; sending a
// masked placeholder would overwrite the stored secret with garbage.
type DocumentPatch struct {
	Device      *DevicePatch      `json:"device,omitempty"`
	MQTT        *MQTTPatch        `json:"mqtt,omitempty"`
	UnbiddenInk *UnbiddenInkPatch `json:"unbiddenInk,omitempty"`
	Buttons     *ButtonsPatch     `json:"buttons,omitempty"`
	Leds        *LedsPatch        `json:"leds,omitempty"`
}

// DevicePatch updates device identity, printer pins and WiFi credentials.
type DevicePatch struct {
	Owner         *string    `json:"owner,omitempty"`
	Timezone      *string    `json:"timezone,omitempty"`
	PrinterTxPin  *int       `json:"printerTxPin,omitempty"`
	PrinterRxPin  *int       `json:"printerRxPin,omitempty"`
	PrinterDtrPin *int       `json:"printerDtrPin,omitempty"`
	WiFi          *WiFiPatch `json:"wifi,omitempty"`
}

// WiFiPatch updates WiFi credentials.
type WiFiPatch struct {
	SSID     *string `json:"ssid,omitempty"`
	Password *string `json:"password,omitempty"`
}

// MQTTPatch updates broker configuration.
type MQTTPatch struct {
	Enabled  *bool   `json:"enabled,omitempty"`
	Server   *string `json:"server,omitempty"`
	Port     *int    `json:"port,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UnbiddenInkPatch updates the scheduled generation configuration.
type UnbiddenInkPatch struct {
	Enabled          *bool   `json:"enabled,omitempty"`
	StartHour        *int    `json:"startHour,omitempty"`
	EndHour          *int    `json:"endHour,omitempty"`
	FrequencyMinutes *int    `json:"frequencyMinutes,omitempty"`
	Prompt           *string `json:"prompt,omitempty"`
	ChatgptApiToken  *string `json:"chatgptApiToken,omitempty"`
}

// ButtonsPatch updates per-button configuration.
type ButtonsPatch struct {
	Button1 *ButtonPatch `json:"button1,omitempty"`
	Button2 *ButtonPatch `json:"button2,omitempty"`
	Button3 *ButtonPatch `json:"button3,omitempty"`
	Button4 *ButtonPatch `json:"button4,omitempty"`
}

// ButtonPatch updates one button's GPIO and action bindings.
type ButtonPatch struct {
	Gpio           *int    `json:"gpio,omitempty"`
	ShortAction    *string `json:"shortAction,omitempty"`
	ShortMqttTopic *string `json:"shortMqttTopic,omitempty"`
	LongAction     *string `json:"longAction,omitempty"`
	LongMqttTopic  *string `json:"longMqttTopic,omitempty"`
	ShortLedEffect *string `json:"shortLedEffect,omitempty"`
	LongLedEffect  *string `json:"longLedEffect,omitempty"`
}

// LedsPatch updates the LED strip configuration.
type LedsPatch struct {
	Pin         *int `json:"pin,omitempty"`
	Count       *int `json:"count,omitempty"`
	Brightness  *int `json:"brightness,omitempty"`
	RefreshRate *int `json:"refreshRate,omitempty"`
}

// MemosPatch updates the memos via POST /api/memos. The firmware requires
// all four fields to be present on every write, so this is a full-section
// replacement rather than a merge-patch.
type MemosPatch struct {
	Memo1 string `json:"memo1"`
	Memo2 string `json:"memo2"`
	Memo3 string `json:"memo3"`
	Memo4 string `json:"memo4"`
}

// IsEmpty reports whether the patch carries no changes at all. An empty
// patch means a save is a no-op from the device's perspective.
func (p *DocumentPatch) IsEmpty() bool {
	return p == nil || (p.Device == nil && p.MQTT == nil &&
		p.UnbiddenInk == nil && p.Buttons == nil && p.Leds == nil)
}

// IsEmpty reports whether the buttons patch carries no per-button changes.
func (p *ButtonsPatch) IsEmpty() bool {
	return p == nil || (p.Button1 == nil && p.Button2 == nil &&
		p.Button3 == nil && p.Button4 == nil)
}
