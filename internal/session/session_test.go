package session

import (
	"errors"
	"testing"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
)

// fakeService records calls and returns canned responses.
type fakeService struct {
	doc      *deviceapi.Document
	fetchErr error
	saveErr  error

	savedPatches []*deviceapi.DocumentPatch
	savedMemos   []*deviceapi.MemosPatch
	mqttTests    []*deviceapi.MQTTTestRequest
	tokenTests   []string
	printed      []string
	effects      []string

	onSaveConfig func()
}

func (f *fakeService) FetchDocument() (*deviceapi.Document, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.doc, nil
}

func (f *fakeService) SaveConfig(patch *deviceapi.DocumentPatch) error {
	if f.onSaveConfig != nil {
		f.onSaveConfig()
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedPatches = append(f.savedPatches, patch)
	return nil
}

func (f *fakeService) SaveMemos(memos *deviceapi.MemosPatch) error {
	f.savedMemos = append(f.savedMemos, memos)
	return nil
}

func (f *fakeService) ScanNetworks() ([]deviceapi.ScannedNetwork, error) {
	return nil, nil
}

func (f *fakeService) TriggerEffect(req *deviceapi.EffectRequest) error {
	f.effects = append(f.effects, req.Effect)
	return nil
}

func (f *fakeService) LedsOff() error { return nil }

func (f *fakeService) Print(message string) error {
	f.printed = append(f.printed, message)
	return nil
}

func (f *fakeService) TestMQTT(req *deviceapi.MQTTTestRequest) error {
	f.mqttTests = append(f.mqttTests, req)
	return nil
}

func (f *fakeService) TestChatGPT(token string) error {
	f.tokenTests = append(f.tokenTests, token)
	return nil
}

type recordingNotifier struct {
	messages   []string
	severities []Severity
}

func (n *recordingNotifier) Notify(message string, severity Severity) {
	n.messages = append(n.messages, message)
	n.severities = append(n.severities, severity)
}

func fakeDocument() *deviceapi.Document {
	return &deviceapi.Document{
		Device: &deviceapi.DeviceSection{
			Owner:    strp("Pat"),
			Timezone: strp("Europe/London"),
			WiFi: &deviceapi.WiFiSection{
				SSID:     strp("Home"),
				Password: strp("●●●●●●●●"),
			},
		},
		MQTT: &deviceapi.MQTTSection{
			Enabled:  boolp(false),
			Server:   strp("broker.local"),
			Port:     intp(1883),
			Username: strp("scribe"),
			Password: strp("●●●●"),
		},
		UnbiddenInk: &deviceapi.UnbiddenInkSection{Enabled: boolp(false)},
		Buttons:     &deviceapi.ButtonsSection{},
		Leds:        &deviceapi.LedsSection{Pin: intp(20)},
		GPIO: &deviceapi.GPIOSection{
			AvailablePins: []int{2, 4, 5, 6, 7, 10, 20, 21},
			SafePins:      []int{2, 4, 5, 6, 7, 10, 20, 21},
		},
	}
}

func loadedSession(t *testing.T, svc *fakeService) *Session {
	t.Helper()
	s := New(svc, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return s
}

func TestSessionLoad(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	if !s.Loaded() {
		t.Fatal("session should be loaded")
	}
	if s.Working().Device.Owner != "Pat" {
		t.Errorf("owner = %q", s.Working().Device.Owner)
	}
	if s.Scan() == nil || s.Scan().EffectiveSSID() != "Home" {
		t.Error("scan coordinator should be seeded with the configured SSID")
	}
	if s.HasUnsavedChanges() {
		t.Error("a fresh load has no unsaved changes")
	}
}

func TestSessionLoadFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := &fakeService{fetchErr: errors.New("connection refused")}
	s := New(svc, notifier)

	if err := s.Load(); err == nil {
		t.Fatal("expected load error")
	}
	if s.Loaded() {
		t.Error("failed load must leave the session unloaded")
	}
	if len(notifier.messages) == 0 || notifier.severities[0] != SeverityError {
		t.Error("load failure should notify the operator")
	}
}

func TestSessionSaveNoEdits(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(svc.savedPatches) != 1 || !svc.savedPatches[0].IsEmpty() {
		t.Error("zero-edit save must submit an empty patch")
	}
	if len(svc.savedMemos) != 0 {
		t.Error("zero-edit save must not submit memos")
	}
}

func TestSessionSetAndSave(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	notifier := &recordingNotifier{}
	s := New(svc, notifier)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	if err := s.Set("device.owner", "Sam"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("leds.brightness", "200"); err != nil {
		t.Fatal(err)
	}
	if !s.HasUnsavedChanges() {
		t.Error("edits should mark the session dirty")
	}

	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	patch := svc.savedPatches[0]
	if patch.Device == nil || *patch.Device.Owner != "Sam" {
		t.Error("owner edit missing from patch")
	}
	if patch.Leds == nil || *patch.Leds.Brightness != 200 {
		t.Error("brightness edit missing from patch")
	}
	if s.HasUnsavedChanges() {
		t.Error("successful save should leave the session clean")
	}
	last := notifier.severities[len(notifier.severities)-1]
	if last != SeveritySuccess {
		t.Errorf("expected success notification, got %s", last)
	}
}

func TestSessionSaveValidationBlocks(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	if err := s.Set("mqtt.port", "99999"); err != nil {
		t.Fatal(err)
	}

	err := s.Save()
	var vErr *ValidationFailedError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationFailedError, got %v", err)
	}
	if len(svc.savedPatches) != 0 {
		t.Error("an invalid working copy must never reach the device")
	}
}

func TestSessionSaveFailureKeepsEdits(t *testing.T) {
	svc := &fakeService{doc: fakeDocument(), saveErr: errors.New("device timeout")}
	s := loadedSession(t, svc)

	if err := s.Set("device.owner", "Sam"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err == nil {
		t.Fatal("expected save error")
	}

	if s.Working().Device.Owner != "Sam" {
		t.Error("failed save must leave the working copy untouched")
	}
	if !s.HasUnsavedChanges() {
		t.Error("failed save must keep the session dirty for resubmission")
	}
}

func TestSessionSaveReentrantIgnored(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	saves := 0
	svc.onSaveConfig = func() {
		saves++
		if saves == 1 {
			if err := s.Save(); err != nil {
				t.Errorf("reentrant save returned error: %v", err)
			}
		}
	}

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if saves != 1 {
		t.Errorf("save submitted %d times, want 1", saves)
	}
}

func TestSessionSecretRoutedThroughTracker(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	// Re-render writes the mask back: not an edit
	if err := s.Set("device.wifi.password", "●●●●●●●●"); err != nil {
		t.Fatal(err)
	}
	if s.Secrets().IsTouched("device.wifi.password") {
		t.Error("mask write-back must not touch the secret")
	}

	if err := s.Set("device.wifi.password", "newWifiPass99"); err != nil {
		t.Fatal(err)
	}
	if !s.Secrets().IsTouched("device.wifi.password") {
		t.Error("typed password must touch the secret")
	}

	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	patch := svc.savedPatches[0]
	if patch.Device == nil || patch.Device.WiFi == nil || patch.Device.WiFi.Password == nil {
		t.Fatal("touched password missing from patch")
	}
	if s.Secrets().IsTouched("device.wifi.password") {
		t.Error("successful save should rebaseline the tracker")
	}
}

func TestSessionMemoSave(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	if err := s.Set("memos.memo2", "buy milk"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	if len(svc.savedMemos) != 1 {
		t.Fatal("memo edit should submit a memos payload")
	}
	if svc.savedMemos[0].Memo2 != "buy milk" {
		t.Errorf("memo2 = %q", svc.savedMemos[0].Memo2)
	}
}

func TestSessionTestMQTTPasswordPolicy(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	// Untouched: the request carries no password, the device uses its own
	if err := s.TestMQTT(); err != nil {
		t.Fatal(err)
	}
	if svc.mqttTests[0].Password != "" {
		t.Error("untouched password must not be sent to the broker test")
	}

	if err := s.Set("mqtt.password", "brokerPass1"); err != nil {
		t.Fatal(err)
	}
	if err := s.TestMQTT(); err != nil {
		t.Fatal(err)
	}
	if svc.mqttTests[1].Password != "brokerPass1" {
		t.Error("typed password should be used for the broker test")
	}
	if svc.mqttTests[1].Server != "broker.local" {
		t.Errorf("server = %q", svc.mqttTests[1].Server)
	}
}

func TestSessionPreviewEffect(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	if err := s.PreviewEffect("rainbow"); err != nil {
		t.Fatal(err)
	}
	if len(svc.effects) != 1 || svc.effects[0] != "rainbow" {
		t.Errorf("effects = %v", svc.effects)
	}

	if err := s.PreviewEffect("strobe"); err == nil {
		t.Error("unknown effect should be rejected locally")
	}
}

func TestSessionSetUnknownPath(t *testing.T) {
	svc := &fakeService{doc: fakeDocument()}
	s := loadedSession(t, svc)

	if err := s.Set("device.firmwareVersion", "2.0"); err == nil {
		t.Error("read-only fields must not be settable")
	}
}
