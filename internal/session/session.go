package session

import (
	"fmt"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/logging"
	"github.com/scribeworks/scribe-cfg/internal/schema"
)

// ValidationFailedError is returned by Save when the working copy fails
// validation. The payload is never sent in that case.
type ValidationFailedError struct {
	Errors Errors
}

func (e *ValidationFailedError) Error() string {
	if len(e.Errors) == 1 {
		for path, msg := range e.Errors {
			return fmt.Sprintf("%s: %s", path, msg)
		}
	}
	return fmt.Sprintf("%d fields failed validation", len(e.Errors))
}

// Session is one configuration editing session against one printer. It owns
// the working copy, the secret tracker and the scan coordinator, and is the
// only writer to all three.
type Session struct {
	svc      Service
	notifier Notifier

	working  *schema.WorkingCopy
	baseline *schema.WorkingCopy
	secrets  *SecretTracker
	scan     *ScanCoordinator

	loading bool
	saving  bool
}

// New creates a session. The notifier may be nil, in which case
// notifications are discarded. Call Load before anything else.
func New(svc Service, notifier Notifier) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Session{svc: svc, notifier: notifier}
}

// Loaded reports whether a document has been loaded.
func (s *Session) Loaded() bool { return s.working != nil }

// Working returns the working copy, or nil before a successful Load. The
// returned copy must only be mutated through session methods.
func (s *Session) Working() *schema.WorkingCopy { return s.working }

// Secrets returns the secret tracker, or nil before a successful Load.
func (s *Session) Secrets() *SecretTracker { return s.secrets }

// Scan returns the WiFi scan coordinator, or nil before a successful Load.
func (s *Session) Scan() *ScanCoordinator { return s.scan }

// Load fetches the device document and builds the session state: the merged
// working copy, a baseline clone for diffing, the secret baseline, and a
// scan coordinator seeded with the configured SSID. On failure the previous
// state is kept and the error is surfaced so the caller can retry. A Load
// while one is outstanding is a no-op.
func (s *Session) Load() error {
	if s.loading {
		return nil
	}
	s.loading = true
	defer func() { s.loading = false }()

	doc, err := s.svc.FetchDocument()
	if err != nil {
		s.notifier.Notify("Could not load printer settings: "+deviceapi.ShortMessage(err), SeverityError)
		return err
	}

	wc, warnings := Merge(doc)
	for _, w := range warnings {
		logging.Warn(w)
	}

	s.working = wc
	s.baseline = wc.Clone()
	s.secrets = NewSecretTracker(wc)
	s.scan = NewScanCoordinator(
		s.svc.ScanNetworks,
		func() string { return s.working.Device.WiFi.SSID },
		func(ssid string) { s.working.Device.WiFi.SSID = ssid },
	)
	return nil
}

// Set parses and applies a textual value to a field path. Secret fields are
// routed through the tracker so untouched placeholders are recognised.
// Unknown paths are an error; validation of the value itself happens at
// save time (or explicitly via Validate).
func (s *Session) Set(path, raw string) error {
	f := schema.Lookup(path)
	if f == nil {
		return fmt.Errorf("unknown setting %q", path)
	}
	v, err := f.ParseValue(raw)
	if err != nil {
		return err
	}
	return s.SetValue(path, v)
}

// SetValue applies a typed value to a field path.
func (s *Session) SetValue(path string, v any) error {
	if s.working == nil {
		return fmt.Errorf("no document loaded")
	}
	f := schema.Lookup(path)
	if f == nil {
		return fmt.Errorf("unknown setting %q", path)
	}

	if f.Kind == schema.KindSecret {
		s.secrets.MarkTouched(path, v.(string))
		f.Set(s.working, v)
		logging.LogFieldChange(path, "")
		return nil
	}

	f.Set(s.working, v)
	logging.LogFieldChange(path, fmt.Sprintf("%v", v))
	return nil
}

// Get returns a field's current value from the working copy.
func (s *Session) Get(path string) (any, error) {
	if s.working == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	f := schema.Lookup(path)
	if f == nil {
		return nil, fmt.Errorf("unknown setting %q", path)
	}
	return f.Get(s.working), nil
}

// Validate runs the full rule table against the working copy.
func (s *Session) Validate() Errors {
	return Validate(s.working, s.secrets)
}

// HasUnsavedChanges reports whether the working copy differs from the last
// loaded or saved state.
func (s *Session) HasUnsavedChanges() bool {
	if s.working == nil {
		return false
	}
	patch, memos := BuildPayload(s.baseline, s.working, s.secrets)
	return !patch.IsEmpty() || memos != nil
}

// PinOptionsFor lists the candidate pins for one subsystem.
func (s *Session) PinOptionsFor(target Subsystem) []PinOption {
	return PinOptions(s.working, target)
}

// Save validates the working copy and submits the minimal diff. Validation
// failure blocks the save entirely; nothing reaches the device. A transport
// or device rejection leaves the working copy untouched so the operator can
// edit and resubmit; there is no automatic retry of the whole save. On
// success the baseline and secret tracker are reset, making the session
// clean. A Save while one is outstanding is a no-op.
func (s *Session) Save() error {
	if s.saving {
		return nil
	}
	if s.working == nil {
		return fmt.Errorf("no document loaded")
	}
	s.saving = true
	defer func() { s.saving = false }()

	if errs := s.Validate(); !errs.IsValid() {
		err := &ValidationFailedError{Errors: errs}
		s.notifier.Notify(err.Error(), SeverityError)
		return err
	}

	patch, memos := BuildPayload(s.baseline, s.working, s.secrets)

	if err := s.svc.SaveConfig(patch); err != nil {
		s.notifier.Notify("Save failed: "+deviceapi.ShortMessage(err), SeverityError)
		return err
	}
	if memos != nil {
		if err := s.svc.SaveMemos(memos); err != nil {
			s.notifier.Notify("Saving memos failed: "+deviceapi.ShortMessage(err), SeverityError)
			return err
		}
	}

	s.baseline = s.working.Clone()
	s.secrets.Rebaseline(s.working)
	s.notifier.Notify("Settings saved", SeveritySuccess)
	return nil
}

// PreviewEffect runs a LED effect on the strip so the operator can see it
// before binding it to a button.
func (s *Session) PreviewEffect(effect string) error {
	if !schema.IsValidLedEffect(effect) {
		return fmt.Errorf("unknown LED effect %q", effect)
	}
	return s.svc.TriggerEffect(&deviceapi.EffectRequest{Effect: effect})
}

// LedsOff turns the strip off after a preview.
func (s *Session) LedsOff() error { return s.svc.LedsOff() }

// PrintTest sends a line of text to the thermal printer.
func (s *Session) PrintTest(message string) error { return s.svc.Print(message) }

// TestMQTT asks the printer to connect to the broker currently in the
// working copy. The password is sent only when the operator typed a new
// one; otherwise the request carries no password and the printer falls back
// to its stored secret.
func (s *Session) TestMQTT() error {
	if s.working == nil {
		return fmt.Errorf("no document loaded")
	}
	req := &deviceapi.MQTTTestRequest{
		Server:   s.working.MQTT.Server,
		Port:     s.working.MQTT.Port,
		Username: s.working.MQTT.Username,
	}
	if s.secrets.IsTouched("mqtt.password") {
		req.Password = s.working.MQTT.Password
	}
	return s.svc.TestMQTT(req)
}

// TestChatGPT asks the printer to verify the API token in the working copy.
// An untouched token is sent as empty so the printer uses its stored secret.
func (s *Session) TestChatGPT() error {
	if s.working == nil {
		return fmt.Errorf("no document loaded")
	}
	token := ""
	if s.secrets.IsTouched("unbiddenInk.chatgptApiToken") {
		token = s.working.UnbiddenInk.ChatgptApiToken
	}
	return s.svc.TestChatGPT(token)
}
