package session

import (
	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/schema"
)

// SecretTracker distinguishes "operator typed a new secret" from "field
// still shows the server's masked placeholder". The baseline is the exact
// string the server returned at load time, which may be a mask run or empty.
type SecretTracker struct {
	states map[string]*secretState
}

type secretState struct {
	baseline string
	touched  bool
}

// NewSecretTracker records the current value of every secret field in wc as
// that field's baseline.
func NewSecretTracker(wc *schema.WorkingCopy) *SecretTracker {
	t := &SecretTracker{states: make(map[string]*secretState)}
	t.Rebaseline(wc)
	return t
}

// Rebaseline resets every secret field's baseline to its current value in wc
// and clears all touched flags. Called after a successful save.
func (t *SecretTracker) Rebaseline(wc *schema.WorkingCopy) {
	t.states = make(map[string]*secretState)
	for _, path := range schema.SecretPaths() {
		f := schema.Lookup(path)
		t.states[path] = &secretState{baseline: f.Get(wc).(string)}
	}
}

// MarkTouched records an edit to a secret field. The field counts as touched
// only when the new value differs from the baseline and does not itself look
// like a mask placeholder, so a UI re-render that writes the field's own
// display value back does not touch it. Reassigning the baseline resets the
// flag; edits are reversible up to the point of save.
func (t *SecretTracker) MarkTouched(path, newValue string) {
	s, ok := t.states[path]
	if !ok {
		return
	}
	s.touched = newValue != s.baseline && !deviceapi.IsMaskedValue(newValue)
}

// IsTouched reports whether the operator entered a new value for path.
func (t *SecretTracker) IsTouched(path string) bool {
	s, ok := t.states[path]
	return ok && s.touched
}

// Baseline returns the server-supplied value recorded at load for path.
func (t *SecretTracker) Baseline(path string) string {
	s, ok := t.states[path]
	if !ok {
		return ""
	}
	return s.baseline
}

// HasStoredSecret reports whether the device had a value for path at load
// time: a non-empty baseline means the server returned a mask for an
// existing secret.
func (t *SecretTracker) HasStoredSecret(path string) bool {
	return t.Baseline(path) != ""
}
