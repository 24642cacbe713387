package session

import "github.com/scribeworks/scribe-cfg/internal/deviceapi"

// Service is the device-facing surface the session needs. *deviceapi.Client
// satisfies it; tests substitute a fake.
type Service interface {
	FetchDocument() (*deviceapi.Document, error)
	SaveConfig(patch *deviceapi.DocumentPatch) error
	SaveMemos(memos *deviceapi.MemosPatch) error
	ScanNetworks() ([]deviceapi.ScannedNetwork, error)
	TriggerEffect(req *deviceapi.EffectRequest) error
	LedsOff() error
	Print(message string) error
	TestMQTT(req *deviceapi.MQTTTestRequest) error
	TestChatGPT(token string) error
}

// Severity classifies a notification for the operator.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier receives operator-facing messages. Fire and forget; the session
// never depends on a response. Messages must not contain secret values.
type Notifier interface {
	Notify(message string, severity Severity)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string, Severity) {}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string, severity Severity)

func (f NotifierFunc) Notify(message string, severity Severity) { f(message, severity) }
