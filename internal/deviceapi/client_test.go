package deviceapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Mock /api/config response trimmed to the fields the client cares about
const mockConfigResponse = `{
	"device": {
		"owner": "Pat",
		"timezone": "Europe/London",
		"maxCharacters": 1000,
		"firmwareVersion": "0.2.0",
		"printerTxPin": 21,
		"wifi": {
			"ssid": "Home",
			"password": "●●●●●●●●",
			"status": {"connected": true, "macAddress": "AA:BB:CC:DD:EE:FF"}
		}
	},
	"mqtt": {"enabled": true, "server": "broker.local", "port": 1883, "username": "scribe", "password": "●●●●", "connected": false},
	"unbiddenInk": {"enabled": false, "startHour": 8, "endHour": 22, "frequencyMinutes": 60, "prompt": "Surprise me", "chatgptApiToken": ""},
	"buttons": {
		"count": 4,
		"button1": {"gpio": 4, "shortAction": "JOKE", "longAction": "", "shortLedEffect": "pulse", "longLedEffect": "none"}
	},
	"leds": {"enabled": true, "pin": 20, "count": 30, "brightness": 128, "refreshRate": 60},
	"gpio": {"availablePins": [2,4,5,20,21], "safePins": [2,4,5,20,21], "pinDescriptions": {"4": "Safe"}}
}`

const mockMemosResponse = `{"memo1": "Shopping list", "memo2": "", "memo3": "", "memo4": ""}`

const mockScanResponse = `{"count": 3, "networks": [
	{"ssid": "Home", "rssi": -40, "channel": 6, "secure": true, "encryption": "WPA2", "signalStrength": "Strong"},
	{"ssid": "Home", "rssi": -70, "channel": 11, "secure": true, "encryption": "WPA2", "signalStrength": "Fair"},
	{"ssid": "Cafe", "rssi": -60, "channel": 1, "secure": false, "encryption": "Open", "signalStrength": "Good"}
]}`

func newMockPrinter(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, mockConfigResponse)
	})
	mux.HandleFunc("/api/memos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, mockMemosResponse)
	})
	mux.HandleFunc("/api/wifi-scan", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, mockScanResponse)
	})
	return httptest.NewServer(mux)
}

func TestNewClient(t *testing.T) {
	client := NewClient("192.168.1.100", 80)

	if client.BaseURL != "http://192.168.1.100:80" {
		t.Errorf("BaseURL = %s, want http://192.168.1.100:80", client.BaseURL)
	}
	if client.HTTPClient == nil {
		t.Error("HTTPClient should not be nil")
	}
	if client.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", client.MaxRetries, DefaultMaxRetries)
	}
}

func TestFetchDocument(t *testing.T) {
	server := newMockPrinter(t)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	doc, err := client.FetchDocument()
	if err != nil {
		t.Fatalf("FetchDocument failed: %v", err)
	}

	if doc.Device == nil || doc.Device.Owner == nil || *doc.Device.Owner != "Pat" {
		t.Error("device.owner not parsed")
	}
	if doc.Device.WiFi == nil || doc.Device.WiFi.SSID == nil || *doc.Device.WiFi.SSID != "Home" {
		t.Error("device.wifi.ssid not parsed")
	}
	if doc.Device.WiFi.Password == nil || !IsMaskedValue(*doc.Device.WiFi.Password) {
		t.Error("device.wifi.password should be a masked value")
	}
	if doc.MQTT == nil || doc.MQTT.Port == nil || *doc.MQTT.Port != 1883 {
		t.Error("mqtt.port not parsed")
	}
	if doc.Buttons == nil || doc.Buttons.Button1 == nil || *doc.Buttons.Button1.Gpio != 4 {
		t.Error("buttons.button1.gpio not parsed")
	}
	if doc.GPIO == nil || len(doc.GPIO.SafePins) != 5 {
		t.Error("gpio.safePins not parsed")
	}
	if doc.Memos == nil || doc.Memos.Memo1 == nil || *doc.Memos.Memo1 != "Shopping list" {
		t.Error("memos not merged from /api/memos")
	}
}

func TestFetchDocumentMemoFailureNotFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, mockConfigResponse)
	})
	mux.HandleFunc("/api/memos", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no memo storage"}`, http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	doc, err := client.FetchDocument()
	if err != nil {
		t.Fatalf("FetchDocument failed: %v", err)
	}
	if doc.Memos != nil {
		t.Error("memos should be nil when the memo endpoint fails")
	}
}

func TestSaveConfigOmitsUntouchedSections(t *testing.T) {
	var received map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("save body is not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	owner := "Sam"
	patch := &DocumentPatch{Device: &DevicePatch{Owner: &owner}}

	if err := client.SaveConfig(patch); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if _, ok := received["device"]; !ok {
		t.Error("device section missing from payload")
	}
	for _, section := range []string{"mqtt", "unbiddenInk", "buttons", "leds"} {
		if _, ok := received[section]; ok {
			t.Errorf("untouched section %q leaked into payload", section)
		}
	}
}

func TestSaveConfigEmptyPatchIsNoOp(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	if err := client.SaveConfig(&DocumentPatch{}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if called {
		t.Error("empty patch should not hit the network")
	}
}

func TestSaveConfigValidationRejection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"device.owner cannot be empty"}`, http.StatusBadRequest)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	owner := ""
	err := client.SaveConfig(&DocumentPatch{Device: &DevicePatch{Owner: &owner}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if IsRetryable(err) {
		t.Error("validation rejection must not be retried")
	}
}

func TestScanNetworks(t *testing.T) {
	server := newMockPrinter(t)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	networks, err := client.ScanNetworks()
	if err != nil {
		t.Fatalf("ScanNetworks failed: %v", err)
	}

	if len(networks) != 3 {
		t.Fatalf("got %d networks, want 3 (raw scan keeps duplicates)", len(networks))
	}
	if networks[0].SSID != "Home" || networks[0].RSSI != -40 {
		t.Errorf("unexpected first network: %+v", networks[0])
	}
}

func TestRetryOnServerError(t *testing.T) {
	attempts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, `{"error":"busy"}`, http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, mockConfigResponse)
	})
	mux.HandleFunc("/api/memos", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, mockMemosResponse)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	client.SetRetry(3, 10*time.Millisecond)
	client.UseExponentialBackoff = false

	if _, err := client.FetchDocument(); err != nil {
		t.Fatalf("FetchDocument should succeed after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestSignalLabel(t *testing.T) {
	tests := []struct {
		rssi int
		want string
	}{
		{-40, "Strong"},
		{-50, "Strong"},
		{-55, "Good"},
		{-65, "Fair"},
		{-80, "Weak"},
	}
	for _, tt := range tests {
		if got := SignalLabel(tt.rssi); got != tt.want {
			t.Errorf("SignalLabel(%d) = %s, want %s", tt.rssi, got, tt.want)
		}
	}
}
