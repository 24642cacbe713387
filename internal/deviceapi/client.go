package deviceapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scribeworks/scribe-cfg/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout. WiFi scans run
	// synchronously on the printer and can take a couple of seconds.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 30 * time.Second
)

// Client is an HTTP client for one Scribe printer's configuration API.
type Client struct {
	// BaseURL is the base URL for the printer (e.g., "http://192.168.1.100")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool
}

// NewClient creates a new printer API client.
// host: printer IP address or mDNS hostname (e.g., "scribe-a1b2.local")
// port: printer HTTP port (typically 80)
func NewClient(host string, port int) *Client {
	return NewClientWithURL(fmt.Sprintf("http://%s:%d", host, port))
}

// NewClientWithURL creates a new client with a full base URL.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:               baseURL,
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// withRetry runs attempt with the client's retry policy. Non-retryable
// errors abort immediately.
func (c *Client) withRetry(attempt func() error) error {
	var lastErr error
	currentDelay := c.RetryDelay

	for i := 0; i <= c.MaxRetries; i++ {
		if i > 0 {
			time.Sleep(currentDelay)

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		err := attempt()
		if err == nil {
			return nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// errorBody is the printer's JSON error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// responseError converts a non-2xx response into a DeviceError, preferring
// the printer's own error message when one is present.
func responseError(resp *http.Response, body []byte) *DeviceError {
	msg := fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			msg = eb.Error
		} else if eb.Message != "" {
			msg = eb.Message
		}
	}
	return NewHTTPError(resp.StatusCode, msg)
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(path string, out interface{}) error {
	url := c.BaseURL + path
	logging.LogRequest(http.MethodGet, url)

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return NewNetworkError("GET "+path+" failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError("failed to read response body", err)
	}
	logging.LogResponse(url, resp.StatusCode, len(body))

	if resp.StatusCode != http.StatusOK {
		return responseError(resp, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return NewParseError("failed to parse "+path+" response", err)
	}
	return nil
}

// postJSON performs a POST request with a JSON body. A nil out discards the
// response body.
func (c *Client) postJSON(path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return NewParseError("failed to encode request body", err)
	}

	url := c.BaseURL + path
	logging.LogRequest(http.MethodPost, url)

	resp, err := c.HTTPClient.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return NewNetworkError("POST "+path+" failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError("failed to read response body", err)
	}
	logging.LogResponse(url, resp.StatusCode, len(body))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return responseError(resp, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return NewParseError("failed to parse "+path+" response", err)
		}
	}
	return nil
}

// Ping performs a simple health check on the printer.
// Returns nil if the printer is reachable and responding.
func (c *Client) Ping() error {
	return c.getJSON("/api/config", nil)
}

// FetchDocument retrieves the full configuration document. The printer
// serves memos on their own endpoint, so this merges /api/config and
// /api/memos into one document. A memo fetch failure is not fatal: older
// firmware has no memo storage, and the merge layer falls back to defaults.
func (c *Client) FetchDocument() (*Document, error) {
	var doc Document
	err := c.withRetry(func() error {
		return c.getJSON("/api/config", &doc)
	})
	if err != nil {
		return nil, err
	}

	var memos MemosSection
	if err := c.withRetry(func() error {
		return c.getJSON("/api/memos", &memos)
	}); err != nil {
		logging.Warn("Memo fetch failed, continuing without memos")
	} else {
		doc.Memos = &memos
	}

	return &doc, nil
}

// SaveConfig submits a partial configuration document. Fields omitted from
// the patch are left unchanged by the printer. An empty patch is a no-op
// and returns nil without touching the network.
func (c *Client) SaveConfig(patch *DocumentPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return c.withRetry(func() error {
		return c.postJSON("/api/config", patch, nil)
	})
}

// SaveMemos submits all four memos. The firmware rejects partial memo
// writes, so callers always send the full section.
func (c *Client) SaveMemos(memos *MemosPatch) error {
	return c.withRetry(func() error {
		return c.postJSON("/api/memos", memos, nil)
	})
}

// ScanNetworks asks the printer to scan for WiFi networks. The raw result
// may contain one entry per BSSID; deduplication is the caller's job.
// Scans are not retried: a second scan so soon after a failed one tends to
// fail the same way, and the operator can rescan manually.
func (c *Client) ScanNetworks() ([]ScannedNetwork, error) {
	var resp scanResponse
	if err := c.getJSON("/api/wifi-scan", &resp); err != nil {
		return nil, err
	}
	return resp.Networks, nil
}

// TriggerEffect runs a LED effect on the hardware strip for preview.
func (c *Client) TriggerEffect(req *EffectRequest) error {
	return c.postJSON("/api/leds/test", req, nil)
}

// LedsOff turns the LED strip off.
func (c *Client) LedsOff() error {
	return c.postJSON("/api/leds/off", struct{}{}, nil)
}

// Print sends a text message to the thermal printer.
func (c *Client) Print(message string) error {
	payload := struct {
		Message string `json:"message"`
	}{Message: message}
	return c.postJSON("/api/print-local", payload, nil)
}

// TestMQTT asks the printer to try connecting to an MQTT broker with the
// given credentials. An empty password makes the printer use its stored
// secret, which keeps untouched passwords out of the request entirely.
func (c *Client) TestMQTT(req *MQTTTestRequest) error {
	return c.postJSON("/api/test-mqtt", req, nil)
}

// TestChatGPT asks the printer to verify an API token. An empty token makes
// the printer use its stored secret.
func (c *Client) TestChatGPT(token string) error {
	payload := struct {
		Token string `json:"token,omitempty"`
	}{Token: token}
	return c.postJSON("/api/test-chatgpt", payload, nil)
}
