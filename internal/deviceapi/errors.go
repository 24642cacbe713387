package deviceapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (connection refused, timeout, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates an HTTP-level error (non-200 status code)
	ErrTypeHTTP
	// ErrTypeParse indicates a parsing error (malformed JSON, invalid response)
	ErrTypeParse
	// ErrTypeValidation indicates the device rejected the payload
	ErrTypeValidation
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the printer refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a hostname resolution failure
	ErrTypeDNS
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred during printer communication
type DeviceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// classifyNetworkError analyzes a transport error and returns a more
// specific DeviceError
func classifyNetworkError(err error, message string) *DeviceError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &DeviceError{
			Type:      ErrTypeTimeout,
			Message:   message,
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("%s: cannot resolve %s", message, dnsErr.Name),
			Err:       err,
			Retryable: false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DeviceError{
				Type:      ErrTypeConnectionRefused,
				Message:   message,
				Err:       err,
				Retryable: true,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Recursively classify the underlying error
		return classifyNetworkError(urlErr.Err, message)
	}

	return &DeviceError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *DeviceError {
	if classified := classifyNetworkError(err, message); classified != nil {
		return classified
	}
	return &DeviceError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewHTTPError creates an HTTP-level error. A 400 from the printer means the
// payload failed server-side validation and is reported as such.
func NewHTTPError(statusCode int, message string) *DeviceError {
	if statusCode == http.StatusBadRequest {
		return &DeviceError{
			Type:       ErrTypeValidation,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
		}
	}
	return &DeviceError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500, // Server errors are retryable
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeParse,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// IsValidationError checks if the printer rejected the payload
func IsValidationError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeValidation
	}
	return false
}

// ShortMessage returns a concise, operator-friendly error message
func ShortMessage(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeTimeout:
		return "Printer not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Printer refused connection - check it is powered on"
	case ErrTypeDNS:
		return "Cannot resolve printer hostname"
	case ErrTypeNetwork:
		return "Network error - check connection to the printer"
	case ErrTypeHTTP:
		return fmt.Sprintf("Printer error (HTTP %d)", devErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse printer response"
	default:
		return devErr.Message
	}
}
