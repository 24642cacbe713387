// Package deviceapi implements the HTTP client for the Scribe printer's
// configuration API.
//
// The printer exposes its entire configuration as one hierarchical JSON
// document on GET /api/config (memos live on their own endpoint pair). The
// document contains both editable fields and read-only status fields; secret
// fields (WiFi password, MQTT password, API token) are returned masked and
// must never be written back unless the operator actually changed them.
//
// Writes go through POST /api/config with merge-patch semantics: fields
// omitted from the payload are left unchanged by the device. The wire types
// in this package therefore use pointer fields so that "absent" and "zero"
// are distinct states.
//
// # Usage
//
//	client := deviceapi.NewClient("192.168.1.100", 80)
//	doc, err := client.FetchDocument()
//	if err != nil {
//	    // err is a *DeviceError with a classified type
//	}
//
// # Error Handling
//
// All errors returned by this package are *DeviceError values with a
// classified ErrorType (network, HTTP, parse, validation) and a Retryable
// flag. The client retries retryable failures with exponential backoff.
package deviceapi
