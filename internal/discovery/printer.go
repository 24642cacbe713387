package discovery

import (
	"fmt"
	"time"
)

// Printer is a Scribe printer discovered on the network.
type Printer struct {
	// ID is the printer's short identifier (e.g., "a1b2c3")
	ID string

	// Hostname is the mDNS hostname (e.g., "scribe-a1b2c3.local")
	Hostname string

	// IP is the IPv4 address (IPv6 if no IPv4 was advertised)
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the printer was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable description of the printer.
func (p *Printer) String() string {
	return fmt.Sprintf("Scribe printer %s (%s) at %s:%d", p.ID, p.Hostname, p.IP, p.Port)
}

// BaseURL returns the HTTP base URL for the printer.
func (p *Printer) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", p.IP, p.Port)
}

// GetMetadata retrieves a TXT record value by key, or "" if not present.
func (p *Printer) GetMetadata(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}
