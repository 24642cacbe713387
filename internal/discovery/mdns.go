package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type Scribe printers advertise
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for printer discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default HTTP port for Scribe printers
	DefaultPort = 80
)

// hostnamePattern matches Scribe printer hostnames (e.g., "scribe-a1b2c3.local")
var hostnamePattern = regexp.MustCompile(`^scribe-([0-9a-fA-F]+)\.local\.?$`)

// Scanner handles mDNS printer discovery.
type Scanner struct {
	// Timeout is the maximum time to wait for printer discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForPrinters discovers all Scribe printers on the local network.
func (s *Scanner) ScanForPrinters() ([]*Printer, error) {
	return s.ScanForPrintersWithContext(context.Background())
}

// ScanForPrintersWithContext discovers printers with a custom context.
func (s *Scanner) ScanForPrintersWithContext(ctx context.Context) ([]*Printer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	printers := make([]*Printer, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if p := s.parseServiceEntry(entry); p != nil {
				printers = append(printers, p)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return printers, nil
}

// WaitForPrinter waits for a specific printer by hostname id. Returns the
// printer or an error if it was not seen within the timeout.
func (s *Scanner) WaitForPrinter(id string) (*Printer, error) {
	return s.WaitForPrinterWithContext(context.Background(), id)
}

// WaitForPrinterWithContext waits for a specific printer with a custom context.
func (s *Scanner) WaitForPrinterWithContext(ctx context.Context, id string) (*Printer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	printerChan := make(chan *Printer, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			p := s.parseServiceEntry(entry)
			if p != nil && strings.EqualFold(p.ID, id) {
				printerChan <- p
				cancel() // found it, stop browsing
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case p := <-printerChan:
		return p, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("printer %s not found within timeout", id)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Printer. Returns
// nil for services that are not Scribe printers.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Printer {
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	matches := hostnamePattern.FindStringSubmatch(hostname)
	if len(matches) < 2 {
		return nil
	}
	id := strings.ToLower(matches[1])

	// Prefer IPv4
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are "key=value" pairs
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Printer{
		ID:           id,
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForPrinters is a convenience function with a custom timeout.
func ScanForPrinters(timeout time.Duration) ([]*Printer, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForPrinters()
}

// QuickScan performs a fast scan with a 3-second timeout.
func QuickScan() ([]*Printer, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForPrinters()
}
