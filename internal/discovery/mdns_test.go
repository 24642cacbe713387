package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantID   string
		wantIP   string
		wantPort int
	}{
		{
			name: "valid printer with IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "scribe-a1b2c3.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
				Text:     []string{"path=/"},
			},
			wantNil:  false,
			wantID:   "a1b2c3",
			wantIP:   "192.168.4.16",
			wantPort: 80,
		},
		{
			name: "valid printer without trailing dot",
			entry: &zeroconf.ServiceEntry{
				HostName: "scribe-deadbeef.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil:  false,
			wantID:   "deadbeef",
			wantIP:   "10.0.0.5",
			wantPort: 80,
		},
		{
			name: "uppercase hex id normalized",
			entry: &zeroconf.ServiceEntry{
				HostName: "scribe-A1B2C3.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.100")},
			},
			wantNil:  false,
			wantID:   "a1b2c3",
			wantIP:   "192.168.1.100",
			wantPort: 80,
		},
		{
			name: "no port specified defaults to 80",
			entry: &zeroconf.ServiceEntry{
				HostName: "scribe-1111.local",
				Port:     0,
				AddrIPv4: []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:  false,
			wantID:   "1111",
			wantIP:   "172.16.0.1",
			wantPort: 80,
		},
		{
			name: "non-printer hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "chromecast.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "empty hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				HostName: "scribe-a1b2c3.local",
				Port:     80,
			},
			wantNil: true,
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				HostName: "scribe-2222.local",
				Port:     80,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:  false,
			wantID:   "2222",
			wantIP:   "fe80::1",
			wantPort: 80,
		},
		{
			name: "both families prefers IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "scribe-3333.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:  false,
			wantID:   "3333",
			wantIP:   "192.168.1.50",
			wantPort: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if p != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", p)
				}
				return
			}

			if p == nil {
				t.Fatal("parseServiceEntry() = nil, want printer")
			}
			if p.ID != tt.wantID {
				t.Errorf("ID = %v, want %v", p.ID, tt.wantID)
			}
			if p.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", p.IP, tt.wantIP)
			}
			if p.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", p.Port, tt.wantPort)
			}
			if p.Hostname != tt.entry.HostName {
				t.Errorf("Hostname = %v, want %v", p.Hostname, tt.entry.HostName)
			}
			if time.Since(p.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", p.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		HostName: "scribe-a1b2c3.local",
		Port:     80,
		AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
		Text:     []string{"path=/", "flag", "version=0.2.0"},
	}

	p := scanner.parseServiceEntry(entry)
	if p == nil {
		t.Fatal("parseServiceEntry() = nil, want printer")
	}

	expected := map[string]string{
		"path":    "/",
		"flag":    "", // key without value
		"version": "0.2.0",
	}
	if len(p.Metadata) != len(expected) {
		t.Errorf("Metadata has %d entries, want %d", len(p.Metadata), len(expected))
	}
	for key, want := range expected {
		if got, ok := p.Metadata[key]; !ok || got != want {
			t.Errorf("Metadata[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestHostnamePattern(t *testing.T) {
	tests := []struct {
		hostname    string
		shouldMatch bool
		id          string
	}{
		{"scribe-a1b2c3.local", true, "a1b2c3"},
		{"scribe-a1b2c3.local.", true, "a1b2c3"},
		{"scribe-0.local", true, "0"},
		{"scribe-DEADBEEF.local", true, "DEADBEEF"},
		{"Scribe-a1b2c3.local", false, ""}, // case-sensitive prefix
		{"scribe-.local", false, ""},      // no id
		{"scribe-xyz.local", false, ""},   // non-hex id
		{"printer.local", false, ""},      // wrong prefix
		{"scribe-a1b2c3", false, ""},      // missing .local
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			matches := hostnamePattern.FindStringSubmatch(tt.hostname)

			if tt.shouldMatch {
				if len(matches) < 2 {
					t.Fatalf("hostnamePattern did not match %q", tt.hostname)
				}
				if matches[1] != tt.id {
					t.Errorf("matched id %q, want %q", matches[1], tt.id)
				}
			} else if matches != nil {
				t.Errorf("hostnamePattern matched %q, want no match", tt.hostname)
			}
		})
	}
}
