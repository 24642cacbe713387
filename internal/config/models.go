package config

import "time"

// Registry is the entire console configuration file: known printers plus
// application preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Printers    map[string]*Printer `yaml:"printers,omitempty"` // keyed by mDNS hostname
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Printer is user-defined metadata for one known printer, keyed by its mDNS
// hostname (e.g. "scribe-a1b2") in the Registry.
type Printer struct {
	Nickname string    `yaml:"nickname,omitempty"`  // user-friendly name
	LastIP   string    `yaml:"last_ip,omitempty"`   // last known IP address
	LastSeen time.Time `yaml:"last_seen,omitempty"` // last discovery/connection time
	Owner    string    `yaml:"owner,omitempty"`     // owner name reported by the device
}

// Preferences are application-wide settings.
type Preferences struct {
	AutoDiscover    bool `yaml:"auto_discover"`    // run mDNS discovery on startup
	DiscoverTimeout int  `yaml:"discover_timeout"` // discovery timeout in seconds
	DefaultPort     int  `yaml:"default_port"`     // printer HTTP port
}

// NewRegistry creates a Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Printers: make(map[string]*Printer),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			DefaultPort:     80,
		},
	}
}

// GetPrinter retrieves printer metadata by hostname. Returns nil if the
// printer is not in the registry.
func (r *Registry) GetPrinter(hostname string) *Printer {
	return r.Printers[hostname]
}

// EnsurePrinter returns the entry for hostname, creating it if needed.
func (r *Registry) EnsurePrinter(hostname string) *Printer {
	if r.Printers == nil {
		r.Printers = make(map[string]*Printer)
	}
	if p, exists := r.Printers[hostname]; exists {
		return p
	}
	p := &Printer{}
	r.Printers[hostname] = p
	return p
}

// UpdateLastSeen records a successful sighting of a printer.
func (r *Registry) UpdateLastSeen(hostname, ip string) {
	p := r.EnsurePrinter(hostname)
	p.LastSeen = time.Now()
	p.LastIP = ip
}

// SetNickname sets a user-friendly nickname for a printer.
func (r *Registry) SetNickname(hostname, nickname string) {
	r.EnsurePrinter(hostname).Nickname = nickname
}

// SetOwner records the owner name the device reported, so listings can show
// whose printer each entry is without contacting it.
func (r *Registry) SetOwner(hostname, owner string) {
	r.EnsurePrinter(hostname).Owner = owner
}

// DisplayName returns the nickname if set, otherwise the hostname.
func (r *Registry) DisplayName(hostname string) string {
	if p := r.GetPrinter(hostname); p != nil && p.Nickname != "" {
		return p.Nickname
	}
	return hostname
}
