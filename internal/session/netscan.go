package session

import (
	"sort"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
	"github.com/scribeworks/scribe-cfg/internal/logging"
)

// ScanState is the WiFi discovery state machine's position.
type ScanState int

const (
	ScanIdle ScanState = iota
	ScanScanning
	ScanScanned
)

func (s ScanState) String() string {
	switch s {
	case ScanIdle:
		return "idle"
	case ScanScanning:
		return "scanning"
	case ScanScanned:
		return "scanned"
	default:
		return "unknown"
	}
}

// SelectionMode says where the effective SSID comes from.
type SelectionMode int

const (
	// SelectFromCatalog: the SSID was picked from scan results.
	SelectFromCatalog SelectionMode = iota
	// SelectManual: the operator is typing an SSID for a hidden network.
	SelectManual
)

// Selection sentinels accepted by Select in addition to catalog SSIDs.
const (
	// ManualEntryOption switches to free-text SSID entry.
	ManualEntryOption = "__manual__"
	// RescanOption triggers a new scan without changing the selection.
	RescanOption = "__rescan__"
)

// ScanCoordinator manages WiFi network discovery and selection for one
// session. It owns the deduplicated catalog and the selection; the working
// copy's SSID is written through the apply callback so the coordinator stays
// independent of the rest of the session.
type ScanCoordinator struct {
	scan    func() ([]deviceapi.ScannedNetwork, error)
	current func() string    // currently configured SSID in the working copy
	apply   func(ssid string) // write an SSID into the working copy

	state    ScanState
	catalog  []deviceapi.ScannedNetwork
	mode     SelectionMode
	selected string
	manual   string
}

// NewScanCoordinator builds a coordinator in the Idle state. The selection
// is seeded from the working copy's configured SSID.
func NewScanCoordinator(
	scan func() ([]deviceapi.ScannedNetwork, error),
	current func() string,
	apply func(ssid string),
) *ScanCoordinator {
	return &ScanCoordinator{
		scan:     scan,
		current:  current,
		apply:    apply,
		state:    ScanIdle,
		selected: current(),
	}
}

// State returns the machine's current state.
func (c *ScanCoordinator) State() ScanState { return c.state }

// Mode returns the current selection mode.
func (c *ScanCoordinator) Mode() SelectionMode { return c.mode }

// Catalog returns the deduplicated scan results, strongest first.
func (c *ScanCoordinator) Catalog() []deviceapi.ScannedNetwork { return c.catalog }

// Scan runs a network discovery round. Reentrant calls while a scan is
// outstanding are ignored. On success the catalog is deduplicated (strongest
// entry per SSID) and sorted by signal strength descending, ties by SSID
// ascending. If the currently configured SSID appears in the results the
// selection is reset to it, so a rescan never loses the operator's network.
// On failure the previous state and catalog are kept and no retry happens.
func (c *ScanCoordinator) Scan() error {
	if c.state == ScanScanning {
		return nil
	}
	prev := c.state
	c.state = ScanScanning

	networks, err := c.scan()
	if err != nil {
		c.state = prev
		return err
	}

	c.catalog = DedupNetworks(networks)
	c.state = ScanScanned
	logging.Debug("WiFi scan complete")

	if ssid := c.current(); ssid != "" && c.catalogHas(ssid) {
		c.mode = SelectFromCatalog
		c.selected = ssid
		c.apply(ssid)
	}
	return nil
}

// Select applies a selection value. A catalog SSID switches to catalog mode
// and writes the SSID into the working copy immediately. ManualEntryOption
// switches to free-text mode and clears the working copy's SSID pending
// manual entry. RescanOption runs Scan without changing the selection.
func (c *ScanCoordinator) Select(value string) error {
	switch value {
	case RescanOption:
		return c.Scan()
	case ManualEntryOption:
		c.mode = SelectManual
		c.apply("")
		return nil
	default:
		c.mode = SelectFromCatalog
		c.selected = value
		c.apply(value)
		return nil
	}
}

// SetManualSSID records free-text SSID input. In manual mode the text is
// written straight into the working copy.
func (c *ScanCoordinator) SetManualSSID(text string) {
	c.manual = text
	if c.mode == SelectManual {
		c.apply(text)
	}
}

// EffectiveSSID is the SSID a save would submit: the manual free text in
// manual mode, otherwise the selected catalog SSID.
func (c *ScanCoordinator) EffectiveSSID() string {
	if c.mode == SelectManual {
		return c.manual
	}
	return c.selected
}

func (c *ScanCoordinator) catalogHas(ssid string) bool {
	for _, n := range c.catalog {
		if n.SSID == ssid {
			return true
		}
	}
	return false
}

// DedupNetworks collapses raw scan results (one entry per BSSID) down to at
// most one entry per SSID, keeping the strongest signal, then sorts by RSSI
// descending with ties broken by SSID ascending.
func DedupNetworks(networks []deviceapi.ScannedNetwork) []deviceapi.ScannedNetwork {
	best := make(map[string]deviceapi.ScannedNetwork)
	for _, n := range networks {
		cur, seen := best[n.SSID]
		if !seen || n.RSSI > cur.RSSI {
			best[n.SSID] = n
		}
	}

	out := make([]deviceapi.ScannedNetwork, 0, len(best))
	for _, n := range best {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RSSI != out[j].RSSI {
			return out[i].RSSI > out[j].RSSI
		}
		return out[i].SSID < out[j].SSID
	})
	return out
}
