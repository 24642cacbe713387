package session

import (
	"errors"
	"testing"

	"github.com/scribeworks/scribe-cfg/internal/deviceapi"
)

func net(ssid string, rssi int) deviceapi.ScannedNetwork {
	return deviceapi.ScannedNetwork{SSID: ssid, RSSI: rssi, Secure: true}
}

func TestDedupNetworks(t *testing.T) {
	raw := []deviceapi.ScannedNetwork{
		net("A", -40),
		net("A", -70),
		net("B", -60),
	}

	got := DedupNetworks(raw)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].SSID != "A" || got[0].RSSI != -40 {
		t.Errorf("first entry = %v, want A/-40 (strongest kept)", got[0])
	}
	if got[1].SSID != "B" || got[1].RSSI != -60 {
		t.Errorf("second entry = %v, want B/-60", got[1])
	}
}

func TestDedupNetworksTieBySSID(t *testing.T) {
	raw := []deviceapi.ScannedNetwork{
		net("Zeta", -55),
		net("Alpha", -55),
	}

	got := DedupNetworks(raw)
	if got[0].SSID != "Alpha" || got[1].SSID != "Zeta" {
		t.Errorf("equal RSSI must sort by SSID ascending, got %v", got)
	}
}

type scanHarness struct {
	coord   *ScanCoordinator
	ssid    string
	results []deviceapi.ScannedNetwork
	scanErr error
	calls   int
}

func newScanHarness(currentSSID string) *scanHarness {
	h := &scanHarness{ssid: currentSSID}
	h.coord = NewScanCoordinator(
		func() ([]deviceapi.ScannedNetwork, error) {
			h.calls++
			return h.results, h.scanErr
		},
		func() string { return h.ssid },
		func(ssid string) { h.ssid = ssid },
	)
	return h
}

func TestScanTransitions(t *testing.T) {
	h := newScanHarness("")
	h.results = []deviceapi.ScannedNetwork{net("Cafe", -60)}

	if h.coord.State() != ScanIdle {
		t.Fatal("coordinator should start idle")
	}
	if err := h.coord.Scan(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if h.coord.State() != ScanScanned {
		t.Errorf("state = %s, want scanned", h.coord.State())
	}
	if len(h.coord.Catalog()) != 1 {
		t.Errorf("catalog = %v", h.coord.Catalog())
	}
}

func TestScanReselectsCurrentSSID(t *testing.T) {
	h := newScanHarness("Home")
	h.results = []deviceapi.ScannedNetwork{net("Cafe", -40), net("Home", -60)}

	if err := h.coord.Scan(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if h.coord.EffectiveSSID() != "Home" {
		t.Errorf("effective SSID = %q, rescan must keep the current network", h.coord.EffectiveSSID())
	}
	if h.ssid != "Home" {
		t.Errorf("working copy SSID = %q, want Home", h.ssid)
	}
}

func TestScanFailureKeepsPriorCatalog(t *testing.T) {
	h := newScanHarness("Home")
	h.results = []deviceapi.ScannedNetwork{net("Home", -50)}
	if err := h.coord.Scan(); err != nil {
		t.Fatalf("first scan failed: %v", err)
	}

	h.scanErr = errors.New("radio busy")
	if err := h.coord.Scan(); err == nil {
		t.Fatal("expected scan error")
	}
	if h.coord.State() != ScanScanned {
		t.Errorf("state = %s, failure must restore the previous state", h.coord.State())
	}
	if len(h.coord.Catalog()) != 1 {
		t.Error("failure must leave the prior catalog intact")
	}
}

func TestScanReentrantIgnored(t *testing.T) {
	var coord *ScanCoordinator
	calls := 0
	coord = NewScanCoordinator(
		func() ([]deviceapi.ScannedNetwork, error) {
			calls++
			if calls == 1 {
				// A scan request while one is outstanding is a no-op
				if err := coord.Scan(); err != nil {
					t.Errorf("reentrant scan returned error: %v", err)
				}
			}
			return nil, nil
		},
		func() string { return "" },
		func(string) {},
	)

	if err := coord.Scan(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("discovery invoked %d times, want 1", calls)
	}
}

func TestSelectCatalogSSID(t *testing.T) {
	h := newScanHarness("")
	if err := h.coord.Select("Cafe"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if h.coord.Mode() != SelectFromCatalog {
		t.Error("selecting a catalog SSID must switch to catalog mode")
	}
	if h.ssid != "Cafe" {
		t.Errorf("working copy SSID = %q, want Cafe (written immediately)", h.ssid)
	}
}

func TestSelectManual(t *testing.T) {
	h := newScanHarness("Home")
	if err := h.coord.Select(ManualEntryOption); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if h.coord.Mode() != SelectManual {
		t.Error("manual option must switch mode")
	}
	if h.ssid != "" {
		t.Errorf("working copy SSID = %q, want cleared pending manual entry", h.ssid)
	}

	h.coord.SetManualSSID("HiddenNet")
	if h.ssid != "HiddenNet" {
		t.Errorf("working copy SSID = %q, want HiddenNet", h.ssid)
	}
	if h.coord.EffectiveSSID() != "HiddenNet" {
		t.Errorf("effective SSID = %q", h.coord.EffectiveSSID())
	}
}

func TestSelectRescanKeepsSelection(t *testing.T) {
	h := newScanHarness("")
	h.results = []deviceapi.ScannedNetwork{net("Cafe", -60), net("Home", -40)}

	if err := h.coord.Select("Cafe"); err != nil {
		t.Fatal(err)
	}
	h.ssid = "Cafe"

	if err := h.coord.Select(RescanOption); err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if h.calls != 1 {
		t.Errorf("scan calls = %d, want 1", h.calls)
	}
	// "Cafe" is in the results, so reselection keeps it
	if h.coord.EffectiveSSID() != "Cafe" {
		t.Errorf("effective SSID = %q, rescan must not change the selection", h.coord.EffectiveSSID())
	}
}
