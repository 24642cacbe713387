package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}
	if !strings.Contains(configDir, "scribe-cfg") {
		t.Errorf("GetConfigDir() = %v, should contain 'scribe-cfg'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Printers == nil {
		t.Error("NewRegistry().Printers should not be nil")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if !reg.Preferences.AutoDiscover {
		t.Error("AutoDiscover should be true by default")
	}
	if reg.Preferences.DiscoverTimeout != 10 {
		t.Errorf("DiscoverTimeout = %v, want 10", reg.Preferences.DiscoverTimeout)
	}
	if reg.Preferences.DefaultPort != 80 {
		t.Errorf("DefaultPort = %v, want 80", reg.Preferences.DefaultPort)
	}
}

func TestRegistryEnsurePrinter(t *testing.T) {
	reg := NewRegistry()

	p1 := reg.EnsurePrinter("scribe-a1b2")
	if p1 == nil {
		t.Fatal("EnsurePrinter() returned nil")
	}

	p2 := reg.EnsurePrinter("scribe-a1b2")
	if p1 != p2 {
		t.Error("EnsurePrinter() should return same instance for same hostname")
	}

	p3 := reg.EnsurePrinter("scribe-c3d4")
	if p1 == p3 {
		t.Error("EnsurePrinter() should create new instance for different hostname")
	}
}

func TestRegistryUpdateLastSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.UpdateLastSeen("scribe-a1b2", "192.168.1.100")
	after := time.Now()

	p := reg.GetPrinter("scribe-a1b2")
	if p == nil {
		t.Fatal("Printer should exist after UpdateLastSeen()")
	}
	if p.LastIP != "192.168.1.100" {
		t.Errorf("LastIP = %v, want 192.168.1.100", p.LastIP)
	}
	if p.LastSeen.Before(before) || p.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", p.LastSeen, before, after)
	}
}

func TestRegistryNicknames(t *testing.T) {
	reg := NewRegistry()

	reg.SetNickname("scribe-a1b2", "Kitchen Printer")
	reg.SetOwner("scribe-a1b2", "Pat")

	p := reg.GetPrinter("scribe-a1b2")
	if p == nil {
		t.Fatal("Printer should exist")
	}
	if p.Nickname != "Kitchen Printer" {
		t.Errorf("Nickname = %v", p.Nickname)
	}
	if p.Owner != "Pat" {
		t.Errorf("Owner = %v", p.Owner)
	}

	if got := reg.DisplayName("scribe-a1b2"); got != "Kitchen Printer" {
		t.Errorf("DisplayName = %v, want nickname", got)
	}
	if got := reg.DisplayName("scribe-ffff"); got != "scribe-ffff" {
		t.Errorf("DisplayName for unknown printer = %v, want hostname", got)
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	reg := NewRegistry()
	reg.SetNickname("scribe-a1b2", "Kitchen Printer")
	reg.UpdateLastSeen("scribe-a1b2", "192.168.1.50")

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var loaded Registry
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	p := loaded.GetPrinter("scribe-a1b2")
	if p == nil {
		t.Fatal("printer missing after round trip")
	}
	if p.Nickname != "Kitchen Printer" || p.LastIP != "192.168.1.50" {
		t.Errorf("round trip lost data: %+v", p)
	}
}

// Secrets must never end up in the serialized registry.
func TestRegistryNeverSerializesSecrets(t *testing.T) {
	reg := NewRegistry()
	reg.SetNickname("scribe-a1b2", "Kitchen Printer")

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, banned := range []string{"password", "token", "secret"} {
		if strings.Contains(strings.ToLower(string(data)), banned) {
			t.Errorf("serialized registry contains %q", banned)
		}
	}
}
