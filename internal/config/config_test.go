package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 44828 {
		t.Errorf("Expected default port 44828, got %d", cfg.Server.Port)
	}
	if cfg.Addr() != "0.0.0.0:44828" {
		t.Errorf("Expected default address 0.0.0.0:44828, got %s", cfg.Addr())
	}
	if cfg.DoubleClickDelay() != 50*time.Millisecond {
		t.Errorf("Expected 50ms double-click delay, got %v", cfg.DoubleClickDelay())
	}
	if cfg.Input.ReverseModifierRelease {
		t.Error("Expected modifiers to release in press order by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for out-of-range port")
	}

	cfg = DefaultConfig()
	cfg.Input.Backend = "robot"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unknown backend")
	}

	cfg = DefaultConfig()
	cfg.Input.DoubleClickDelayMs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for negative delay")
	}
}

func TestManagerSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astra", "config.json")
	m := NewManagerAt(path)

	// Missing file keeps defaults
	if err := m.Load(); err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if m.Get().Server.Port != 44828 {
		t.Errorf("Expected default port, got %d", m.Get().Server.Port)
	}

	cfg := DefaultConfig()
	cfg.Server.Port = 5000
	cfg.Input.Backend = "noop"
	m.Set(cfg)
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	changed := false
	other := NewManagerAt(path)
	other.RegisterChangeCallback(func() { changed = true })
	if err := other.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if other.Get().Server.Port != 5000 || other.Get().Input.Backend != "noop" {
		t.Errorf("Loaded config mismatch: %+v", other.Get())
	}
	if !changed {
		t.Error("Expected change callback after load")
	}
}

func TestManagerPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server":{"port":9000}}`), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManagerAt(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := m.Get()
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Input.DoubleClickDelayMs != 50 || cfg.Server.BindAddr != "0.0.0.0" {
		t.Errorf("Expected defaults for unset fields, got %+v", cfg)
	}
}

func TestManagerRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"input":{"backend":"robot"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManagerAt(path)
	if err := m.Load(); err == nil {
		t.Error("Expected validation error")
	}
	if m.Get().Input.Backend != "auto" {
		t.Errorf("Expected defaults to remain after failed load, got %q", m.Get().Input.Backend)
	}
}
