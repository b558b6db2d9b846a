package autostart

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCommandQuoting(t *testing.T) {
	spec := launchSpec{ExecutablePath: "/opt/My Apps/astra", Args: []string{"-tray", "-port", "9000"}}
	want := `"/opt/My Apps/astra" -tray -port 9000`
	if got := spec.Command(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestPlistTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.plist")
	spec := launchSpec{Label: label, ExecutablePath: "/usr/local/bin/astra", Args: []string{"-tray"}}
	if err := writeTemplate(path, macLaunchAgentPlist, spec); err != nil {
		t.Fatalf("writeTemplate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"<string>com.astra.server</string>",
		"<string>/usr/local/bin/astra</string>",
		"<string>-tray</string>",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Plist missing %s:\n%s", want, text)
		}
	}
}

func TestXDGEnableDisable(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG autostart is Linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if IsEnabled() {
		t.Fatal("Expected auto-start to be disabled initially")
	}
	if err := Enable("-tray"); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if !IsEnabled() {
		t.Error("Expected auto-start to be enabled")
	}

	data, err := os.ReadFile(filepath.Join(dir, "autostart", "astra.desktop"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "-tray") {
		t.Errorf("Desktop entry missing args:\n%s", data)
	}

	if err := Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if IsEnabled() {
		t.Error("Expected auto-start to be disabled")
	}
	if err := Disable(); err != nil {
		t.Errorf("Disable must be idempotent: %v", err)
	}
}
