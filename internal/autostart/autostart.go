// Package autostart registers the server to start on login.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"
)

const label = "com.astra.server"

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
{{- range .Args}}
        <string>{{.}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name=Astra
Comment=Remote input command server
Exec={{.Command}}
X-GNOME-Autostart-enabled=true
NoDisplay=true
`

type launchSpec struct {
	Label          string
	ExecutablePath string
	Args           []string
}

// Command is the quoted command line used by desktop entries and the registry
func (s launchSpec) Command() string {
	parts := []string{quote(s.ExecutablePath)}
	for _, a := range s.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

// Enable starts the current executable with args on login
func Enable(args ...string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	spec := launchSpec{Label: label, ExecutablePath: execPath, Args: args}

	switch runtime.GOOS {
	case "darwin":
		path, err := macPlistPath()
		if err != nil {
			return err
		}
		return writeTemplate(path, macLaunchAgentPlist, spec)
	case "windows":
		return enableWindows(spec)
	default:
		path, err := xdgEntryPath()
		if err != nil {
			return err
		}
		return writeTemplate(path, xdgDesktopEntry, spec)
	}
}

// Disable removes the login registration
func Disable() error {
	switch runtime.GOOS {
	case "windows":
		return disableWindows()
	}
	path, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	switch runtime.GOOS {
	case "windows":
		return isEnabledWindows()
	}
	path, err := entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func entryPath() (string, error) {
	if runtime.GOOS == "darwin" {
		return macPlistPath()
	}
	return xdgEntryPath()
}

func macPlistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", label+".plist"), nil
}

func xdgEntryPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", "astra.desktop"), nil
}

func writeTemplate(path, text string, spec launchSpec) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(text)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, spec)
}
