// Package config provides configuration management for the Astra server.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Server contains network listener settings
	Server ServerConfig `json:"server"`

	// Input contains input injection settings
	Input InputConfig `json:"input"`

	// General contains general application settings
	General GeneralConfig `json:"general"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	// BindAddr is the interface to listen on (default: all interfaces)
	BindAddr string `json:"bind_addr"`

	// Port is the HTTP port (default: 44828)
	Port int `json:"port"`

	// Advertise announces the server on the LAN over mDNS
	Advertise bool `json:"advertise"`

	// InstanceName is the mDNS instance name (default: hostname)
	InstanceName string `json:"instance_name,omitempty"`
}

// InputConfig contains injection backend settings
type InputConfig struct {
	// Backend is "auto", "xdotool" or "noop"
	Backend string `json:"backend"`

	// DoubleClickDelayMs is the pause between the clicks of a double click
	DoubleClickDelayMs int `json:"double_click_delay_ms"`

	// ReverseModifierRelease releases chord modifiers in reverse press order
	ReverseModifierRelease bool `json:"reverse_modifier_release"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// ActivityLogSize is the number of recent commands kept in memory
	ActivityLogSize int `json:"activity_log_size"`

	// ShowTray shows a system tray icon while the server runs
	ShowTray bool `json:"show_tray"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddr:  "0.0.0.0",
			Port:      44828,
			Advertise: true,
		},
		Input: InputConfig{
			Backend:            "auto",
			DoubleClickDelayMs: 50,
		},
		General: GeneralConfig{
			ActivityLogSize: 10,
		},
	}
}

// DoubleClickDelay returns the configured delay as a duration
func (c *Config) DoubleClickDelay() time.Duration {
	return time.Duration(c.Input.DoubleClickDelayMs) * time.Millisecond
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddr, c.Server.Port)
}

// Validate checks values that would prevent the server from starting
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Input.DoubleClickDelayMs < 0 {
		return fmt.Errorf("double_click_delay_ms must not be negative")
	}
	switch c.Input.Backend {
	case "", "auto", "xdotool", "noop":
	default:
		return fmt.Errorf("unknown input backend %q", c.Input.Backend)
	}
	return nil
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a configuration manager for the default config path
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a configuration manager backed by path
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "astra")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "astra")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "astra")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the file backing this manager
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		// No config file, use defaults
		return nil
	}
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}
	m.config = cfg
	if m.onChanged != nil {
		m.onChanged()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	log.Printf("Config: Saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Set updates the configuration
func (m *Manager) Set(config *Config) {
	m.mu.Lock()
	m.config = config
	cb := m.onChanged
	m.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
