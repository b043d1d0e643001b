package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// WorkMode governs whether minimizing hides the window to the tray
// icon instead of the taskbar.
type WorkMode string

const (
	WorkModeWindowAndTray WorkMode = "window-and-tray"
	WorkModeTrayOnly      WorkMode = "tray-only"
	WorkModeWindowOnly    WorkMode = "window-only"
)

// Valid reports whether the mode is one of the known values.
func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeWindowAndTray, WorkModeTrayOnly, WorkModeWindowOnly:
		return true
	}
	return false
}

// WindowSizes holds the size constants the geometry paths use.
type WindowSizes struct {
	MinWidth      int `yaml:"min_width"`
	MinHeight     int `yaml:"min_height"`
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`
	WideWidth     int `yaml:"wide_width"`
	WideHeight    int `yaml:"wide_height"`
}

// Config is the application settings file.
type Config struct {
	AppName           string      `yaml:"app_name"`
	WorkMode          WorkMode    `yaml:"work_mode"`
	NativeWindowFrame bool        `yaml:"native_window_frame"`
	ThreeColumnLayout bool        `yaml:"three_column_layout"`
	SaveDelayMS       int         `yaml:"save_delay_ms"`
	Window            WindowSizes `yaml:"window"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AppName:     "Winkeep",
		WorkMode:    WorkModeWindowAndTray,
		SaveDelayMS: 1000,
		Window: WindowSizes{
			MinWidth:      380,
			MinHeight:     480,
			DefaultWidth:  800,
			DefaultHeight: 600,
			WideWidth:     1024,
			WideHeight:    768,
		},
	}
}

// SaveDelay returns the position save debounce as a duration.
func (c *Config) SaveDelay() time.Duration {
	if c.SaveDelayMS <= 0 {
		return time.Second
	}
	return time.Duration(c.SaveDelayMS) * time.Millisecond
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winkeep", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path, overlaying the file
// on the built-in defaults. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.WorkMode.Valid() {
		return fmt.Errorf("unknown work_mode %q", c.WorkMode)
	}
	if c.Window.MinWidth <= 0 || c.Window.MinHeight <= 0 {
		return fmt.Errorf("window minimum size must be positive")
	}
	if c.Window.DefaultWidth < c.Window.MinWidth ||
		c.Window.DefaultHeight < c.Window.MinHeight {
		return fmt.Errorf("default window size below minimum size")
	}
	return nil
}
