package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.AppName != "Winkeep" {
		t.Fatalf("AppName = %q", cfg.AppName)
	}
	if cfg.WorkMode != WorkModeWindowAndTray {
		t.Fatalf("WorkMode = %q", cfg.WorkMode)
	}
	if cfg.Window.MinWidth != 380 || cfg.Window.MinHeight != 480 {
		t.Fatalf("minimum size = %dx%d", cfg.Window.MinWidth, cfg.Window.MinHeight)
	}
	if cfg.SaveDelay() != time.Second {
		t.Fatalf("SaveDelay = %v", cfg.SaveDelay())
	}
}

func TestLoadFromPath_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.WorkMode != WorkModeWindowAndTray {
		t.Fatalf("expected default work mode, got %q", cfg.WorkMode)
	}
}

func TestLoadFromPath_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
work_mode: tray-only
save_delay_ms: 250
window:
  min_width: 400
  min_height: 500
  default_width: 900
  default_height: 700
  wide_width: 1200
  wide_height: 800
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.WorkMode != WorkModeTrayOnly {
		t.Fatalf("WorkMode = %q", cfg.WorkMode)
	}
	if cfg.SaveDelay() != 250*time.Millisecond {
		t.Fatalf("SaveDelay = %v", cfg.SaveDelay())
	}
	if cfg.Window.MinWidth != 400 {
		t.Fatalf("MinWidth = %d", cfg.Window.MinWidth)
	}
	// Untouched keys keep their defaults.
	if cfg.AppName != "Winkeep" {
		t.Fatalf("AppName = %q", cfg.AppName)
	}
}

func TestLoadFromPath_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown work mode": "work_mode: sideways\n",
		"zero minimum":      "window:\n  min_width: 0\n",
		"default below minimum": `window:
  min_width: 500
  min_height: 500
  default_width: 400
  default_height: 600
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFromPath(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWorkMode_Valid(t *testing.T) {
	for _, mode := range []WorkMode{WorkModeWindowAndTray, WorkModeTrayOnly, WorkModeWindowOnly} {
		if !mode.Valid() {
			t.Fatalf("%q should be valid", mode)
		}
	}
	if WorkMode("sideways").Valid() {
		t.Fatal("unknown mode should be invalid")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("work_mode: window-and-tray\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan *Config, 4)
	watcher, err := Watch(path, zerolog.Nop(), func(cfg *Config) {
		reloads <- cfg
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, []byte("work_mode: tray-only\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloads:
		if cfg.WorkMode != WorkModeTrayOnly {
			t.Fatalf("reloaded WorkMode = %q", cfg.WorkMode)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("config reload never arrived")
	}
}

func TestWatch_IgnoresBrokenRevision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("work_mode: window-and-tray\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan *Config, 4)
	watcher, err := Watch(path, zerolog.Nop(), func(cfg *Config) {
		reloads <- cfg
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, []byte("work_mode: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// The broken revision must not reach the callback; the next good
	// one must.
	if err := os.WriteFile(path, []byte("work_mode: window-only\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloads:
		if cfg.WorkMode != WorkModeWindowOnly {
			t.Fatalf("reloaded WorkMode = %q", cfg.WorkMode)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("config reload never arrived")
	}
}
