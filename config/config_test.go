package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/input"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.FPS != 60 || cfg.Blend || cfg.OSD || cfg.Backend != BackendNative {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	fg, bg, err := cfg.Colors()
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}
	if fg != core.RGBWhite || bg != core.RGBBlack {
		t.Errorf("Expected white on black, got %v on %v", fg, bg)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
fps: 30
blend: true
osd_duration: 5s
osd_colors:
  fg: "#ff8000"
keys:
  x: quit
  "Ctrl+Right": page_right
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.FPS != 30 || !cfg.Blend || cfg.OSDDuration != 5*time.Second {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if cfg.Backend != BackendNative || cfg.FastForwardSpeed != DefaultFastForwardSpeed || cfg.OSDColors.Bg != DefaultOSDBg {
		t.Errorf("Defaults not kept: %+v", cfg)
	}

	fg, _, err := cfg.Colors()
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}
	if fg != (core.RGB{R: 0xff, G: 0x80, B: 0x00}) {
		t.Errorf("Expected #ff8000, got %v", fg)
	}

	kt, err := cfg.KeyTable()
	if err != nil {
		t.Fatalf("KeyTable: %v", err)
	}
	if kt.Runes['x'] != input.ActionQuit {
		t.Errorf("Expected x bound to quit, got %v", kt.Runes['x'])
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fps: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestLoadDefault_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got %v", err)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("Expected default fps, got %d", cfg.FPS)
	}
}

func TestSaveLoadPreservesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.FPS = 24
	cfg.Backend = BackendTcell
	cfg.OSDDuration = 1500 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.FPS != 24 || got.Backend != BackendTcell || got.OSDDuration != 1500*time.Millisecond {
		t.Errorf("Settings lost: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(c *Config)
		want string
	}{
		{"fps zero", func(c *Config) { c.FPS = 0 }, "fps"},
		{"fps too high", func(c *Config) { c.FPS = MaxFPS + 1 }, "fps"},
		{"backend", func(c *Config) { c.Backend = "sdl" }, "backend"},
		{"osd duration", func(c *Config) { c.OSDDuration = 0 }, "osd_duration"},
		{"fast forward", func(c *Config) { c.FastForwardSpeed = -1 }, "fast_forward_speed"},
		{"fast forward nan", func(c *Config) { c.FastForwardSpeed = math.NaN() }, "fast_forward_speed"},
		{"fast forward inf", func(c *Config) { c.FastForwardSpeed = math.Inf(1) }, "fast_forward_speed"},
		{"color", func(c *Config) { c.OSDColors.Bg = "not-a-color" }, "osd_colors.bg"},
		{"keys", func(c *Config) { c.Keys = map[string]string{"x": "explode"} }, "keys"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
