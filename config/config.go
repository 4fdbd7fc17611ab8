package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/input"
)

const (
	DefaultFPS              = 60
	MaxFPS                  = 10000
	DefaultOSDDuration      = 3 * time.Second
	DefaultFastForwardSpeed = 10000
	DefaultOSDFg            = "white"
	DefaultOSDBg            = "black"
)

// Display backends
const (
	BackendNative = "native"
	BackendTcell  = "tcell"
)

// FileName is the config file looked up under the user config directory
const FileName = "config.yaml"

// Config holds startup settings; command-line flags override individual fields
type Config struct {
	FPS              int               `yaml:"fps"`
	Blend            bool              `yaml:"blend"`
	OSD              bool              `yaml:"osd"`
	ColumnReverse    bool              `yaml:"column_reverse"`
	Backend          string            `yaml:"backend"`
	OSDDuration      time.Duration     `yaml:"osd_duration"`
	FastForwardSpeed float64           `yaml:"fast_forward_speed"`
	OSDColors        OSDColors         `yaml:"osd_colors"`
	Sound            string            `yaml:"sound,omitempty"`
	Keys             map[string]string `yaml:"keys,omitempty"`
}

// OSDColors are color names or #rrggbb values
type OSDColors struct {
	Fg string `yaml:"fg"`
	Bg string `yaml:"bg"`
}

func Default() *Config {
	return &Config{
		FPS:              DefaultFPS,
		Backend:          BackendNative,
		OSDDuration:      DefaultOSDDuration,
		FastForwardSpeed: DefaultFastForwardSpeed,
		OSDColors: OSDColors{
			Fg: DefaultOSDFg,
			Bg: DefaultOSDBg,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/color-cycle/config.yaml or the platform equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "color-cycle", FileName), nil
}

// Load overlays the YAML file at path on the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath; a missing file yields the defaults
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes cfg as YAML, creating the parent directory
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range or unparseable setting
func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("fps %d outside [1, %d]", c.FPS, MaxFPS)
	}
	switch c.Backend {
	case BackendNative, BackendTcell:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendNative, BackendTcell)
	}
	if c.OSDDuration <= 0 {
		return fmt.Errorf("osd_duration must be positive, got %v", c.OSDDuration)
	}
	if !(c.FastForwardSpeed > 0) || math.IsInf(c.FastForwardSpeed, 0) {
		return fmt.Errorf("fast_forward_speed must be positive and finite, got %v", c.FastForwardSpeed)
	}
	if _, _, err := c.Colors(); err != nil {
		return err
	}
	if _, err := c.KeyTable(); err != nil {
		return err
	}
	return nil
}

// Colors resolves the OSD foreground and background
func (c *Config) Colors() (fg, bg core.RGB, err error) {
	if fg, err = parseColor(c.OSDColors.Fg); err != nil {
		return fg, bg, fmt.Errorf("osd_colors.fg: %w", err)
	}
	if bg, err = parseColor(c.OSDColors.Bg); err != nil {
		return fg, bg, fmt.Errorf("osd_colors.bg: %w", err)
	}
	return fg, bg, nil
}

// KeyTable parses the keys section into binding overrides
func (c *Config) KeyTable() (*input.KeyTable, error) {
	if len(c.Keys) == 0 {
		return nil, nil
	}
	kt, err := input.ParseBindings(c.Keys)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return kt, nil
}

// parseColor accepts any name or #rrggbb known to tcell
func parseColor(name string) (core.RGB, error) {
	c := tcell.GetColor(strings.ToLower(strings.TrimSpace(name)))
	if !c.Valid() {
		return core.RGB{}, fmt.Errorf("unknown color %q", name)
	}
	r, g, b := c.RGB()
	return core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}
