// Package config provides configuration loading and access for the field renderer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/staticfield/anim"
	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/noise"
	"github.com/pthm-cable/staticfield/scroll"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all renderer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Zoom      ZoomConfig      `yaml:"zoom"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	TargetFPS        int     `yaml:"target_fps"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`
	PixelScale       float64 `yaml:"pixel_scale"` // Render at 1/scale resolution and upscale
	Title            string  `yaml:"title"`
}

// FieldConfig holds noise field parameters.
type FieldConfig struct {
	Variant    string  `yaml:"variant"` // pointcloud, static, dotgrid, particles
	Backend    string  `yaml:"backend"` // simplex, opensimplex, perlin
	Seed       int64   `yaml:"seed"`    // 0 = time-based
	Foreground string  `yaml:"foreground"`
	Background string  `yaml:"background"`
	PeakMax    float64 `yaml:"peak_max"`
	PeakMin    float64 `yaml:"peak_min"`
	TroughMax  float64 `yaml:"trough_max"`
	FieldSpeed float64 `yaml:"field_speed"`
	NoiseScale float64 `yaml:"noise_scale"`
	CalmMode   string  `yaml:"calm_mode"` // graduated, literal, off
	Threshold  float64 `yaml:"threshold"`
	Speed      float64 `yaml:"speed"`
	Density    float64 `yaml:"density"`
	Radius     float64 `yaml:"radius"`
	Step       int     `yaml:"step"`
}

// ScrollConfig holds scroll controller parameters.
type ScrollConfig struct {
	TriggerFactor  float64 `yaml:"trigger_factor"`
	EnterDistance  float64 `yaml:"enter_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	Symmetric      bool    `yaml:"symmetric"` // Center-distance eases back out above centre
	RevealStart    float64 `yaml:"reveal_start"`
	RevealEnd      float64 `yaml:"reveal_end"`
	Sensitivity    float64 `yaml:"sensitivity"` // Wheel delta per unit of lock progress
	StartOffsetPct float64 `yaml:"start_offset_pct"`
	ViewportReach  float64 `yaml:"viewport_reach"`
}

// ViewBoxConfig is a rectangle in graphic coordinates.
type ViewBoxConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ZoomConfig holds the ping-pong zoom animation parameters.
type ZoomConfig struct {
	Period float64       `yaml:"period"` // Seconds for a full in-out cycle
	Full   ViewBoxConfig `yaml:"full"`
	Zoomed ViewBoxConfig `yaml:"zoomed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames in the rolling perf window
	CSVPath             string  `yaml:"csv_path"`              // Empty disables CSV output
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Field       field.Config   // Parsed field configuration
	Zoom        anim.ZoomCycle // Zoom cycle built from ZoomConfig
	StatsWindow time.Duration  // Telemetry.StatsWindow as a duration
	FrameBudget time.Duration  // 1 / Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge unmarshals YAML over cfg. Only fields present in data are overwritten.
// Derived values are not recomputed.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// SetFieldValues copies live field values back into the YAML-facing field
// section, keeping variant, backend and seed.
func (f *FieldConfig) SetFieldValues(c field.Config) {
	f.Foreground = c.Foreground.Hex()
	f.Background = c.Background.Hex()
	f.PeakMax = c.PeakMax
	f.PeakMin = c.PeakMin
	f.TroughMax = c.TroughMax
	f.FieldSpeed = c.FieldSpeed
	f.NoiseScale = c.NoiseScale
	f.CalmMode = string(c.CalmMode)
	f.Threshold = c.Threshold
	f.Speed = c.Speed
	f.Density = c.Density
	f.Radius = c.Radius
	f.Step = c.Step
}

// FieldYAML renders just the field section as YAML.
func (c *Config) FieldYAML() (string, error) {
	data, err := yaml.Marshal(struct {
		Field FieldConfig `yaml:"field"`
	}{c.Field})
	if err != nil {
		return "", fmt.Errorf("marshaling field config: %w", err)
	}
	return string(data), nil
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// Recompute validates the configuration and refreshes derived values after
// fields were changed in place.
func (c *Config) Recompute() error {
	return c.computeDerived()
}

// computeDerived validates names and calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	switch c.Field.Variant {
	case field.VariantPointCloud, field.VariantStaticNoise, field.VariantDotGrid, field.VariantParticleCloud:
	default:
		return fmt.Errorf("unknown field variant %q", c.Field.Variant)
	}
	switch c.Field.Backend {
	case "", noise.BackendSimplex, noise.BackendOpenSimplex, noise.BackendPerlin:
	default:
		return fmt.Errorf("unknown noise backend %q", c.Field.Backend)
	}

	fg, err := field.ParseHex(c.Field.Foreground)
	if err != nil {
		return fmt.Errorf("field.foreground: %w", err)
	}
	bg, err := field.ParseHex(c.Field.Background)
	if err != nil {
		return fmt.Errorf("field.background: %w", err)
	}

	mode := field.CalmMode(c.Field.CalmMode)
	switch mode {
	case "":
		mode = field.CalmGraduated
	case field.CalmGraduated, field.CalmLiteral, field.CalmOff:
	default:
		return fmt.Errorf("unknown calm mode %q", c.Field.CalmMode)
	}

	c.Derived.Field = field.Config{
		Foreground: fg,
		Background: bg,
		PeakMax:    c.Field.PeakMax,
		PeakMin:    c.Field.PeakMin,
		TroughMax:  c.Field.TroughMax,
		FieldSpeed: c.Field.FieldSpeed,
		NoiseScale: c.Field.NoiseScale,
		CalmMode:   mode,
		Threshold:  c.Field.Threshold,
		Speed:      c.Field.Speed,
		Density:    c.Field.Density,
		Radius:     c.Field.Radius,
		Step:       c.Field.Step,
	}

	c.Derived.Zoom = anim.ZoomCycle{
		Full:   c.Zoom.Full.viewBox(),
		Zoom:   c.Zoom.Zoomed.viewBox(),
		Period: seconds(c.Zoom.Period),
	}
	c.Derived.StatsWindow = seconds(c.Telemetry.StatsWindow)
	if c.Screen.TargetFPS > 0 {
		c.Derived.FrameBudget = time.Second / time.Duration(c.Screen.TargetFPS)
	}
	return nil
}

func (v ViewBoxConfig) viewBox() anim.ViewBox {
	return anim.ViewBox{X: v.X, Y: v.Y, W: v.W, H: v.H}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// EntranceSlide returns the entrance slide policy configured here.
func (s ScrollConfig) EntranceSlide() scroll.EntranceSlide {
	return scroll.EntranceSlide{TriggerFactor: s.TriggerFactor, EnterDistance: s.EnterDistance}
}

// CenterDistance returns the center-distance policy configured here.
func (s ScrollConfig) CenterDistance() scroll.CenterDistance {
	return scroll.CenterDistance{MaxDistance: s.MaxDistance, Symmetric: s.Symmetric}
}

// RevealWindow returns the reveal window policy configured here.
func (s ScrollConfig) RevealWindow() scroll.RevealWindow {
	return scroll.RevealWindow{Start: s.RevealStart, End: s.RevealEnd}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
