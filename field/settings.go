package field

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Settings owns a Config and a version counter. Setters may be called from
// any goroutine; the render loop compares Version against the last snapshot
// it took and calls Snapshot only when something changed.
type Settings struct {
	mu      sync.Mutex
	cfg     Config
	version uint64
}

// NewSettings creates a settings store holding cfg at version 1.
func NewSettings(cfg Config) *Settings {
	return &Settings{cfg: cfg, version: 1}
}

// Snapshot returns a copy of the current configuration and its version.
func (s *Settings) Snapshot() (Config, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.version
}

// Version returns the current configuration version.
func (s *Settings) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Update applies fn to the configuration and bumps the version.
func (s *Settings) Update(fn func(c *Config)) {
	s.mu.Lock()
	fn(&s.cfg)
	s.version++
	s.mu.Unlock()
}

// SetForeground sets the foreground colour.
func (s *Settings) SetForeground(c colorful.Color) {
	s.Update(func(cfg *Config) { cfg.Foreground = c })
}

// SetBackground sets the background colour.
func (s *Settings) SetBackground(c colorful.Color) {
	s.Update(func(cfg *Config) { cfg.Background = c })
}

// SetForegroundHex parses and sets the foreground colour.
func (s *Settings) SetForegroundHex(hex string) error {
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}
	s.SetForeground(c)
	return nil
}

// SetBackgroundHex parses and sets the background colour.
func (s *Settings) SetBackgroundHex(hex string) error {
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}
	s.SetBackground(c)
	return nil
}

// SetProbabilities sets the peak and trough probability bounds.
func (s *Settings) SetProbabilities(peakMax, peakMin, troughMax float64) {
	s.Update(func(cfg *Config) {
		cfg.PeakMax = peakMax
		cfg.PeakMin = peakMin
		cfg.TroughMax = troughMax
	})
}

// SetFieldSpeed sets how fast the field morphs.
func (s *Settings) SetFieldSpeed(v float64) {
	s.Update(func(cfg *Config) { cfg.FieldSpeed = v })
}

// SetNoiseScale sets the spatial frequency of the field.
func (s *Settings) SetNoiseScale(v float64) {
	s.Update(func(cfg *Config) { cfg.NoiseScale = v })
}

// SetThreshold sets the static noise threshold.
func (s *Settings) SetThreshold(v float64) {
	s.Update(func(cfg *Config) { cfg.Threshold = v })
}

// SetSpeed sets the static noise speed.
func (s *Settings) SetSpeed(v float64) {
	s.Update(func(cfg *Config) { cfg.Speed = v })
}

// SetDotShape sets dot grid density and radius.
func (s *Settings) SetDotShape(density, radius float64) {
	s.Update(func(cfg *Config) {
		cfg.Density = density
		cfg.Radius = radius
	})
}

// SetStep sets the particle grid spacing. Takes effect on the next rebuild.
func (s *Settings) SetStep(step int) {
	s.Update(func(cfg *Config) { cfg.Step = step })
}

// SetCalmMode sets the calm band interpretation.
func (s *Settings) SetCalmMode(m CalmMode) {
	s.Update(func(cfg *Config) { cfg.CalmMode = m })
}
