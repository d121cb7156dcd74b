package main

import (
	"github.com/pthm-cable/staticfield/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "peak_max", Path: "field.peak_max", Min: 0.3, Max: 1.0, Default: 0.8},
			{Name: "peak_min", Path: "field.peak_min", Min: 0.05, Max: 0.8, Default: 0.4},
			{Name: "trough_max", Path: "field.trough_max", Min: 0.0, Max: 0.2, Default: 0.02},
			{Name: "noise_scale", Path: "field.noise_scale", Min: 0.5, Max: 8.0, Default: 2.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config and refreshes its
// derived field configuration. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	cfg.Field.PeakMax = clamped[0]
	cfg.Field.PeakMin = clamped[1]
	cfg.Field.TroughMax = clamped[2]
	cfg.Field.NoiseScale = clamped[3]

	return cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Field.PeakMax,
		cfg.Field.PeakMin,
		cfg.Field.TroughMax,
		cfg.Field.NoiseScale,
	}
}
