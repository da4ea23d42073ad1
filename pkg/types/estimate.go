// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// FieldSet records which estimate annotations were found and parsed.
type FieldSet struct {
	Duration bool `json:"duration" yaml:"duration"`
	Mass     bool `json:"mass" yaml:"mass"`
	Length   bool `json:"length" yaml:"length"`
	Cost     bool `json:"cost" yaml:"cost"`
}

// Complete reports whether every required annotation (duration, mass,
// cost) was found. Length is optional: some dialects omit it.
func (f FieldSet) Complete() bool {
	return f.Duration && f.Mass && f.Cost
}

// PrintEstimate is the output of the instruction-stream parser. All
// numeric fields are meaningful only when the corresponding Found flag
// is set; the parser never invents values. Constructed in a single
// parse pass and not mutated afterward.
type PrintEstimate struct {
	// DurationSec is the estimated print duration in seconds.
	DurationSec int `json:"duration_sec" yaml:"duration_sec"`

	// DurationText is the verbatim duration string emitted by the
	// slicer (e.g. "2h 30m").
	DurationText string `json:"duration_text,omitempty" yaml:"duration_text,omitempty"`

	// MassGrams is the total filament mass in grams.
	MassGrams float64 `json:"mass_grams" yaml:"mass_grams"`

	// LengthMM is the total filament length in millimeters.
	LengthMM float64 `json:"length_mm" yaml:"length_mm"`

	// Cost is the estimated total cost, currency-agnostic.
	Cost float64 `json:"cost" yaml:"cost"`

	// Generator is the slicer identity line from the file header
	// (e.g. "OrcaSlicer 2.2.0"), empty when absent.
	Generator string `json:"generator,omitempty" yaml:"generator,omitempty"`

	// Layers is the total layer count, zero when not annotated.
	Layers int `json:"layers,omitempty" yaml:"layers,omitempty"`

	// MaxZHeight is the highest printed Z in millimeters, zero when
	// not annotated.
	MaxZHeight float64 `json:"max_z_height,omitempty" yaml:"max_z_height,omitempty"`

	// MassPerSlot, LengthPerSlot, and CostPerSlot hold per-extruder
	// values keyed by 1-based slot, populated when the annotation
	// carries a comma-separated list.
	MassPerSlot   map[int]float64 `json:"mass_per_slot,omitempty" yaml:"mass_per_slot,omitempty"`
	LengthPerSlot map[int]float64 `json:"length_per_slot,omitempty" yaml:"length_per_slot,omitempty"`
	CostPerSlot   map[int]float64 `json:"cost_per_slot,omitempty" yaml:"cost_per_slot,omitempty"`

	// Found records per-field presence.
	Found FieldSet `json:"found" yaml:"found"`

	// Confidence is true only when every expected annotation was found
	// and well-formed. Individual Found fields stay usable when it is
	// false.
	Confidence bool `json:"confidence" yaml:"confidence"`
}

// FormatDuration returns the slicer's own duration string when it was
// captured, otherwise a compact rendering of DurationSec.
func (e PrintEstimate) FormatDuration() string {
	if e.DurationText != "" {
		return e.DurationText
	}
	h := e.DurationSec / 3600
	m := (e.DurationSec % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
