// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records shared between the extraction
// engines, the report renderer, and the CLI.
package types

// Material describes one filament slot configured in the project.
type Material struct {
	// Slot is the 1-based extruder slot index, unique within a record.
	Slot int `json:"slot" yaml:"slot"`

	// Type is the filament type name (e.g. "PLA", "PETG").
	Type string `json:"type" yaml:"type"`

	// Color is the filament color as a hex string ("#RRGGBB").
	Color string `json:"color" yaml:"color"`

	// Vendor is the filament vendor label as authored by the slicer.
	Vendor string `json:"vendor" yaml:"vendor"`

	// Density is the material density in g/cm³.
	Density float64 `json:"density" yaml:"density"`

	// CostPerKg is the configured spool cost per kilogram.
	CostPerKg float64 `json:"cost_per_kg" yaml:"cost_per_kg"`
}

// ProjectObject is one printable object declared in the project.
type ProjectObject struct {
	// ID is the object identifier from the model settings entry.
	ID int `json:"id" yaml:"id"`

	// Name is the object name as shown in the slicer.
	Name string `json:"name" yaml:"name"`

	// Extruder is the material slot the object prints with. Slot 0
	// means the project declared no assignment; the referenced slot is
	// not guaranteed to exist in the material catalog.
	Extruder int `json:"extruder" yaml:"extruder"`

	// SourceFile is the base name of the imported model file, if recorded.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
}

// PrintSetting is one key-value pair from the project settings entry.
// Keys are vendor-defined; unrecognized keys are preserved verbatim.
type PrintSetting struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Plate summarizes one build plate of the project.
type Plate struct {
	ID             int     `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	BedType        string  `json:"bed_type" yaml:"bed_type"`
	NozzleDiameter float64 `json:"nozzle_diameter" yaml:"nozzle_diameter"`
	Sequential     bool    `json:"sequential" yaml:"sequential"`

	// DurationSec and MassGrams are the per-plate slicer predictions,
	// zero when the project was exported unsliced.
	DurationSec int     `json:"duration_sec,omitempty" yaml:"duration_sec,omitempty"`
	MassGrams   float64 `json:"mass_grams,omitempty" yaml:"mass_grams,omitempty"`
}

// ProjectRecord is the normalized output of the archive metadata
// extractor. It is constructed once per extraction and not mutated
// afterward.
type ProjectRecord struct {
	// Title is the project title from the model metadata, falling back
	// to the archive file stem.
	Title string `json:"title" yaml:"title"`

	// SourceFile is the base name of the project archive.
	SourceFile string `json:"source_file" yaml:"source_file"`

	// Slicer is the application identity and version recorded in the
	// archive (e.g. "OrcaSlicer-2.2.0").
	Slicer string `json:"slicer" yaml:"slicer"`

	// PrinterModel is the target printer model name.
	PrinterModel string `json:"printer_model" yaml:"printer_model"`

	// NozzleDiameter is the configured nozzle diameter in millimeters.
	NozzleDiameter float64 `json:"nozzle_diameter" yaml:"nozzle_diameter"`

	// Settings holds the print settings in source order.
	Settings []PrintSetting `json:"settings" yaml:"settings"`

	// Objects holds the project objects in source order.
	Objects []ProjectObject `json:"objects" yaml:"objects"`

	// Materials holds the material catalog in slot order.
	Materials []Material `json:"materials" yaml:"materials"`

	// Plates holds per-plate summaries in plate-id order.
	Plates []Plate `json:"plates,omitempty" yaml:"plates,omitempty"`

	// SettingsWarnings counts malformed settings values that were
	// skipped during decoding.
	SettingsWarnings int `json:"settings_warnings,omitempty" yaml:"settings_warnings,omitempty"`
}

// MaterialBySlot returns the material for slot. The second return is
// false for slot 0 and for dangling references; callers decide how to
// present unresolved slots.
func (r ProjectRecord) MaterialBySlot(slot int) (Material, bool) {
	for _, m := range r.Materials {
		if m.Slot == slot {
			return m, true
		}
	}
	return Material{}, false
}
