// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the merged extraction results as a Markdown
// document and optionally exports the full report model as YAML.
package report

import (
	"path/filepath"
	"time"

	"github.com/pdiddy/slicereport/pkg/types"
)

// Model is everything the renderer needs: the two extraction records
// joined with generation metadata. Built once after both extractors
// complete.
type Model struct {
	Project  types.ProjectRecord `json:"project" yaml:"project"`
	Estimate types.PrintEstimate `json:"estimate" yaml:"estimate"`

	// HasEstimate is false when no instruction file was available;
	// the renderer then reports "no G-code estimate available".
	HasEstimate bool `json:"has_estimate" yaml:"has_estimate"`

	// GCodeFile is the base name of the instruction file used, empty
	// when none was resolved.
	GCodeFile string `json:"gcode_file,omitempty" yaml:"gcode_file,omitempty"`

	// Slicer is the display identity: the G-code generator line when
	// present (the authoritative source), else the archive metadata.
	Slicer string `json:"slicer" yaml:"slicer"`

	// Currency is the symbol prefixed to cost values.
	Currency string `json:"currency" yaml:"currency"`

	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// Build joins the two extraction records into the report model.
// gcodePath is empty when no instruction file was resolved.
func Build(rec types.ProjectRecord, est types.PrintEstimate, hasEstimate bool, gcodePath, currency string) Model {
	m := Model{
		Project:     rec,
		Estimate:    est,
		HasEstimate: hasEstimate,
		Slicer:      rec.Slicer,
		Currency:    currency,
		GeneratedAt: time.Now(),
	}
	if gcodePath != "" {
		m.GCodeFile = filepath.Base(gcodePath)
	}
	if hasEstimate && est.Generator != "" {
		m.Slicer = est.Generator
	}
	if m.Slicer == "" {
		m.Slicer = "Unknown"
	}
	return m
}

// MaterialUsage is one row of the materials table: a catalog entry
// correlated with the instruction-stream totals.
type MaterialUsage struct {
	Material types.Material
	// MassGrams and Cost are per-slot when the G-code carried
	// per-extruder lists; cost falls back to a proportional share of
	// the total by mass. HasMass/HasCost gate display.
	MassGrams float64
	Cost      float64
	HasMass   bool
	HasCost   bool
}

// MaterialUsages correlates the material catalog with the estimate.
// The two sources never share an authoritative per-material cost, so
// when the G-code lacks per-slot costs each material's share of the
// total cost is proportional to its share of the total mass.
func (m Model) MaterialUsages() []MaterialUsage {
	usages := make([]MaterialUsage, 0, len(m.Project.Materials))
	for _, mat := range m.Project.Materials {
		u := MaterialUsage{Material: mat}
		if m.HasEstimate {
			if g, ok := m.Estimate.MassPerSlot[mat.Slot]; ok {
				u.MassGrams = g
				u.HasMass = true
			}
			if c, ok := m.Estimate.CostPerSlot[mat.Slot]; ok {
				u.Cost = c
				u.HasCost = true
			} else if u.HasMass && m.Estimate.Found.Cost && m.Estimate.MassGrams > 0 {
				u.Cost = m.Estimate.Cost * (u.MassGrams / m.Estimate.MassGrams)
				u.HasCost = true
			}
		}
		usages = append(usages, u)
	}
	return usages
}
