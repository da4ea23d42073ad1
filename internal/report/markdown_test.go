// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slicereport/pkg/types"
)

func sampleRecord() types.ProjectRecord {
	return types.ProjectRecord{
		Title:          "Octopus",
		SourceFile:     "octopus.3mf",
		Slicer:         "BambuStudio-1.8.0",
		PrinterModel:   "Bambu Lab P1S",
		NozzleDiameter: 0.4,
		Settings: []types.PrintSetting{
			{Key: "layer_height", Value: "0.2", Unit: "mm"},
			{Key: "sparse_infill_density", Value: "15%"},
			{Key: "unknown_future_key", Value: "whatever"},
		},
		Objects: []types.ProjectObject{
			{ID: 1, Name: "Body", Extruder: 1},
			{ID: 2, Name: "Lid", Extruder: 3},
			{ID: 3, Name: "Logo", Extruder: 0},
		},
		Materials: []types.Material{
			{Slot: 1, Type: "PLA", Color: "#000000", Vendor: "Generic", Density: 1.24},
			{Slot: 2, Type: "PETG", Color: "#E5E5E5", Vendor: "Generic", Density: 1.27},
		},
		Plates: []types.Plate{{ID: 1, Name: "Plate 1"}},
	}
}

func sampleEstimate() types.PrintEstimate {
	return types.PrintEstimate{
		DurationSec:  9000,
		DurationText: "2h 30m",
		MassGrams:    50,
		LengthMM:     16750,
		Cost:         5.00,
		Generator:    "OrcaSlicer 2.2.0",
		MassPerSlot:  map[int]float64{1: 40, 2: 10},
		Found:        types.FieldSet{Duration: true, Mass: true, Length: true, Cost: true},
		Confidence:   true,
	}
}

func TestBuildPrefersGeneratorIdentity(t *testing.T) {
	m := Build(sampleRecord(), sampleEstimate(), true, "/prints/octopus_PLA.gcode", "$")
	assert.Equal(t, "OrcaSlicer 2.2.0", m.Slicer)
	assert.Equal(t, "octopus_PLA.gcode", m.GCodeFile)

	// Without an estimate the archive identity stands.
	m = Build(sampleRecord(), types.PrintEstimate{}, false, "", "$")
	assert.Equal(t, "BambuStudio-1.8.0", m.Slicer)
	assert.Empty(t, m.GCodeFile)
}

func TestMaterialUsagesProportionalCost(t *testing.T) {
	m := Build(sampleRecord(), sampleEstimate(), true, "", "$")
	usages := m.MaterialUsages()
	require.Len(t, usages, 2)

	// No per-slot costs in the estimate: cost splits by mass share.
	assert.True(t, usages[0].HasCost)
	assert.InDelta(t, 4.00, usages[0].Cost, 1e-9)
	assert.InDelta(t, 1.00, usages[1].Cost, 1e-9)
	assert.Equal(t, 40.0, usages[0].MassGrams)
}

func TestMaterialUsagesPerSlotCostWins(t *testing.T) {
	est := sampleEstimate()
	est.CostPerSlot = map[int]float64{1: 3.10, 2: 1.90}

	m := Build(sampleRecord(), est, true, "", "$")
	usages := m.MaterialUsages()
	assert.Equal(t, 3.10, usages[0].Cost)
	assert.Equal(t, 1.90, usages[1].Cost)
}

func TestMaterialUsagesNoEstimate(t *testing.T) {
	m := Build(sampleRecord(), types.PrintEstimate{}, false, "", "$")
	for _, u := range m.MaterialUsages() {
		assert.False(t, u.HasMass)
		assert.False(t, u.HasCost)
	}
}

func TestRenderFullReport(t *testing.T) {
	m := Build(sampleRecord(), sampleEstimate(), true, "/prints/octopus.gcode", "$")
	md := Render(m)

	assert.Contains(t, md, "# Octopus")
	assert.Contains(t, md, "**Printer:** Bambu Lab P1S")
	assert.Contains(t, md, "**Slicer:** OrcaSlicer 2.2.0")
	assert.Contains(t, md, "| Estimated time | 2h 30m |")
	assert.Contains(t, md, "| Total weight | 50.0g |")
	assert.Contains(t, md, "| Filament length | 16.75m |")
	assert.Contains(t, md, "| Estimated cost | $5.00 |")
	assert.Contains(t, md, "| 1 | PLA | #000000 | Generic | 40.0g | $4.00 |")
	assert.Contains(t, md, "| layer height | 0.2 mm |")

	// Slot resolution happens at render time: assigned, dangling,
	// and unassigned objects all display.
	assert.Contains(t, md, "- **Body** — extruder 1 (PLA)")
	assert.Contains(t, md, "- **Lid** — extruder 3 (unknown material)")
	assert.Contains(t, md, "- **Logo** — extruder unassigned")

	assert.Contains(t, md, "**G-code:** `octopus.gcode`")
}

func TestRenderWithoutEstimate(t *testing.T) {
	m := Build(sampleRecord(), types.PrintEstimate{}, false, "", "$")
	md := Render(m)

	assert.Contains(t, md, "No G-code estimate available")
	assert.NotContains(t, md, "Estimated time")
	// No invented numbers anywhere.
	assert.NotContains(t, md, "0.0g")
}

func TestRenderLowConfidenceNote(t *testing.T) {
	est := sampleEstimate()
	est.Found.Cost = false
	est.Confidence = false

	m := Build(sampleRecord(), est, true, "", "$")
	md := Render(m)
	assert.Contains(t, md, "| Estimated cost | — |")
	assert.Contains(t, md, "missing or malformed")
	assert.Contains(t, md, "| Estimated time | 2h 30m |")
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rec := sampleRecord()
	rec.Title = `A/B: "Test"`
	m := Build(rec, sampleEstimate(), true, "", "$")

	path, err := Save(m, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, `A_B_ _Test_.md`), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# A/B"))
}

func TestExportYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	m := Build(sampleRecord(), sampleEstimate(), true, "", "$")
	require.NoError(t, ExportYAML(m, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "title: Octopus")
	assert.Contains(t, content, "mass_grams: 50")
	assert.Contains(t, content, "confidence: true")
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "plain", safeFilename("plain"))
	assert.Equal(t, "report", safeFilename("   "))
	assert.Equal(t, "a_b_c", safeFilename(`a<b>c`))
}
