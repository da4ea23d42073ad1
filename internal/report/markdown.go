// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/slicereport/pkg/types"
)

// settingsGroups drives the curated settings sections. Keys not listed
// here still reach the reader through `slicereport inspect`; the report
// stays one page.
var settingsGroups = []struct {
	title string
	keys  []string
}{
	{"Quality", []string{
		"layer_height", "initial_layer_print_height", "wall_loops",
		"top_shell_layers", "bottom_shell_layers",
		"sparse_infill_density", "sparse_infill_pattern",
	}},
	{"Temperatures", []string{
		"nozzle_temperature", "nozzle_temperature_initial_layer",
		"hot_plate_temp", "cool_plate_temp", "textured_plate_temp",
		"curr_bed_type",
	}},
	{"Speeds", []string{
		"outer_wall_speed", "inner_wall_speed", "sparse_infill_speed",
		"initial_layer_speed", "travel_speed",
	}},
	{"Support", []string{
		"enable_support", "support_type", "brim_type", "skirt_loops",
	}},
}

// Render builds the full Markdown report.
func Render(m Model) string {
	sections := []string{
		header(m),
		estimateSection(m),
		materialsSection(m),
		settingsSection(m),
		objectsSection(m),
		footer(m),
	}
	var nonEmpty []string
	for _, s := range sections {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// Save writes the rendered report into dir as <safe title>.md,
// creating dir if needed, and returns the written path.
func Save(m Model, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, safeFilename(m.Project.Title)+".md")
	if err := os.WriteFile(path, []byte(Render(m)), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func header(m Model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Project.Title)
	fmt.Fprintf(&b, "**Printer:** %s  \n", m.Project.PrinterModel)
	fmt.Fprintf(&b, "**Nozzle:** %.1fmm  \n", m.Project.NozzleDiameter)
	fmt.Fprintf(&b, "**Slicer:** %s  \n", m.Slicer)
	fmt.Fprintf(&b, "**Report date:** %s\n", m.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}

func estimateSection(m Model) string {
	if !m.HasEstimate {
		return "> *No G-code estimate available. Time and cost are not shown.*\n"
	}
	est := m.Estimate

	var b strings.Builder
	b.WriteString("## Print Summary\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Estimated time | %s |\n", orAbsent(est.Found.Duration, est.FormatDuration()))
	fmt.Fprintf(&b, "| Total weight | %s |\n", orAbsent(est.Found.Mass, fmt.Sprintf("%.1fg", est.MassGrams)))
	if est.Found.Length {
		fmt.Fprintf(&b, "| Filament length | %.2fm |\n", est.LengthMM/1000.0)
	}
	fmt.Fprintf(&b, "| Estimated cost | %s |\n", orAbsent(est.Found.Cost, fmt.Sprintf("%s%.2f", m.Currency, est.Cost)))
	if est.Layers > 0 {
		fmt.Fprintf(&b, "| Layers | %d |\n", est.Layers)
	}
	if est.MaxZHeight > 0 {
		fmt.Fprintf(&b, "| Max height | %.2fmm |\n", est.MaxZHeight)
	}
	if !est.Confidence {
		b.WriteString("\n> *Some estimate annotations were missing or malformed; values shown are those that parsed.*\n")
	}
	return b.String()
}

func orAbsent(found bool, value string) string {
	if !found {
		return "—"
	}
	return value
}

func materialsSection(m Model) string {
	usages := m.MaterialUsages()
	if len(usages) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Materials\n\n")
	b.WriteString("| Slot | Type | Color | Vendor | Weight | Cost |\n")
	b.WriteString("|:----:|------|-------|--------|-------:|-----:|\n")
	for _, u := range usages {
		weight := "—"
		if u.HasMass {
			weight = fmt.Sprintf("%.1fg", u.MassGrams)
		}
		cost := "—"
		if u.HasCost {
			cost = fmt.Sprintf("%s%.2f", m.Currency, u.Cost)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			u.Material.Slot, u.Material.Type, u.Material.Color, u.Material.Vendor, weight, cost)
	}
	return b.String()
}

func settingsSection(m Model) string {
	if len(m.Project.Settings) == 0 {
		return ""
	}
	byKey := make(map[string]types.PrintSetting, len(m.Project.Settings))
	for _, s := range m.Project.Settings {
		byKey[s.Key] = s
	}

	var b strings.Builder
	b.WriteString("## Settings\n")
	shown := 0
	for _, group := range settingsGroups {
		var rows []types.PrintSetting
		for _, key := range group.keys {
			if s, ok := byKey[key]; ok {
				rows = append(rows, s)
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", group.title)
		b.WriteString("| Parameter | Value |\n|-----------|-------|\n")
		for _, s := range rows {
			value := s.Value
			if s.Unit != "" {
				value += " " + s.Unit
			}
			fmt.Fprintf(&b, "| %s | %s |\n", displayKey(s.Key), value)
			shown++
		}
	}

	if rest := len(m.Project.Settings) - shown; rest > 0 {
		fmt.Fprintf(&b, "\n*%d more settings — run `slicereport inspect` to list them all.*\n", rest)
	}
	if m.Project.SettingsWarnings > 0 {
		fmt.Fprintf(&b, "\n*%d settings value(s) could not be read and were skipped.*\n", m.Project.SettingsWarnings)
	}
	return b.String()
}

// displayKey turns a vendor key into a readable label.
func displayKey(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func objectsSection(m Model) string {
	if len(m.Project.Objects) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Objects\n\n")
	for _, obj := range m.Project.Objects {
		name := obj.Name
		if name == "" {
			name = fmt.Sprintf("Object %d", obj.ID)
		}
		fmt.Fprintf(&b, "- **%s** — %s\n", name, describeSlot(m.Project, obj.Extruder))
	}
	fmt.Fprintf(&b, "\n*Total: %d object(s) on %d plate(s)*\n", len(m.Project.Objects), len(m.Project.Plates))
	return b.String()
}

// describeSlot resolves an object's slot reference at render time.
// Slot 0 and dangling references are legal and display as such.
func describeSlot(rec types.ProjectRecord, slot int) string {
	if slot == 0 {
		return "extruder unassigned"
	}
	if mat, ok := rec.MaterialBySlot(slot); ok {
		return fmt.Sprintf("extruder %d (%s)", slot, mat.Type)
	}
	return fmt.Sprintf("extruder %d (unknown material)", slot)
}

func footer(m Model) string {
	var b strings.Builder
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "**Project:** `%s`  \n", m.Project.SourceFile)
	if m.GCodeFile != "" {
		fmt.Fprintf(&b, "**G-code:** `%s`  \n", m.GCodeFile)
	}
	fmt.Fprintf(&b, "**Generated:** %s\n", m.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}

// safeFilename replaces characters that are invalid in file names.
func safeFilename(name string) string {
	const invalid = `<>:"/\|?*`
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalid, r) {
			return '_'
		}
		return r
	}, name)
	mapped = strings.TrimSpace(mapped)
	if mapped == "" {
		return "report"
	}
	return mapped
}
