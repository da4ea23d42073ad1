// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"encoding/xml"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/slicereport/pkg/types"
)

// modelConfig mirrors the model settings entry: a hierarchical XML
// document listing objects, their metadata, and plate assignments.
type modelConfig struct {
	XMLName xml.Name      `xml:"config"`
	Objects []modelObject `xml:"object"`
}

type modelObject struct {
	ID       string      `xml:"id,attr"`
	Metadata []modelMeta `xml:"metadata"`
}

type modelMeta struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

func (o modelObject) meta(key string) string {
	for _, m := range o.Metadata {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

// decodeObjects parses the model settings entry into the project
// object sequence, in source order. An object with no extruder
// declaration gets slot 0 (unassigned); a malformed extruder value is
// treated the same way rather than failing the decode.
func decodeObjects(text string) ([]types.ProjectObject, error) {
	var cfg modelConfig
	if err := xml.Unmarshal([]byte(text), &cfg); err != nil {
		return nil, err
	}

	objects := make([]types.ProjectObject, 0, len(cfg.Objects))
	for _, obj := range cfg.Objects {
		id, _ := strconv.Atoi(obj.ID)

		extruder := 0
		if v := obj.meta("extruder"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				extruder = n
			}
		}

		source := ""
		if v := obj.meta("source_file"); v != "" {
			source = filepath.Base(v)
		}

		objects = append(objects, types.ProjectObject{
			ID:         id,
			Name:       obj.meta("name"),
			Extruder:   extruder,
			SourceFile: source,
		})
	}
	return objects, nil
}

// Material catalog defaults for slots the settings arrays do not cover.
const (
	defaultColor   = "#808080"
	defaultDensity = 1.24
)

// materialsFromSettings zips the per-extruder filament arrays from the
// settings document into the material catalog. Slots are 1-based; the
// catalog length is the longest of the type and color arrays, so a
// vendor that pads one array but not another still yields one entry
// per configured slot.
func materialsFromSettings(doc *SettingsDoc) []types.Material {
	if doc == nil {
		return nil
	}

	ftypes := doc.Strings("filament_type")
	colors := doc.Strings("filament_colour")
	vendors := doc.Strings("filament_vendor")
	densities := doc.Strings("filament_density")
	costs := doc.Strings("filament_cost")

	count := len(ftypes)
	if len(colors) > count {
		count = len(colors)
	}
	if count == 0 {
		return nil
	}

	materials := make([]types.Material, 0, count)
	for i := 0; i < count; i++ {
		m := types.Material{
			Slot:    i + 1,
			Type:    at(ftypes, i, "Unknown"),
			Color:   normalizeColor(at(colors, i, defaultColor)),
			Vendor:  at(vendors, i, "Unknown"),
			Density: floatAt(densities, i, defaultDensity),
		}
		m.CostPerKg = floatAt(costs, i, 0)
		materials = append(materials, m)
	}
	return materials
}

func at(list []string, i int, def string) string {
	if i >= len(list) {
		return def
	}
	v := strings.TrimSpace(list[i])
	if v == "" {
		return def
	}
	return v
}

func floatAt(list []string, i int, def float64) float64 {
	if i >= len(list) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(list[i]), 64)
	if err != nil {
		return def
	}
	return f
}

// normalizeColor upper-cases hex colors and guarantees a leading '#'
// for six-digit values; anything else passes through verbatim.
func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if len(c) == 6 && isHex(c) {
		return "#" + strings.ToUpper(c)
	}
	if len(c) == 7 && c[0] == '#' && isHex(c[1:]) {
		return "#" + strings.ToUpper(c[1:])
	}
	return c
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
