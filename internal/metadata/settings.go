// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata extracts the normalized ProjectRecord from a slicer
// project container: print settings, object list, and material catalog.
package metadata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/slicereport/pkg/types"
)

// SettingsDoc is the decoded settings entry: vendor-defined key-value
// pairs in source order plus a tally of values that could not be
// interpreted. Unknown keys are preserved verbatim so new slicer
// versions do not break the report.
type SettingsDoc struct {
	keys   []string
	values map[string]settingValue

	// Warnings counts malformed values skipped during decoding.
	Warnings int
}

type settingValue struct {
	scalar string
	list   []string
	isList bool
}

// DecodeSettings parses the JSON text of the project settings entry.
// The document is a flat object whose values are strings, numbers,
// booleans, or arrays of those (one element per extruder). Decoding is
// tolerant: a value that cannot be interpreted skips that key and
// bumps Warnings; only a document that is not an object at all is an
// error.
func DecodeSettings(text string) (*SettingsDoc, error) {
	doc := &SettingsDoc{values: make(map[string]settingValue)}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("settings entry is not valid JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("settings entry is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			// Truncated or corrupt tail: keep what decoded so far.
			doc.Warnings++
			return doc, nil
		}
		key, ok := keyTok.(string)
		if !ok {
			doc.Warnings++
			return doc, nil
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			doc.Warnings++
			return doc, nil
		}

		val, ok := interpretValue(raw)
		if !ok {
			doc.Warnings++
			continue
		}
		if _, dup := doc.values[key]; !dup {
			doc.keys = append(doc.keys, key)
		}
		doc.values[key] = val
	}

	return doc, nil
}

// interpretValue converts a raw JSON value into a settingValue. Nested
// objects and arrays of non-scalars are not part of the settings
// contract and are rejected.
func interpretValue(raw json.RawMessage) (settingValue, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return settingValue{}, false
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return settingValue{}, false
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := scalarString(item)
			if !ok {
				return settingValue{}, false
			}
			list = append(list, s)
		}
		return settingValue{list: list, isList: true}, true
	case '{':
		return settingValue{}, false
	default:
		s, ok := scalarString(raw)
		if !ok {
			return settingValue{}, false
		}
		return settingValue{scalar: s}, true
	}
}

// scalarString renders a JSON scalar as its raw string form.
func scalarString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	return "", false
}

// Len returns the number of decoded keys.
func (d *SettingsDoc) Len() int {
	return len(d.keys)
}

// Has reports whether key was present in the document.
func (d *SettingsDoc) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// First returns the value for key, taking the first element of
// per-extruder arrays. Missing keys return def.
func (d *SettingsDoc) First(key, def string) string {
	v, ok := d.values[key]
	if !ok {
		return def
	}
	if v.isList {
		if len(v.list) == 0 {
			return def
		}
		return v.list[0]
	}
	return v.scalar
}

// Strings returns the value for key as a list: the array elements, or
// a single-element list for scalar values. Missing keys return nil.
func (d *SettingsDoc) Strings(key string) []string {
	v, ok := d.values[key]
	if !ok {
		return nil
	}
	if v.isList {
		return v.list
	}
	return []string{v.scalar}
}

// Float returns the value for key parsed as a float, or def when the
// key is missing or not numeric.
func (d *SettingsDoc) Float(key string, def float64) float64 {
	s := d.First(key, "")
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// Int returns the value for key parsed as an integer, or def when the
// key is missing or not numeric. Fractional values truncate.
func (d *SettingsDoc) Int(key string, def int) int {
	s := d.First(key, "")
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return int(f)
}

// Pairs returns the settings as an ordered PrintSetting sequence.
// Array values render as comma-joined lists; units come from the
// known-key table and stay empty for unrecognized keys.
func (d *SettingsDoc) Pairs() []types.PrintSetting {
	pairs := make([]types.PrintSetting, 0, len(d.keys))
	for _, key := range d.keys {
		v := d.values[key]
		value := v.scalar
		if v.isList {
			value = strings.Join(v.list, ",")
		}
		pairs = append(pairs, types.PrintSetting{
			Key:   key,
			Value: value,
			Unit:  unitFor(key),
		})
	}
	return pairs
}

// unitFor maps well-known vendor key shapes to display units.
func unitFor(key string) string {
	switch {
	case strings.HasSuffix(key, "_temp") || strings.Contains(key, "temperature"):
		return "°C"
	case strings.Contains(key, "accel"):
		return "mm/s²"
	case strings.HasSuffix(key, "_speed") || strings.HasSuffix(key, "speed"):
		return "mm/s"
	case strings.Contains(key, "height") || strings.Contains(key, "diameter") ||
		strings.Contains(key, "line_width") || strings.HasSuffix(key, "_length"):
		return "mm"
	case strings.Contains(key, "density") && strings.HasPrefix(key, "filament"):
		return "g/cm³"
	default:
		return ""
	}
}
